package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStartsWithInit(t *testing.T) {
	doc := NewDocument(32)
	assert.Equal(t, []byte{ESC, '@'}, doc.Bytes())
}

func TestKeyValueAlignment(t *testing.T) {
	doc := NewDocument(32)
	doc.KeyValue("Subtotal:", "Rs. 100.00")

	line := string(doc.Bytes()[2:]) // skip init
	assert.Equal(t, "Subtotal:"+strings.Repeat(" ", 13)+"Rs. 100.00\n", line)
	assert.Len(t, line, 33) // full width plus line feed
}

func TestKeyValueNeverCollapses(t *testing.T) {
	doc := NewDocument(10)
	doc.KeyValue("A very long key", "and value")

	line := string(doc.Bytes()[2:])
	assert.Equal(t, "A very long key and value\n", line)
}

func TestItemLine(t *testing.T) {
	doc := NewDocument(32)
	doc.ItemLine(2, "Margherita", "Rs. 1000.00")

	line := string(doc.Bytes()[2:])
	assert.Equal(t, "2x Margherita"+strings.Repeat(" ", 8)+"Rs. 1000.00\n", line)
}

func TestSeparatorSpansWidth(t *testing.T) {
	doc := NewDocument(16)
	doc.Separator('-')
	assert.Equal(t, "----------------\n", string(doc.Bytes()[2:]))
}

func TestPartialCutBytes(t *testing.T) {
	doc := NewDocument(32)
	doc.PartialCut()
	assert.Equal(t, []byte{GS, 'V', 0x01}, doc.Bytes()[2:])
}

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig("none", "", "")
	assert.NoError(t, err)
	assert.NoError(t, p.Print([]byte("anything")))
	assert.False(t, p.IsConnected())

	_, err = NewPrinterFromConfig("usb", "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("network", "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("laser", "", "")
	assert.Error(t, err)

	p, err = NewPrinterFromConfig("", "", "")
	assert.NoError(t, err, "empty type means no printer configured")
	assert.NoError(t, p.Print(nil))
}
