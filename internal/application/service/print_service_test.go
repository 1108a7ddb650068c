package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzlepizza/pos-admin/internal/domain/entity"
	"github.com/puzzlepizza/pos-admin/internal/render"
	"github.com/puzzlepizza/pos-admin/pkg/apperror"
)

type recordingPrinter struct {
	mu      sync.Mutex
	jobs    [][]byte
	err     error
	printed chan struct{}
}

func newRecordingPrinter() *recordingPrinter {
	return &recordingPrinter{printed: make(chan struct{}, 8)}
}

func (p *recordingPrinter) Print(data []byte) error {
	p.mu.Lock()
	p.jobs = append(p.jobs, data)
	p.mu.Unlock()
	p.printed <- struct{}{}
	return p.err
}

func (p *recordingPrinter) Close() error      { return nil }
func (p *recordingPrinter) IsConnected() bool { return true }

func (p *recordingPrinter) jobCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.jobs)
}

type stubInvoiceRepo struct {
	fakeInvoiceRepo
	invoice *entity.Invoice
	getErr  error
}

func (s *stubInvoiceRepo) GetByID(ctx context.Context, id int) (*entity.Invoice, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.invoice != nil && s.invoice.ID == id {
		return s.invoice, nil
	}
	return nil, apperror.NewNotFoundError("Invoice")
}

func storedInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:           42,
		CustomerName: "Ada",
		Lines: []entity.InvoiceLine{
			{ItemID: 1, Quantity: 2, Price: decimal.NewFromInt(500)},
			{ItemID: 2, Quantity: 3, Price: decimal.NewFromInt(100)},
		},
		Tax:       decimal.NewFromInt(10),
		Total:     decimal.RequireFromString("1430.00"),
		CreatedAt: time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC),
	}
}

func newPrintFixture(p *recordingPrinter) (*PrintService, *stubInvoiceRepo) {
	repo := &stubInvoiceRepo{invoice: storedInvoice()}
	renderer := render.NewRenderer("PUZZLE PIZZA", "Rs. ", 300)
	svc := NewPrintService(renderer, p, "network", 32, time.Millisecond, repo, testCatalog())
	return svc, repo
}

func TestDocumentRendersStoredInvoice(t *testing.T) {
	svc, _ := newPrintFixture(newRecordingPrinter())

	doc, err := svc.Document(context.Background(), 42, true)
	require.NoError(t, err)
	assert.Contains(t, doc, "Margherita")
	assert.Contains(t, doc, "Total: Rs. 1430.00")
	assert.Contains(t, doc, "window.print()")
}

func TestDocumentUnknownInvoice(t *testing.T) {
	svc, _ := newPrintFixture(newRecordingPrinter())

	_, err := svc.Document(context.Background(), 999, false)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.GetAppError(err).Kind)
}

func TestPrintReceiptDispatchesInBackground(t *testing.T) {
	p := newRecordingPrinter()
	svc, _ := newPrintFixture(p)

	receipt, err := svc.PrintReceipt(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "PUZZLE PIZZA", receipt.ShopName)
	assert.Equal(t, "Rs. 1430.00", receipt.Total)
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, "Margherita", receipt.Items[0].Name)
	assert.Equal(t, "Rs. 1000.00", receipt.Items[0].LineTotal)

	select {
	case <-p.printed:
	case <-time.After(time.Second):
		t.Fatal("print job never dispatched")
	}
	assert.Equal(t, 1, p.jobCount())
}

func TestPrintReceiptFailureDoesNotFailCaller(t *testing.T) {
	p := newRecordingPrinter()
	p.err = assert.AnError
	svc, _ := newPrintFixture(p)

	receipt, err := svc.PrintReceipt(context.Background(), 42)
	require.NoError(t, err, "printer failures are a logged no-op")
	require.NotNil(t, receipt)

	select {
	case <-p.printed:
	case <-time.After(time.Second):
		t.Fatal("print job never dispatched")
	}
}

func TestPrintReceiptRepeatedlyYieldsSameOutput(t *testing.T) {
	p := newRecordingPrinter()
	svc, _ := newPrintFixture(p)
	ctx := context.Background()

	first, err := svc.PrintReceipt(ctx, 42)
	require.NoError(t, err)
	second, err := svc.PrintReceipt(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	for i := 0; i < 2; i++ {
		select {
		case <-p.printed:
		case <-time.After(time.Second):
			t.Fatal("print job never dispatched")
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	require.Len(t, p.jobs, 2)
	assert.Equal(t, p.jobs[0], p.jobs[1])
}

func TestPrintReceiptCatalogFailureFallsBack(t *testing.T) {
	p := newRecordingPrinter()
	repo := &stubInvoiceRepo{invoice: storedInvoice()}
	renderer := render.NewRenderer("PUZZLE PIZZA", "Rs. ", 300)
	catalog := &fakeCatalogRepo{listErr: apperror.NewNetworkError("backend unreachable")}
	svc := NewPrintService(renderer, p, "network", 32, time.Millisecond, repo, catalog)

	receipt, err := svc.PrintReceipt(context.Background(), 42)
	require.NoError(t, err, "name resolution is best effort")
	assert.Equal(t, "Item #1", receipt.Items[0].Name)
	assert.Equal(t, "Item #2", receipt.Items[1].Name)
}

func TestFormatReceiptContent(t *testing.T) {
	svc, repo := newPrintFixture(newRecordingPrinter())
	lookup := entity.NewItemLookup(testCatalog().items)

	receipt := svc.BuildReceipt(repo.invoice, lookup)
	data := string(FormatReceipt(receipt, 32))

	assert.Contains(t, data, "PUZZLE PIZZA")
	assert.Contains(t, data, "Invoice #42")
	assert.Contains(t, data, "Margherita")
	assert.Contains(t, data, "@ Rs. 500.00 each")
	assert.Contains(t, data, "Rs. 1430.00")
	assert.Contains(t, data, "Thank you for choosing PUZZLE PIZZA!")
}

func TestGetStatus(t *testing.T) {
	p := newRecordingPrinter()
	svc, _ := newPrintFixture(p)

	status := svc.GetStatus()
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
	assert.Equal(t, "network", status.Type)
}
