package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine represents a persisted line item on an invoice. Price is a
// snapshot of the catalog price taken at order time and is never re-derived
// from the current catalog.
type InvoiceLine struct {
	ItemID   int             `json:"item_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// LineTotal returns quantity x unit price for this line.
func (l InvoiceLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Invoice represents a persisted customer invoice. It is server-authoritative:
// once the backend returns it, this service treats it as read-only, and Total
// is the ground truth over any local recomputation.
type Invoice struct {
	ID           int             `json:"id"`
	CustomerName string          `json:"customer_name"`
	Lines        []InvoiceLine   `json:"items"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Subtotal recomputes the pre-tax sum over all lines. Used only for the
// display breakdown; the persisted Total stays authoritative.
func (inv Invoice) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range inv.Lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	return subtotal
}

// TaxAmount recomputes the tax portion from the subtotal and the persisted
// tax rate (percent units).
func (inv Invoice) TaxAmount() decimal.Decimal {
	return inv.Subtotal().Mul(inv.Tax).Div(decimal.NewFromInt(100))
}

// ComputedTotal recomputes subtotal + tax with no intermediate rounding.
// Normally equals Total; disagreement is a data-integrity signal.
func (inv Invoice) ComputedTotal() decimal.Decimal {
	return inv.Subtotal().Add(inv.TaxAmount())
}

type invoiceLineJSON struct {
	ItemID   int         `json:"item_id"`
	Quantity int         `json:"quantity"`
	Price    json.Number `json:"price"`
}

type invoiceJSON struct {
	ID           int               `json:"id"`
	CustomerName string            `json:"customer_name"`
	Lines        []invoiceLineJSON `json:"items"`
	Tax          json.Number       `json:"tax"`
	Total        json.Number       `json:"total"`
	CreatedAt    time.Time         `json:"created_at"`
}

// MarshalJSON emits monetary fields as plain JSON numbers to match the
// backend wire format.
func (inv Invoice) MarshalJSON() ([]byte, error) {
	lines := make([]invoiceLineJSON, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, invoiceLineJSON{
			ItemID:   l.ItemID,
			Quantity: l.Quantity,
			Price:    json.Number(l.Price.String()),
		})
	}
	return json.Marshal(invoiceJSON{
		ID:           inv.ID,
		CustomerName: inv.CustomerName,
		Lines:        lines,
		Tax:          json.Number(inv.Tax.String()),
		Total:        json.Number(inv.Total.String()),
		CreatedAt:    inv.CreatedAt,
	})
}

// MarshalJSON emits the line's price as a plain JSON number.
func (l InvoiceLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(invoiceLineJSON{
		ItemID:   l.ItemID,
		Quantity: l.Quantity,
		Price:    json.Number(l.Price.String()),
	})
}
