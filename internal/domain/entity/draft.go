package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DraftLine is an in-progress, not-yet-persisted invoice line held only in
// session state. ItemID 0 means no catalog item has been selected yet.
// UnitPrice is copied from the catalog item at selection time.
type DraftLine struct {
	ItemID      int             `json:"item_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DisplayName string          `json:"display_name"`
}

// Totals holds the live-preview aggregate over a draft line list. All three
// values are exact decimals; rounding happens only at display time.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ComputeTotals aggregates the draft lines under the given tax rate (percent
// units). Lines with no item selected are skipped. The computation is pure
// and side-effect-free; callers re-run it on every draft mutation.
//
// No intermediate rounding is applied: Total is derived from the unrounded
// subtotal and tax amount so the three displayed values never drift apart
// from compounded rounding.
func ComputeTotals(lines []DraftLine, taxPercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.ItemID == 0 {
			continue
		}
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	taxAmount := subtotal.Mul(taxPercent).Div(decimal.NewFromInt(100))
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount),
	}
}

type totalsJSON struct {
	Subtotal  json.Number `json:"subtotal"`
	TaxAmount json.Number `json:"tax_amount"`
	Total     json.Number `json:"total"`
}

// MarshalJSON emits the totals rounded half-up to two decimal places, the
// same rule used everywhere monetary values are displayed.
func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(totalsJSON{
		Subtotal:  json.Number(t.Subtotal.StringFixed(2)),
		TaxAmount: json.Number(t.TaxAmount.StringFixed(2)),
		Total:     json.Number(t.Total.StringFixed(2)),
	})
}

type draftLineJSON struct {
	ItemID      int         `json:"item_id"`
	Quantity    int         `json:"quantity"`
	UnitPrice   json.Number `json:"unit_price"`
	DisplayName string      `json:"display_name"`
}

// MarshalJSON emits the unit price as a plain JSON number.
func (d DraftLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(draftLineJSON{
		ItemID:      d.ItemID,
		Quantity:    d.Quantity,
		UnitPrice:   json.Number(d.UnitPrice.String()),
		DisplayName: d.DisplayName,
	})
}
