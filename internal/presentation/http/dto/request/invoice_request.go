package request

import "github.com/shopspring/decimal"

// AddLineRequest adds an empty draft line to a session; it carries no body
// fields but exists for symmetry with the other session mutations.
type AddLineRequest struct{}

// SelectItemRequest assigns a catalog item to a draft line.
type SelectItemRequest struct {
	Line   int `json:"line"`
	ItemID int `json:"item_id" binding:"required"`
}

// SetQuantityRequest updates a draft line's quantity.
type SetQuantityRequest struct {
	Line     int `json:"line"`
	Quantity int `json:"quantity"`
}

// RemoveLineRequest removes a draft line.
type RemoveLineRequest struct {
	Line int `json:"line"`
}

// SetCustomerRequest updates the draft's customer name.
type SetCustomerRequest struct {
	CustomerName string `json:"customer_name"`
}

// SetTaxRequest updates the draft's tax rate (percent units).
type SetTaxRequest struct {
	Tax decimal.Decimal `json:"tax"`
}
