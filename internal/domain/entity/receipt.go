package entity

// ReceiptItem represents a single line item on a printed receipt, with the
// catalog name already resolved.
type ReceiptItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// Receipt is a value object representing a printable invoice. It is NOT a
// persisted record; it is composed from an Invoice and the catalog lookup at
// print time, with all monetary values already formatted to two decimals.
type Receipt struct {
	ShopName   string        `json:"shop_name"`
	InvoiceID  int           `json:"invoice_id"`
	Customer   string        `json:"customer"`
	Date       string        `json:"date"`
	Items      []ReceiptItem `json:"items"`
	TaxPercent string        `json:"tax_percent"`
	SubTotal   string        `json:"sub_total"`
	TaxAmount  string        `json:"tax_amount"`
	Total      string        `json:"total"`
}
