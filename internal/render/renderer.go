package render

import (
	"bytes"
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/puzzlepizza/pos-admin/internal/domain/entity"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice - {{.ShopName}}</title>
  <style>
    body { font-family: 'Segoe UI', Arial, Helvetica, sans-serif; background: #f4f6fa; color: #222; margin: 0; padding: 0; }
    .print-invoice-container { max-width: 720px; margin: 40px auto; background: #fff; border-radius: 18px; box-shadow: 0 6px 32px 0 rgba(0,0,0,0.10); padding: 0 0 36px 0; }
    .header-bar { background: linear-gradient(90deg, #10b981 0%, #059669 100%); border-radius: 18px 18px 0 0; padding: 32px 0 24px 0; text-align: center; }
    .shop-header { color: #fff; font-size: 2.5rem; font-weight: 800; letter-spacing: 0.12em; margin-bottom: 0; }
    .invoice-title { color: #059669; font-size: 1.45rem; font-weight: 700; margin: 32px 0 18px 0; text-align: left; padding-left: 40px; }
    .info-row { display: flex; justify-content: space-between; padding: 0 40px 18px 40px; font-size: 1.08rem; color: #444; }
    table { width: 90%; margin: 0 auto 1.5rem auto; border-collapse: collapse; border-radius: 8px; overflow: hidden; }
    th, td { border: 1px solid #e5e7eb; padding: 12px 14px; text-align: left; font-size: 1.05rem; }
    th { background: #f3f4f6; font-weight: 700; color: #059669; }
    tr:last-child td { border-bottom: 2px solid #059669; }
    .totals { width: 90%; margin: 0 auto; text-align: right; margin-top: 1.5rem; }
    .totals div { margin-bottom: 0.3rem; font-size: 1.08rem; }
    .totals .total { font-size: 1.25rem; font-weight: 700; color: #059669; }
    .footer { margin-top: 2.5rem; text-align: center; color: #888; font-size: 1.05rem; letter-spacing: 0.04em; }
    @media (max-width: 600px) {
      .print-invoice-container, .info-row, .invoice-title, .totals, table { padding-left: 10px !important; padding-right: 10px !important; width: 100% !important; }
    }
  </style>
</head>
<body>
  <div class="print-invoice-container">
    <div class="header-bar">
      <div class="shop-header">{{.ShopName}}</div>
    </div>
    <div class="invoice-title">Invoice</div>
    <div class="info-row">
      <div><strong>Customer:</strong> {{.Customer}}</div>
      <div><strong>Date:</strong> {{.Date}}</div>
      <div><strong>Invoice ID:</strong> {{.InvoiceID}}</div>
    </div>
    <table>
      <thead>
        <tr>
          <th>Item</th>
          <th>Quantity</th>
          <th>Unit Price</th>
          <th>Total</th>
        </tr>
      </thead>
      <tbody>
        {{range .Lines}}
        <tr>
          <td>{{.Name}}</td>
          <td>{{.Quantity}}</td>
          <td>{{.UnitPrice}}</td>
          <td>{{.LineTotal}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    <div class="totals">
      <div>Subtotal: <strong>{{.Subtotal}}</strong></div>
      <div>Tax ({{.TaxPercent}}%): <strong>{{.TaxAmount}}</strong></div>
      <div class="total">Total: {{.Total}}</div>
    </div>
    <div class="footer">Thank you for choosing {{.ShopName}}!<br/>We hope to see you again soon.</div>
  </div>
  {{if .AutoPrint}}
  <script>
    setTimeout(function () {
      window.print();
      window.close();
    }, {{.SettleDelayMS}});
  </script>
  {{end}}
</body>
</html>
`

// documentView is the data fed to the invoice template. All monetary values
// are pre-formatted strings so one rounding rule applies everywhere.
type documentView struct {
	ShopName      string
	InvoiceID     int
	Customer      string
	Date          string
	Lines         []lineView
	TaxPercent    string
	Subtotal      string
	TaxAmount     string
	Total         string
	AutoPrint     bool
	SettleDelayMS int64
}

type lineView struct {
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
}

// Renderer produces self-contained printable invoice documents. It holds the
// parsed template and shop display settings; rendering itself is pure, so the
// same invoice always yields the same document.
type Renderer struct {
	tpl            *template.Template
	shopName       string
	currencyPrefix string
	settleDelayMS  int64
}

// NewRenderer creates a renderer for the given shop display name and currency
// prefix. settleDelayMS is how long the print window waits for layout to
// settle before triggering the platform print action.
func NewRenderer(shopName, currencyPrefix string, settleDelayMS int64) *Renderer {
	return &Renderer{
		tpl:            template.Must(template.New("invoice").Parse(invoiceHTMLTemplate)),
		shopName:       shopName,
		currencyPrefix: currencyPrefix,
		settleDelayMS:  settleDelayMS,
	}
}

// Options control per-document rendering behavior.
type Options struct {
	// AutoPrint embeds the script that triggers the print dialog after the
	// settle delay and closes the window afterwards.
	AutoPrint bool
}

// Render produces the printable document for a persisted invoice. Line names
// are resolved through the lookup; ids missing from the catalog fall back to
// "Item #<id>" and never fail the render. The subtotal and tax lines are
// recomputed locally for display, but the total line always shows the
// server-persisted value verbatim.
func (r *Renderer) Render(inv entity.Invoice, lookup entity.ItemLookup, opts Options) (string, error) {
	view := documentView{
		ShopName:      r.shopName,
		InvoiceID:     inv.ID,
		Customer:      inv.CustomerName,
		Date:          inv.CreatedAt.Format("1/2/2006, 3:04:05 PM"),
		Lines:         make([]lineView, 0, len(inv.Lines)),
		TaxPercent:    inv.Tax.String(),
		Subtotal:      r.Money(inv.Subtotal()),
		TaxAmount:     r.Money(inv.TaxAmount()),
		Total:         r.Money(inv.Total),
		AutoPrint:     opts.AutoPrint,
		SettleDelayMS: r.settleDelayMS,
	}
	for _, line := range inv.Lines {
		view.Lines = append(view.Lines, lineView{
			Name:      lookup.DisplayName(line.ItemID),
			Quantity:  line.Quantity,
			UnitPrice: r.Money(line.Price),
			LineTotal: r.Money(line.LineTotal()),
		})
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Money formats a monetary value with the shop's currency prefix, rounded
// half-up to exactly two decimal places.
func (r *Renderer) Money(v decimal.Decimal) string {
	return r.currencyPrefix + v.StringFixed(2)
}

// ShopName returns the configured shop display name.
func (r *Renderer) ShopName() string {
	return r.shopName
}
