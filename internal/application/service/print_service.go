package service

import (
	"context"
	"log"
	"time"

	"github.com/puzzlepizza/pos-admin/internal/domain/entity"
	"github.com/puzzlepizza/pos-admin/internal/domain/repository"
	"github.com/puzzlepizza/pos-admin/internal/render"
	"github.com/puzzlepizza/pos-admin/pkg/printer"
)

// PrintService produces printable invoice documents and dispatches receipts
// to the configured thermal printer. It holds no per-invoice state: printing
// the same invoice twice yields equivalent output both times.
type PrintService struct {
	renderer    *render.Renderer
	printer     printer.Printer
	printerType string
	charWidth   int
	settleDelay time.Duration
	invoiceRepo repository.InvoiceRepository
	catalogRepo repository.CatalogRepository
}

// NewPrintService creates a new print service.
func NewPrintService(
	renderer *render.Renderer,
	p printer.Printer,
	printerType string,
	charWidth int,
	settleDelay time.Duration,
	invoiceRepo repository.InvoiceRepository,
	catalogRepo repository.CatalogRepository,
) *PrintService {
	if charWidth <= 0 {
		charWidth = 32
	}
	return &PrintService{
		renderer:    renderer,
		printer:     p,
		printerType: printerType,
		charWidth:   charWidth,
		settleDelay: settleDelay,
		invoiceRepo: invoiceRepo,
		catalogRepo: catalogRepo,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrintService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// Document fetches an invoice and renders its printable document. Line names
// are resolved through the current catalog; ids missing from it render as
// "Item #<id>". When autoPrint is set the document triggers the browser
// print dialog after the settle delay and closes itself.
func (s *PrintService) Document(ctx context.Context, invoiceID int, autoPrint bool) (string, error) {
	inv, lookup, err := s.fetch(ctx, invoiceID)
	if err != nil {
		return "", err
	}
	s.checkTotals(inv)
	return s.renderer.Render(*inv, lookup, render.Options{AutoPrint: autoPrint})
}

// checkTotals compares the locally recomputed total against the persisted
// one. The server value is always the one displayed; a mismatch is a
// data-integrity signal worth a log line, not a failure.
func (s *PrintService) checkTotals(inv *entity.Invoice) {
	computed := inv.ComputedTotal().Round(2)
	persisted := inv.Total.Round(2)
	if !computed.Equal(persisted) {
		log.Printf("Warning: invoice %d total mismatch: backend=%s recomputed=%s",
			inv.ID, persisted.StringFixed(2), computed.StringFixed(2))
	}
}

// PrintReceipt fetches an invoice and dispatches its receipt to the thermal
// printer, fire-and-forget: the receipt is returned immediately for display
// while the print job runs in the background, and any printer failure is a
// logged no-op. The caller's session is never blocked or failed by printing.
func (s *PrintService) PrintReceipt(ctx context.Context, invoiceID int) (*entity.Receipt, error) {
	inv, lookup, err := s.fetch(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	s.checkTotals(inv)

	receipt := s.BuildReceipt(inv, lookup)
	data := FormatReceipt(receipt, s.charWidth)

	go func(id int, delay time.Duration, data []byte) {
		// give the printer's paper feed a moment between consecutive jobs
		time.Sleep(delay)
		if err := s.printer.Print(data); err != nil {
			log.Printf("Printer error (invoice %d): %v", id, err)
		}
	}(inv.ID, s.settleDelay, data)

	return receipt, nil
}

func (s *PrintService) fetch(ctx context.Context, invoiceID int) (*entity.Invoice, entity.ItemLookup, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.catalogRepo.List(ctx)
	if err != nil {
		// name resolution is best-effort; missing catalog means every line
		// falls back to its synthetic label
		log.Printf("Warning: catalog fetch failed for invoice %d, using fallback labels: %v", invoiceID, err)
		items = nil
	}
	return inv, entity.NewItemLookup(items), nil
}

// BuildReceipt composes the printable receipt value object from a persisted
// invoice, resolving names and formatting every monetary value once.
func (s *PrintService) BuildReceipt(inv *entity.Invoice, lookup entity.ItemLookup) *entity.Receipt {
	receipt := &entity.Receipt{
		ShopName:   s.renderer.ShopName(),
		InvoiceID:  inv.ID,
		Customer:   inv.CustomerName,
		Date:       inv.CreatedAt.Format("2006-01-02 15:04"),
		TaxPercent: inv.Tax.String(),
		SubTotal:   s.renderer.Money(inv.Subtotal()),
		TaxAmount:  s.renderer.Money(inv.TaxAmount()),
		Total:      s.renderer.Money(inv.Total),
	}
	for _, line := range inv.Lines {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      lookup.DisplayName(line.ItemID),
			Quantity:  line.Quantity,
			UnitPrice: s.renderer.Money(line.Price),
			LineTotal: s.renderer.Money(line.LineTotal()),
		})
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, charWidth int) []byte {
	doc := printer.NewDocument(charWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.ShopName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Invoice info
	doc.TextF("Invoice #%d", r.InvoiceID).
		KeyValue("Date:", r.Date)

	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, item.LineTotal)
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", r.SubTotal).
		KeyValue("Tax ("+r.TaxPercent+"%):", r.TaxAmount).
		SetBold(true).
		KeyValue("TOTAL:", r.Total).
		SetBold(false)

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		TextF("Thank you for choosing %s!", r.ShopName).
		Text("We hope to see you again soon.").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
