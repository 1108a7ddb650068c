package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/puzzlepizza/pos-admin/internal/domain/entity"
	"github.com/puzzlepizza/pos-admin/internal/domain/repository"
)

// InvoicesPageSize is the backend's fixed page size for GET /invoices.
const InvoicesPageSize = 5

// InvoiceRepository implements repository.InvoiceRepository against the
// backend's /v1/invoices endpoints.
type InvoiceRepository struct {
	client *Client
}

// NewInvoiceRepository creates a new invoice repository.
func NewInvoiceRepository(client *Client) *InvoiceRepository {
	return &InvoiceRepository{client: client}
}

var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)

// ListPage fetches one page of invoice summaries (page size 5).
func (r *InvoiceRepository) ListPage(ctx context.Context, page int) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	path := fmt.Sprintf("/invoices?page=%d", page)
	if err := r.client.do(ctx, http.MethodGet, path, nil, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// GetByID fetches the full invoice detail.
func (r *InvoiceRepository) GetByID(ctx context.Context, id int) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := r.client.do(ctx, http.MethodGet, fmt.Sprintf("/invoices/%d", id), nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// createInvoiceItem is one line in the invoice creation request body.
type createInvoiceItem struct {
	ItemID   int         `json:"item_id"`
	Quantity int         `json:"quantity"`
	Price    json.Number `json:"price"`
}

// createInvoiceRequest is the invoice creation wire format. Only the fields
// the backend expects are sent; id, total and created_at are server-assigned.
type createInvoiceRequest struct {
	CustomerName string              `json:"customer_name"`
	Tax          json.Number         `json:"tax"`
	Items        []createInvoiceItem `json:"items"`
}

// Create persists a new invoice and returns the canonical record, including
// the server-assigned id, created_at and authoritative total.
func (r *InvoiceRepository) Create(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error) {
	req := createInvoiceRequest{
		CustomerName: inv.CustomerName,
		Tax:          json.Number(inv.Tax.String()),
		Items:        make([]createInvoiceItem, 0, len(inv.Lines)),
	}
	for _, line := range inv.Lines {
		req.Items = append(req.Items, createInvoiceItem{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
			Price:    json.Number(line.Price.String()),
		})
	}

	var created entity.Invoice
	if err := r.client.do(ctx, http.MethodPost, "/invoices", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
