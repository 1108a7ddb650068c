package repository

import (
	"context"

	"github.com/puzzlepizza/pos-admin/internal/domain/entity"
)

// InvoiceRepository defines the invoice operations backed by the pizza shop
// backend. Invoices are created once and read-only afterwards; the backend
// owns the authoritative total.
type InvoiceRepository interface {
	// ListPage fetches one page of invoice summaries.
	ListPage(ctx context.Context, page int) ([]entity.Invoice, error)
	// GetByID fetches the full invoice detail.
	GetByID(ctx context.Context, id int) (*entity.Invoice, error)
	// Create persists a new invoice. Only CustomerName, Tax and Lines are
	// sent; the returned record carries the server-assigned id, created_at
	// and authoritative total.
	Create(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error)
}
