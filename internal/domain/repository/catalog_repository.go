package repository

import (
	"context"

	"github.com/puzzlepizza/pos-admin/internal/domain/entity"
)

// CatalogRepository defines the catalog operations backed by the pizza shop
// backend. All reads and writes go over HTTP/JSON; nothing is stored locally.
type CatalogRepository interface {
	// List fetches the full catalog.
	List(ctx context.Context) ([]entity.Item, error)
	// ListPage fetches one page of items. A page shorter than the backend's
	// page size signals the last page.
	ListPage(ctx context.Context, page int) ([]entity.Item, error)
	// Create adds a new catalog item and returns the created record.
	Create(ctx context.Context, item *entity.Item) (*entity.Item, error)
	// Update replaces an existing catalog item and returns the updated record.
	Update(ctx context.Context, item *entity.Item) (*entity.Item, error)
	// Delete removes a catalog item by id.
	Delete(ctx context.Context, id int) error
}
