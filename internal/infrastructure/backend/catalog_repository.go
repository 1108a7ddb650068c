package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/puzzlepizza/pos-admin/internal/domain/entity"
	"github.com/puzzlepizza/pos-admin/internal/domain/repository"
)

// ItemsPageSize is the backend's fixed page size for GET /items/paginated.
const ItemsPageSize = 10

// CatalogRepository implements repository.CatalogRepository against the
// backend's /v1/items endpoints.
type CatalogRepository struct {
	client *Client
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(client *Client) *CatalogRepository {
	return &CatalogRepository{client: client}
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// List fetches the full catalog.
func (r *CatalogRepository) List(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	if err := r.client.do(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListPage fetches one page of items (page size 10).
func (r *CatalogRepository) ListPage(ctx context.Context, page int) ([]entity.Item, error) {
	var items []entity.Item
	path := fmt.Sprintf("/items/paginated?page=%d", page)
	if err := r.client.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create adds a new catalog item and returns the created record.
func (r *CatalogRepository) Create(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	var created entity.Item
	if err := r.client.do(ctx, http.MethodPost, "/items", item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces an existing catalog item and returns the updated record.
func (r *CatalogRepository) Update(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	var updated entity.Item
	path := fmt.Sprintf("/items/%d", item.ID)
	if err := r.client.do(ctx, http.MethodPut, path, item, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a catalog item by id.
func (r *CatalogRepository) Delete(ctx context.Context, id int) error {
	return r.client.do(ctx, http.MethodDelete, fmt.Sprintf("/items/%d", id), nil, nil)
}
