package service

import (
	"context"

	"github.com/puzzlepizza/pos-admin/internal/domain/entity"
	"github.com/puzzlepizza/pos-admin/internal/domain/repository"
	"github.com/puzzlepizza/pos-admin/internal/infrastructure/backend"
	"github.com/puzzlepizza/pos-admin/pkg/apperror"
	"github.com/puzzlepizza/pos-admin/pkg/pagination"
)

// CatalogService handles catalog item operations, proxied to the backend.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	pageView    pagination.View[entity.Item]
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// List returns the full catalog.
func (s *CatalogService) List(ctx context.Context) ([]entity.Item, error) {
	return s.catalogRepo.List(ctx)
}

// Lookup returns the current catalog keyed by item id, for print-time name
// resolution.
func (s *CatalogService) Lookup(ctx context.Context) (entity.ItemLookup, error) {
	items, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return entity.NewItemLookup(items), nil
}

// ListPage returns one page of items. Fetches are sequence-tagged so a fast
// double page-change cannot leave a stale response on screen: the returned
// page is always the most recently requested one that has resolved.
func (s *CatalogService) ListPage(ctx context.Context, page int) (pagination.Page[entity.Item], error) {
	seq := s.pageView.Issue()
	items, err := s.catalogRepo.ListPage(ctx, page)
	if err != nil {
		return pagination.Page[entity.Item]{}, err
	}
	fetched := pagination.NewPage(items, page, backend.ItemsPageSize)
	if s.pageView.Accept(seq, fetched) {
		return fetched, nil
	}
	return s.pageView.Current(), nil
}

// Create validates and creates a new catalog item. The free-form type is
// lowercased on write.
func (s *CatalogService) Create(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}
	item.NormalizeType()
	return s.catalogRepo.Create(ctx, item)
}

// Update validates and updates an existing catalog item.
func (s *CatalogService) Update(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	if item.ID == 0 {
		return nil, apperror.NewValidationError("item id required")
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	item.NormalizeType()
	return s.catalogRepo.Update(ctx, item)
}

// Delete removes a catalog item.
func (s *CatalogService) Delete(ctx context.Context, id int) error {
	if id == 0 {
		return apperror.NewValidationError("item id required")
	}
	return s.catalogRepo.Delete(ctx, id)
}

func validateItem(item *entity.Item) error {
	if item.Name == "" {
		return apperror.NewValidationError("item name required")
	}
	if item.Price.IsNegative() {
		return apperror.NewValidationError("item price must be >= 0")
	}
	return nil
}
