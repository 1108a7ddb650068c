package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzlepizza/pos-admin/internal/domain/entity"
	"github.com/puzzlepizza/pos-admin/pkg/apperror"
)

func TestCatalogCreateNormalizesType(t *testing.T) {
	svc := NewCatalogService(testCatalog())

	created, err := svc.Create(context.Background(), &entity.Item{
		Name:  "Farmhouse",
		Type:  "  Pizza ",
		Price: decimal.NewFromInt(650),
	})
	require.NoError(t, err)
	assert.Equal(t, "pizza", created.Type)
}

func TestCatalogCreateValidation(t *testing.T) {
	svc := NewCatalogService(testCatalog())
	ctx := context.Background()

	_, err := svc.Create(ctx, &entity.Item{Type: "pizza", Price: decimal.NewFromInt(100)})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Create(ctx, &entity.Item{Name: "Oddity", Price: decimal.NewFromInt(-1)})
	assert.True(t, apperror.IsValidation(err))
}

func TestCatalogUpdateRequiresID(t *testing.T) {
	svc := NewCatalogService(testCatalog())

	_, err := svc.Update(context.Background(), &entity.Item{
		Name:  "Margherita",
		Price: decimal.NewFromInt(500),
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestCatalogDeleteRequiresID(t *testing.T) {
	svc := NewCatalogService(testCatalog())
	assert.True(t, apperror.IsValidation(svc.Delete(context.Background(), 0)))
	assert.NoError(t, svc.Delete(context.Background(), 1))
}

func TestCatalogLookup(t *testing.T) {
	svc := NewCatalogService(testCatalog())

	lookup, err := svc.Lookup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Margherita", lookup.DisplayName(1))
	assert.Equal(t, "Item #9", lookup.DisplayName(9))
}
