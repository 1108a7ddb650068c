package request

import "github.com/shopspring/decimal"

// CreateItemRequest represents a catalog item creation request
type CreateItemRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Type        string          `json:"type" binding:"required,max=100"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// UpdateItemRequest represents a catalog item update request
type UpdateItemRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Type        string          `json:"type" binding:"required,max=100"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}
