package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/puzzlepizza/pos-admin/internal/application/service"
	"github.com/puzzlepizza/pos-admin/internal/domain/entity"
	"github.com/puzzlepizza/pos-admin/internal/presentation/http/dto/request"
	"github.com/puzzlepizza/pos-admin/internal/presentation/http/dto/response"
)

// ItemHandler handles catalog item HTTP requests
type ItemHandler struct {
	catalogService *service.CatalogService
}

// NewItemHandler creates a new item handler
func NewItemHandler(catalogService *service.CatalogService) *ItemHandler {
	return &ItemHandler{catalogService: catalogService}
}

// List returns the full catalog.
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.catalogService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Items retrieved", items)
}

// ListPaginated returns one page of items.
func (h *ItemHandler) ListPaginated(c *gin.Context) {
	page, err := h.catalogService.ListPage(c.Request.Context(), PageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, 200, "Items retrieved", page)
}

// Create creates a new catalog item.
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item := &entity.Item{
		Name:        req.Name,
		Type:        req.Type,
		Price:       req.Price,
		Description: req.Description,
	}
	created, err := h.catalogService.Create(c.Request.Context(), item)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Item created", created)
}

// Update updates an existing catalog item.
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := IDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid item id")
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item := &entity.Item{
		ID:          id,
		Name:        req.Name,
		Type:        req.Type,
		Price:       req.Price,
		Description: req.Description,
	}
	updated, err := h.catalogService.Update(c.Request.Context(), item)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item updated", updated)
}

// Delete removes a catalog item.
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := IDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid item id")
		return
	}
	if err := h.catalogService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
