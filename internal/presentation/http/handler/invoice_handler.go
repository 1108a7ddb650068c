package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/puzzlepizza/pos-admin/internal/application/service"
	"github.com/puzzlepizza/pos-admin/internal/presentation/http/dto/request"
	"github.com/puzzlepizza/pos-admin/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice listing and the invoice-creation session flow
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List returns one page of invoice summaries.
func (h *InvoiceHandler) List(c *gin.Context) {
	page, err := h.invoiceService.ListPage(c.Request.Context(), PageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, 200, "Invoices retrieved", page)
}

// Get returns the full invoice detail.
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := IDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice id")
		return
	}
	inv, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved", inv)
}

// StartSession begins a new invoice-creation session.
func (h *InvoiceHandler) StartSession(c *gin.Context) {
	session := h.invoiceService.StartSession()
	response.Created(c, "Session started", h.invoiceService.Snapshot(session))
}

// GetSession returns the session's draft state with live totals.
func (h *InvoiceHandler) GetSession(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	response.OK(c, "Session retrieved", h.invoiceService.Snapshot(session))
}

// AddLine appends an empty draft line.
func (h *InvoiceHandler) AddLine(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	view, err := h.invoiceService.AddLine(session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line added", view)
}

// RemoveLine deletes a draft line.
func (h *InvoiceHandler) RemoveLine(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req request.RemoveLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	view, err := h.invoiceService.RemoveLine(session, req.Line)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line removed", view)
}

// SelectItem assigns a catalog item (and its current price) to a draft line.
func (h *InvoiceHandler) SelectItem(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req request.SelectItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	view, err := h.invoiceService.SelectItem(c.Request.Context(), session, req.Line, req.ItemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item selected", view)
}

// SetQuantity updates a draft line's quantity.
func (h *InvoiceHandler) SetQuantity(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	view, err := h.invoiceService.SetQuantity(session, req.Line, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quantity updated", view)
}

// SetCustomer updates the draft's customer name.
func (h *InvoiceHandler) SetCustomer(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req request.SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	view, err := h.invoiceService.SetCustomer(session, req.CustomerName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer updated", view)
}

// SetTax updates the draft's tax rate.
func (h *InvoiceHandler) SetTax(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req request.SetTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	view, err := h.invoiceService.SetTax(session, req.Tax)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tax updated", view)
}

// Submit validates the draft and creates the invoice on the backend.
func (h *InvoiceHandler) Submit(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	view, err := h.invoiceService.Submit(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Invoice created", view)
}

// ResetSession starts over with a fresh draft ("create another invoice").
func (h *InvoiceHandler) ResetSession(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	view, err := h.invoiceService.Reset(session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Session reset", view)
}

func (h *InvoiceHandler) session(c *gin.Context) (*service.Session, bool) {
	id, ok := SessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session id")
		return nil, false
	}
	session, err := h.invoiceService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return session, true
}
