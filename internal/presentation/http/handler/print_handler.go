package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/puzzlepizza/pos-admin/internal/application/service"
	"github.com/puzzlepizza/pos-admin/internal/presentation/http/dto/response"
)

// PrintHandler handles printable invoice documents and receipt printing
type PrintHandler struct {
	printService *service.PrintService
}

// NewPrintHandler creates a new print handler
func NewPrintHandler(printService *service.PrintService) *PrintHandler {
	return &PrintHandler{printService: printService}
}

// Document serves the self-contained printable invoice document. The admin
// UI opens it in a new 800x800 window; with autoprint=1 (the default) the
// document triggers the print dialog after the settle delay and closes
// itself.
func (h *PrintHandler) Document(c *gin.Context) {
	id, ok := IDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice id")
		return
	}
	autoPrint := c.DefaultQuery("autoprint", "1") != "0"

	doc, err := h.printService.Document(c.Request.Context(), id, autoPrint)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// PrintReceipt dispatches the invoice to the thermal printer, fire-and-forget,
// and returns the composed receipt for display.
func (h *PrintHandler) PrintReceipt(c *gin.Context) {
	id, ok := IDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice id")
		return
	}
	receipt, err := h.printService.PrintReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt dispatched", receipt)
}

// Status returns printer connection status.
func (h *PrintHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status", h.printService.GetStatus())
}
