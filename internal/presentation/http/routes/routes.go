package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/puzzlepizza/pos-admin/internal/config"
	"github.com/puzzlepizza/pos-admin/internal/presentation/http/handler"
	"github.com/puzzlepizza/pos-admin/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Item    *handler.ItemHandler
	Invoice *handler.InvoiceHandler
	Print   *handler.PrintHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := middleware.NewClientRateLimiter(
		deps.Cfg.RateLimit.RequestsPerSecond,
		deps.Cfg.RateLimit.Burst,
	)
	router.Use(rateLimiter.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		items := v1.Group("/items")
		{
			items.GET("", h.Item.List)
			items.GET("/paginated", h.Item.ListPaginated)
			items.POST("", h.Item.Create)
			items.PUT("/:id", h.Item.Update)
			items.DELETE("/:id", h.Item.Delete)
		}

		invoices := v1.Group("/invoices")
		{
			invoices.GET("", h.Invoice.List)
			invoices.GET("/:id", h.Invoice.Get)
			invoices.GET("/:id/print", h.Print.Document)
			invoices.POST("/:id/receipt", h.Print.PrintReceipt)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", h.Invoice.StartSession)
			sessions.GET("/:id", h.Invoice.GetSession)
			sessions.POST("/:id/lines", h.Invoice.AddLine)
			sessions.POST("/:id/lines/remove", h.Invoice.RemoveLine)
			sessions.POST("/:id/lines/select", h.Invoice.SelectItem)
			sessions.POST("/:id/lines/quantity", h.Invoice.SetQuantity)
			sessions.POST("/:id/customer", h.Invoice.SetCustomer)
			sessions.POST("/:id/tax", h.Invoice.SetTax)
			sessions.POST("/:id/submit", h.Invoice.Submit)
			sessions.POST("/:id/reset", h.Invoice.ResetSession)
		}

		v1.GET("/printer/status", h.Print.Status)
	}

	return router
}
