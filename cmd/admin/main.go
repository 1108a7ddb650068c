package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/puzzlepizza/pos-admin/internal/application/service"
	"github.com/puzzlepizza/pos-admin/internal/config"
	"github.com/puzzlepizza/pos-admin/internal/infrastructure/backend"
	"github.com/puzzlepizza/pos-admin/internal/presentation/http/handler"
	"github.com/puzzlepizza/pos-admin/internal/presentation/http/routes"
	"github.com/puzzlepizza/pos-admin/internal/render"
	"github.com/puzzlepizza/pos-admin/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Backend client (the pizza shop backend owns all persistence)
	client := backend.NewClient(cfg.Backend.BaseURL, &http.Client{
		Timeout: cfg.Backend.Timeout,
	})
	catalogRepo := backend.NewCatalogRepository(client)
	invoiceRepo := backend.NewInvoiceRepository(client)

	// Thermal printer for receipt dispatch; falls back to a no-op printer
	// so a missing device never breaks invoicing
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Invoice document renderer
	renderer := render.NewRenderer(
		cfg.Shop.Name,
		cfg.Shop.CurrencyPrefix,
		cfg.Printer.SettleDelay.Milliseconds(),
	)

	// Initialize services
	sessions := service.NewSessionStore(cfg.Session.TTL)
	catalogService := service.NewCatalogService(catalogRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, catalogRepo, sessions)
	printService := service.NewPrintService(
		renderer,
		thermalPrinter,
		cfg.Printer.Type,
		cfg.Printer.CharWidth,
		cfg.Printer.SettleDelay,
		invoiceRepo,
		catalogRepo,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Item:    handler.NewItemHandler(catalogService),
		Invoice: handler.NewInvoiceHandler(invoiceService),
		Print:   handler.NewPrintHandler(printService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{Cfg: cfg})

	port := cfg.App.Port
	if port == "" {
		port = "3000"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)
	log.Printf("Backend: %s", cfg.Backend.BaseURL)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
