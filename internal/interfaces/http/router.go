package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Carnes-api/internal/application/billing"
	"github.com/jhoicas/Carnes-api/internal/application/inventory"
	"github.com/jhoicas/Carnes-api/internal/application/sales"
	"github.com/jhoicas/Carnes-api/internal/application/usecase"
	"github.com/jhoicas/Carnes-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	SlaughterUC *inventory.SlaughterUseCase
	LotUC       *inventory.LotUseCase
	OrderUC     *sales.OrderUseCase
	InvoiceUC   *billing.InvoiceUseCase
	InvoicePDF  *billing.PDFUseCase
	LogBuffer   *logger.RingBuffer
}

// NewConfig configuración de fiber compartida por la API y los tests.
// Immutable: los params y el body se copian; los repositorios en memoria guardan esos strings.
func NewConfig(appName string, log *logger.Logger) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	}
}

// Router registra las rutas de la API. Las rutas estáticas van antes que /:id.
func Router(app *fiber.App, deps RouterDeps) {
	val := NewValidator()
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, val)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Post("/bulk", productHandler.CreateBulk)
	products.Post("/init-defaults", productHandler.InitDefaults)
	products.Get("/search", productHandler.Search)
	products.Get("/with-stock", productHandler.ListWithStock)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/with-stock", productHandler.GetWithStock)
	products.Get("/:id/available-stock", productHandler.AvailableStock)
	products.Put("/:id", productHandler.Update)
	products.Put("/:id/manual-stock", productHandler.SetManualStock)
	products.Delete("/:id", productHandler.Delete)

	// Catálogo por defecto
	initGroup := api.Group("/init")
	initGroup.Get("/products/default", productHandler.DefaultCatalogue)
	initGroup.Post("/products/reset", productHandler.InitDefaults)
	initGroup.Post("/products", productHandler.InitProducts)
	initGroup.Delete("/products/clear", productHandler.ClearProducts)

	// Slaughters
	slaughters := api.Group("/slaughters")
	slaughterHandler := NewSlaughterHandler(deps.SlaughterUC, val)
	slaughters.Get("/", slaughterHandler.List)
	slaughters.Post("/", slaughterHandler.Create)
	slaughters.Get("/search", slaughterHandler.Search)
	slaughters.Get("/date-range", slaughterHandler.DateRange)
	slaughters.Get("/:id", slaughterHandler.GetByID)
	slaughters.Put("/:id", slaughterHandler.Update)
	slaughters.Delete("/:id", slaughterHandler.Delete)

	// Meat cuts (lotes)
	lots := api.Group("/meat-cuts")
	lotHandler := NewLotHandler(deps.LotUC)
	lots.Get("/", lotHandler.List)
	lots.Get("/available", lotHandler.ListAvailable)
	lots.Get("/search", lotHandler.Search)
	lots.Get("/slaughter/:slaughterId", lotHandler.ListBySlaughter)
	lots.Get("/availability/product/:productId", lotHandler.AvailabilityByProduct)
	lots.Get("/:id", lotHandler.GetByID)

	// Orders
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, val)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/customers", orderHandler.Customers)
	orders.Get("/search", orderHandler.Search)
	orders.Get("/status/:status", orderHandler.ByStatus)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Delete("/:id", orderHandler.Delete)

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF, val)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Post("/from-order/:orderId", invoiceHandler.CreateFromOrder)
	invoices.Post("/batch/pdf", invoiceHandler.BatchPDF)
	invoices.Get("/number/:number", invoiceHandler.GetByNumber)
	invoices.Get("/by-order/:orderId", invoiceHandler.GetByOrder)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Logs
	if deps.LogBuffer != nil {
		logs := api.Group("/logs")
		logHandler := NewLogHandler(deps.LogBuffer)
		logs.Get("/", logHandler.Recent)
		logs.Delete("/", logHandler.Clear)
		logs.Get("/count", logHandler.Count)
		logs.Get("/since", logHandler.Since)
		logs.Get("/level/:level", logHandler.ByLevel)
	}
}
