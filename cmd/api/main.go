package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Carnes-api/internal/application/billing"
	"github.com/jhoicas/Carnes-api/internal/application/inventory"
	"github.com/jhoicas/Carnes-api/internal/application/sales"
	"github.com/jhoicas/Carnes-api/internal/application/usecase"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
	"github.com/jhoicas/Carnes-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Carnes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Carnes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Carnes-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/Carnes-api/internal/interfaces/http"
	"github.com/jhoicas/Carnes-api/pkg/config"
	"github.com/jhoicas/Carnes-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	logBuffer := logger.NewRingBuffer(cfg.Log.BufferSize)
	log := logger.New(logger.Config{
		Env:    cfg.App.Env,
		Level:  cfg.Log.Level,
		Buffer: logBuffer,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos    repository.Repos
		txRunner repository.TxRunner
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		repos = store.Repos()
		txRunner = store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				log.Fatal().Err(err).Msg("aplicar migraciones")
			}
		}
		repos = postgres.NewRepos(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	productUC := usecase.NewProductUseCase(repos.Products, repos.Lots, txRunner, log)
	slaughterUC := inventory.NewSlaughterUseCase(txRunner, repos.Slaughters, log)
	lotUC := inventory.NewLotUseCase(repos.Lots, repos.Products)
	orderUC := sales.NewOrderUseCase(txRunner, repos.Orders, log)

	invoiceUC := billing.NewInvoiceUseCase(txRunner, repos.Invoices, repos.Orders, billing.Settings{
		TaxRate:         cfg.Billing.TaxRate,
		InvoicePrefix:   cfg.Billing.InvoicePrefix,
		PaymentTermDays: cfg.Billing.PaymentTermDays,
		CreatedBy:       cfg.Billing.CreatedBy,
	}, log)

	// PDF: comprobante de factura (una página por factura)
	invoicePDFUC := billing.NewPDFUseCase(
		repos.Invoices, repos.Orders, infrapdf.NewMarotoPDFGenerator(),
		billing.CompanyInfo{
			Name:    cfg.Company.Name,
			Address: cfg.Company.Address,
			Phone:   cfg.Company.Phone,
			Email:   cfg.Company.Email,
		},
		log,
	)

	jobs := scheduler.New(cfg.Billing.OverdueCron, invoiceUC, log)
	if err := jobs.Start(); err != nil {
		log.Fatal().Err(err).Msg("iniciar scheduler")
	}

	app := fiber.New(httpRouter.NewConfig(cfg.App.Name, log))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Carnes API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger no disponible")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		SlaughterUC: slaughterUC,
		LotUC:       lotUC,
		OrderUC:     orderUC,
		InvoiceUC:   invoiceUC,
		InvoicePDF:  invoicePDFUC,
		LogBuffer:   logBuffer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	jobs.Stop()

	log.Info().Msg("aplicación detenida")
}
