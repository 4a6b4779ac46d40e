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

	appanalytics "github.com/jhoicas/Farmacia-api/internal/application/analytics"
	"github.com/jhoicas/Farmacia-api/internal/application/billing"
	"github.com/jhoicas/Farmacia-api/internal/application/customers"
	"github.com/jhoicas/Farmacia-api/internal/application/shelving"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/kvstore"
	infrapdf "github.com/jhoicas/Farmacia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Farmacia-api/internal/interfaces/http"
	"github.com/jhoicas/Farmacia-api/internal/scheduler"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var store kvstore.Store
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pg := postgres.NewKVStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema kv_store")
		}
		store = pg
	default:
		fs, err := kvstore.NewOSFileStore(cfg.Store.DataDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Store.DataDir).Msg("abrir almacén en disco")
		}
		store = fs
	}

	db := storage.Open(store, log, storage.Options{SeedDemo: cfg.Store.SeedDemo})
	txRunner := storage.NewTxRunner(db)

	itemUC := usecase.NewItemUseCase(txRunner, db.Items(), db.Placements(), log)
	alertUC := usecase.NewAlertUseCase(db.Items(), cfg.Alerts.ExpiryDays, log)
	shelfUC := shelving.NewShelfUseCase(txRunner, db.Shelves(), db.Placements(), db.Items(), db.Transfers(), log)
	transferUC := shelving.NewTransferUseCase(txRunner, log)
	shelfAnalyticsUC := appanalytics.NewShelfAnalyticsUseCase(db.Transfers(), db.Placements(), db.Shelves(), db.Items())
	dashboardUC := appanalytics.NewDashboardUseCase(db.Sales(), db.Items(), cfg.Alerts.ExpiryDays)
	customerUC := customers.NewCustomerUseCase(db.Customers(), db.Sales(), db.Items(), log)

	// PDF: comprobante de venta
	receipts := infrapdf.NewReceiptGenerator()
	saleUC := billing.NewSaleUseCase(txRunner, db.Sales(), db.Items(), db.Customers(), receipts, billing.SaleConfig{
		TaxRate:       &cfg.Pharmacy.TaxRate,
		InvoicePrefix: cfg.Pharmacy.InvoicePrefix,
		PharmacyName:  cfg.Pharmacy.Name,
	}, log)

	jobs := scheduler.New(cfg.Alerts.Cron, alertUC, log)
	if err := jobs.Start(); err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs (requiere swag init)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Farmacia API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:      itemUC,
		AlertUC:     alertUC,
		ShelfUC:     shelfUC,
		TransferUC:  transferUC,
		AnalyticsUC: shelfAnalyticsUC,
		DashboardUC: dashboardUC,
		SaleUC:      saleUC,
		CustomerUC:  customerUC,
		Store:       db,
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
	jobs.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
