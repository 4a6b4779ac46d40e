package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Farmacia-api/internal/application/analytics"
	"github.com/jhoicas/Farmacia-api/internal/application/billing"
	"github.com/jhoicas/Farmacia-api/internal/application/customers"
	"github.com/jhoicas/Farmacia-api/internal/application/shelving"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *usecase.ItemUseCase
	AlertUC     *usecase.AlertUseCase
	ShelfUC     *shelving.ShelfUseCase
	TransferUC  *shelving.TransferUseCase
	AnalyticsUC *appanalytics.ShelfAnalyticsUseCase
	DashboardUC *appanalytics.DashboardUseCase
	SaleUC      *billing.SaleUseCase
	CustomerUC  *customers.CustomerUseCase
	Store       CollectionReader
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo y stock central
	itemHandler := NewItemHandler(deps.ItemUC, deps.AlertUC)
	items := api.Group("/items")
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Post("/:id/decrement", itemHandler.Decrement)
	api.Get("/alerts", itemHandler.Alerts)

	// Estantes, traslados y ubicaciones
	shelfHandler := NewShelfHandler(deps.ShelfUC, deps.TransferUC)
	shelves := api.Group("/shelves")
	shelves.Post("/", shelfHandler.Create)
	shelves.Get("/", shelfHandler.List)
	shelves.Get("/:id", shelfHandler.GetByID)
	shelves.Put("/:id", shelfHandler.Update)
	shelves.Delete("/:id", shelfHandler.Delete)
	shelves.Get("/:id/items", shelfHandler.Items)
	shelves.Get("/:id/summary", shelfHandler.Summary)

	transfers := api.Group("/transfers")
	transfers.Post("/", shelfHandler.Transfer)
	transfers.Get("/", shelfHandler.Transfers)

	placements := api.Group("/placements")
	placements.Get("/", shelfHandler.Placements)
	placements.Patch("/:id/status", shelfHandler.SetPlacementStatus)

	// Estadísticas
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC, deps.DashboardUC)
	api.Get("/analytics/shelves", analyticsHandler.ShelfReport)
	api.Get("/analytics/shelves/export", analyticsHandler.ExportShelfReport)
	api.Get("/dashboard", analyticsHandler.Dashboard)

	// Ventas
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales := api.Group("/sales")
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/receipt", saleHandler.Receipt)

	// Clientes (las rutas fijas antes de /:id)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	clients := api.Group("/clients")
	clients.Get("/search", customerHandler.Search)
	clients.Get("/stats", customerHandler.Stats)
	clients.Get("/export", customerHandler.Export)
	clients.Post("/", customerHandler.Create)
	clients.Get("/", customerHandler.List)
	clients.Get("/:id", customerHandler.GetByID)
	clients.Put("/:id", customerHandler.Update)
	clients.Delete("/:id", customerHandler.Delete)
	clients.Get("/:id/history", customerHandler.History)

	// Volcado del almacén
	if deps.Store != nil {
		api.Get("/store/:key", NewStoreHandler(deps.Store).Collection)
	}
}
