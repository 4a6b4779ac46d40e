package dto

import "time"

// ShelfReportFilter filtros del reporte de estantes. Las fechas custom son YYYY-MM-DD.
type ShelfReportFilter struct {
	Period    string `query:"period"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	ShelfID   string `query:"shelf_id"`
	ItemID    string `query:"item_id"`
	Kind      string `query:"kind"`
}

// KindCount traslados por tipo.
type KindCount struct {
	StockToShelf int `json:"stock_to_shelf"`
	ShelfToStock int `json:"shelf_to_stock"`
	ShelfToShelf int `json:"shelf_to_shelf"`
}

// ShelfActivity estante con su actividad en la ventana.
type ShelfActivity struct {
	ShelfID   string `json:"shelf_id"`
	ShelfName string `json:"shelf_name"`
	Transfers int    `json:"transfers"`
	Quantity  int    `json:"quantity"`
}

// ItemActivity producto con su actividad en la ventana.
type ItemActivity struct {
	ItemID    string `json:"item_id"`
	ItemName  string `json:"item_name"`
	Transfers int    `json:"transfers"`
	Quantity  int    `json:"quantity"`
}

// ShelfOccupancy ocupación actual (no depende del periodo). Rate a precisión completa.
type ShelfOccupancy struct {
	ShelfID       string  `json:"shelf_id"`
	ShelfName     string  `json:"shelf_name"`
	TotalQuantity int     `json:"total_quantity"`
	MaxCapacity   int     `json:"max_capacity"`
	DistinctItems int     `json:"distinct_items"`
	Rate          float64 `json:"rate"`
	Display       string  `json:"display"`
}

// DailyCount traslados de un día (YYYY-MM-DD, UTC).
type DailyCount struct {
	Day       string `json:"day"`
	Transfers int    `json:"transfers"`
}

// ShelfReport agregados del periodo.
type ShelfReport struct {
	Period         string           `json:"period"`
	Start          time.Time        `json:"start"`
	End            time.Time        `json:"end"`
	TotalTransfers int              `json:"total_transfers"`
	TotalQuantity  int              `json:"total_quantity"`
	ByKind         KindCount        `json:"by_kind"`
	TopShelves     []ShelfActivity  `json:"top_shelves"`
	TopItems       []ItemActivity   `json:"top_items"`
	Occupancy      []ShelfOccupancy `json:"occupancy"`
	Daily          []DailyCount     `json:"daily"`
}

// ShelfReportExport documento JSON exportado: periodo, agregados y traslados filtrados.
type ShelfReportExport struct {
	Period     string         `json:"period"`
	Start      time.Time      `json:"start"`
	End        time.Time      `json:"end"`
	Statistics ShelfReport    `json:"statistics"`
	Transfers  []TransferView `json:"transfers"`
}
