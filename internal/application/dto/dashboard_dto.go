package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// TopSoldItem producto más vendido.
type TopSoldItem struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// SalesStats ventas del día, mes y año en curso.
type SalesStats struct {
	TodayTotal   decimal.Decimal `json:"today_total"`
	MonthTotal   decimal.Decimal `json:"month_total"`
	YearTotal    decimal.Decimal `json:"year_total"`
	Transactions int             `json:"transactions"`
	TopItems     []TopSoldItem   `json:"top_items"`
}

// StockStats estado del catálogo.
type StockStats struct {
	TotalItems    int             `json:"total_items"`
	LowStockItems int             `json:"low_stock_items"`
	ExpiredItems  int             `json:"expired_items"`
	ExpiringItems int             `json:"expiring_items"`
	StockValue    decimal.Decimal `json:"stock_value"`
}

// DashboardSummary resumen general.
type DashboardSummary struct {
	Sales  SalesStats     `json:"sales"`
	Stock  StockStats     `json:"stock"`
	Alerts []entity.Alert `json:"alerts"`
}
