package entity

import "time"

// Tipos y prioridades de alerta de stock.
const (
	AlertLowStock = "low_stock"
	AlertExpiring = "expiring"
	AlertExpired  = "expired"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Alert alerta derivada del estado del catálogo (no se persiste).
type Alert struct {
	Type     string    `json:"type"`
	ItemID   string    `json:"item_id"`
	ItemName string    `json:"item_name"`
	Message  string    `json:"message"`
	Priority string    `json:"priority"`
	Date     time.Time `json:"date"`
}
