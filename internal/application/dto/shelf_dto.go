package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateShelfRequest alta de estante.
type CreateShelfRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	MaxCapacity int    `json:"max_capacity"`
}

// UpdateShelfRequest campos opcionales; nil = sin cambio.
type UpdateShelfRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	MaxCapacity *int    `json:"max_capacity,omitempty"`
}

// ShelfResponse estante con su carga actual.
type ShelfResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location"`
	MaxCapacity int       `json:"max_capacity"`
	CurrentLoad int       `json:"current_load"`
	Occupancy   float64   `json:"occupancy"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ShelfSummaryResponse resumen de un estante.
type ShelfSummaryResponse struct {
	ShelfID           string          `json:"shelf_id"`
	ShelfName         string          `json:"shelf_name"`
	TotalQuantity     int             `json:"total_quantity"`
	MaxCapacity       int             `json:"max_capacity"`
	RemainingCapacity int             `json:"remaining_capacity"`
	Occupancy         float64         `json:"occupancy"`
	DistinctItems     int             `json:"distinct_items"`
	TotalValue        decimal.Decimal `json:"total_value"`
	BelowMinimum      int             `json:"below_minimum"`
}

// ShelfDeletionResponse unidades devueltas al stock al eliminar un estante.
type ShelfDeletionResponse struct {
	ShelfID       string `json:"shelf_id"`
	ReturnedUnits int    `json:"returned_units"`
	Transfers     int    `json:"transfers"`
}

// TransferRequest traslado entre stock central y estantes.
type TransferRequest struct {
	ItemID             string `json:"item_id"`
	ShelfID            string `json:"shelf_id"`
	DestinationShelfID string `json:"destination_shelf_id"`
	Quantity           int    `json:"quantity"`
	Kind               string `json:"kind"`
	User               string `json:"user"`
	Comment            string `json:"comment"`
}

// PlacementStatusRequest cambio de estado de una ubicación.
type PlacementStatusRequest struct {
	Status string `json:"status"`
}

// PlacementView ubicación con los nombres de item y estante resueltos al leer.
type PlacementView struct {
	ID              string          `json:"id"`
	ItemID          string          `json:"item_id"`
	ItemName        string          `json:"item_name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	ShelfID         string          `json:"shelf_id"`
	ShelfName       string          `json:"shelf_name"`
	Quantity        int             `json:"quantity"`
	MinimumQuantity int             `json:"minimum_quantity"`
	BelowMinimum    bool            `json:"below_minimum"`
	TransferredAt   time.Time       `json:"transferred_at"`
	Status          string          `json:"status"`
}

// TransferView traslado con nombres resueltos al leer.
type TransferView struct {
	ID                   string    `json:"id"`
	ItemID               string    `json:"item_id"`
	ItemName             string    `json:"item_name"`
	ShelfID              string    `json:"shelf_id"`
	ShelfName            string    `json:"shelf_name"`
	DestinationShelfID   string    `json:"destination_shelf_id,omitempty"`
	DestinationShelfName string    `json:"destination_shelf_name,omitempty"`
	Quantity             int       `json:"quantity"`
	Kind                 string    `json:"kind"`
	Date                 time.Time `json:"date"`
	User                 string    `json:"user"`
	Comment              string    `json:"comment,omitempty"`
}
