package entity

import "time"

// Estados de una ubicación.
const (
	PlacementForSale  = "for_sale"
	PlacementReserved = "reserved"
	PlacementExpired  = "expired"
)

// ValidPlacementStatus indica si s es un estado de ubicación conocido.
func ValidPlacementStatus(s string) bool {
	return s == PlacementForSale || s == PlacementReserved || s == PlacementExpired
}

// Placement unidades de un Item sobre un Shelf. Como máximo una por par (item, estante);
// se elimina cuando la cantidad llega a cero.
type Placement struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"item_id"`
	ShelfID         string    `json:"shelf_id"`
	Quantity        int       `json:"quantity"`
	MinimumQuantity int       `json:"minimum_quantity"`
	TransferredAt   time.Time `json:"transferred_at"`
	Status          string    `json:"status"`
}
