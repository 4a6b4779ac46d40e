package entity

import "time"

// Tipos de traslado.
const (
	TransferStockToShelf = "stock_to_shelf"
	TransferShelfToStock = "shelf_to_stock"
	TransferShelfToShelf = "shelf_to_shelf"
)

// TransferKinds en el orden en que se reportan.
var TransferKinds = []string{TransferStockToShelf, TransferShelfToStock, TransferShelfToShelf}

// ValidTransferKind indica si k es un tipo de traslado conocido.
func ValidTransferKind(k string) bool {
	return k == TransferStockToShelf || k == TransferShelfToStock || k == TransferShelfToShelf
}

// Transfer entrada inmutable del log de traslados.
// ShelfID es el estante origen (o el que recibe en stock_to_shelf);
// DestinationShelfID solo existe en shelf_to_shelf.
type Transfer struct {
	ID                 string    `json:"id"`
	ItemID             string    `json:"item_id"`
	ShelfID            string    `json:"shelf_id"`
	DestinationShelfID string    `json:"destination_shelf_id,omitempty"`
	Quantity           int       `json:"quantity"`
	Kind               string    `json:"kind"`
	Date               time.Time `json:"date"`
	User               string    `json:"user"`
	Comment            string    `json:"comment,omitempty"`
}
