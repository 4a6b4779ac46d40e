package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest alta de un medicamento en el catálogo.
type CreateItemRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	StockQuantity  int             `json:"stock_quantity"`
	AlertThreshold int             `json:"alert_threshold"`
	ExpirationDate time.Time       `json:"expiration_date"`
	Category       string          `json:"category"`
	Supplier       string          `json:"supplier"`
	Barcode        string          `json:"barcode"`
	Dosage         string          `json:"dosage"`
	Form           string          `json:"form"`
	Prescription   bool            `json:"prescription"`
}

// UpdateItemRequest campos opcionales; nil = sin cambio.
type UpdateItemRequest struct {
	Name           *string          `json:"name,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	StockQuantity  *int             `json:"stock_quantity,omitempty"`
	AlertThreshold *int             `json:"alert_threshold,omitempty"`
	ExpirationDate *time.Time       `json:"expiration_date,omitempty"`
	Category       *string          `json:"category,omitempty"`
	Supplier       *string          `json:"supplier,omitempty"`
	Barcode        *string          `json:"barcode,omitempty"`
	Dosage         *string          `json:"dosage,omitempty"`
	Form           *string          `json:"form,omitempty"`
	Prescription   *bool            `json:"prescription,omitempty"`
}

// ItemResponse medicamento con su stock central y lo ubicado en estantes.
type ItemResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	StockQuantity   int             `json:"stock_quantity"`
	ShelvedQuantity int             `json:"shelved_quantity"`
	AlertThreshold  int             `json:"alert_threshold"`
	ExpirationDate  time.Time       `json:"expiration_date"`
	Category        string          `json:"category"`
	Supplier        string          `json:"supplier"`
	Barcode         string          `json:"barcode,omitempty"`
	Dosage          string          `json:"dosage,omitempty"`
	Form            string          `json:"form"`
	Prescription    bool            `json:"prescription"`
	LowStock        bool            `json:"low_stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DecrementStockRequest descuento manual del stock central.
type DecrementStockRequest struct {
	Amount int `json:"amount"`
}
