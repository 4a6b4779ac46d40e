package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de la canasta. Discount en porcentaje (0-100).
type SaleLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity int             `json:"quantity"`
	Discount decimal.Decimal `json:"discount"`
}

// RecordSaleRequest venta a registrar.
type RecordSaleRequest struct {
	CustomerID    string            `json:"customer_id"`
	Lines         []SaleLineRequest `json:"lines"`
	PaymentMethod string            `json:"payment_method"`
	Discount      decimal.Decimal   `json:"discount"`
	Seller        string            `json:"seller"`
}

// SaleLineResponse línea con el nombre del producto.
type SaleLineResponse struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID             string             `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	Date           time.Time          `json:"date"`
	CustomerID     string             `json:"customer_id,omitempty"`
	CustomerName   string             `json:"customer_name,omitempty"`
	Lines          []SaleLineResponse `json:"lines"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountPct    decimal.Decimal    `json:"discount_pct"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxRate        decimal.Decimal    `json:"tax_rate"`
	Tax            decimal.Decimal    `json:"tax"`
	Total          decimal.Decimal    `json:"total"`
	PaymentMethod  string             `json:"payment_method"`
	Status         string             `json:"status"`
	Seller         string             `json:"seller"`
}
