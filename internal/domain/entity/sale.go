package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago.
const (
	PaymentCash         = "cash"
	PaymentCard         = "card"
	PaymentCheck        = "check"
	PaymentBankTransfer = "bank_transfer"
)

// ValidPaymentMethod indica si m es un medio de pago admitido.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentCheck, PaymentBankTransfer:
		return true
	}
	return false
}

// SaleStatusCompleted único estado de una venta registrada.
const SaleStatusCompleted = "completed"

// SaleLine línea de la canasta. Discount es porcentaje (0-100).
type SaleLine struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Sale venta completada (log de solo anexado).
type Sale struct {
	ID             string          `json:"id"`
	InvoiceNumber  string          `json:"invoice_number"`
	Date           time.Time       `json:"date"`
	CustomerID     string          `json:"customer_id,omitempty"`
	Lines          []SaleLine      `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountPct    decimal.Decimal `json:"discount_pct"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	PaymentMethod  string          `json:"payment_method"`
	Status         string          `json:"status"`
	Seller         string          `json:"seller"`
}
