package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas galénicas admitidas.
const (
	FormTablet    = "tablet"
	FormCapsule   = "capsule"
	FormSyrup     = "syrup"
	FormInjection = "injection"
	FormOintment  = "ointment"
	FormOther     = "other"
)

// ValidForm indica si f es una forma galénica conocida.
func ValidForm(f string) bool {
	switch f {
	case FormTablet, FormCapsule, FormSyrup, FormInjection, FormOintment, FormOther:
		return true
	}
	return false
}

// Item representa un medicamento del catálogo con su stock central.
// StockQuantity es el pool no ubicado en estantes; nunca es negativo.
type Item struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	StockQuantity  int             `json:"stock_quantity"`
	AlertThreshold int             `json:"alert_threshold"`
	ExpirationDate time.Time       `json:"expiration_date"`
	Category       string          `json:"category"`
	Supplier       string          `json:"supplier"`
	Barcode        string          `json:"barcode,omitempty"`
	Dosage         string          `json:"dosage,omitempty"`
	Form           string          `json:"form"`
	Prescription   bool            `json:"prescription"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Withdraw descuenta n unidades del stock central; rechaza si quedaría negativo.
func (i *Item) Withdraw(n int) error {
	if n <= 0 {
		return ErrNonPositiveQuantity
	}
	if i.StockQuantity < n {
		return ErrNotEnoughUnits
	}
	i.StockQuantity -= n
	return nil
}

// Restock devuelve n unidades al stock central.
func (i *Item) Restock(n int) error {
	if n <= 0 {
		return ErrNonPositiveQuantity
	}
	i.StockQuantity += n
	return nil
}

// IsLowStock stock central en o por debajo del umbral de alerta.
func (i *Item) IsLowStock() bool {
	return i.StockQuantity <= i.AlertThreshold
}

// DaysUntilExpiration días (redondeados hacia arriba) hasta la fecha de vencimiento.
func (i *Item) DaysUntilExpiration(now time.Time) int {
	d := i.ExpirationDate.Sub(now)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// IsExpired vencido a la fecha now.
func (i *Item) IsExpired(now time.Time) bool {
	return !i.ExpirationDate.IsZero() && !i.ExpirationDate.After(now)
}

// IsExpiringSoon vence dentro de los próximos horizonDays días (sin estar vencido).
func (i *Item) IsExpiringSoon(now time.Time, horizonDays int) bool {
	if i.ExpirationDate.IsZero() || i.IsExpired(now) {
		return false
	}
	return i.DaysUntilExpiration(now) <= horizonDays
}

// StockValue precio × stock central.
func (i *Item) StockValue() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.StockQuantity)))
}
