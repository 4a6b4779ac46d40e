package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRequest alta o modificación completa de un cliente.
type CustomerRequest struct {
	LastName             string     `json:"last_name"`
	FirstName            string     `json:"first_name"`
	Phone                string     `json:"phone"`
	Email                string     `json:"email"`
	Address              string     `json:"address"`
	BirthDate            *time.Time `json:"birth_date,omitempty"`
	SocialSecurityNumber string     `json:"social_security_number"`
}

// CustomerResponse cliente con edad derivada.
type CustomerResponse struct {
	ID                   string     `json:"id"`
	LastName             string     `json:"last_name"`
	FirstName            string     `json:"first_name"`
	Phone                string     `json:"phone,omitempty"`
	Email                string     `json:"email,omitempty"`
	Address              string     `json:"address,omitempty"`
	BirthDate            *time.Time `json:"birth_date,omitempty"`
	Age                  *int       `json:"age,omitempty"`
	SocialSecurityNumber string     `json:"social_security_number,omitempty"`
	RegisteredAt         time.Time  `json:"registered_at"`
}

// CustomerDetailResponse cliente + historial y gasto acumulado (recalculados en cada lectura).
type CustomerDetailResponse struct {
	CustomerResponse
	Purchases     []SaleResponse  `json:"purchases"`
	PurchaseCount int             `json:"purchase_count"`
	LifetimeSpend decimal.Decimal `json:"lifetime_spend"`
}

// AgeBracket cantidad de clientes por tramo de edad.
type AgeBracket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// LoyalCustomer cliente con sus compras.
type LoyalCustomer struct {
	CustomerResponse
	PurchaseCount int             `json:"purchase_count"`
	LifetimeSpend decimal.Decimal `json:"lifetime_spend"`
}

// CustomerStatsResponse estadísticas del registro de clientes.
type CustomerStatsResponse struct {
	Total        int             `json:"total"`
	NewThisMonth int             `json:"new_this_month"`
	Active       int             `json:"active"`
	Loyal        []LoyalCustomer `json:"loyal"`
	AgeBreakdown []AgeBracket    `json:"age_breakdown"`
}
