package repository

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// SaleRepository ledger de ventas (solo anexado).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List() ([]*entity.Sale, error)
	ListByCustomer(customerID string) ([]*entity.Sale, error)
	Count() (int, error)
}
