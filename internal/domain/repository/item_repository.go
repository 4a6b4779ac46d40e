package repository

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para el catálogo (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	Update(item *entity.Item) error
	List() ([]*entity.Item, error)
	Delete(id string) error
}
