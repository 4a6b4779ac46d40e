package repository

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// ShelfRepository define el puerto de persistencia para estantes.
type ShelfRepository interface {
	Create(shelf *entity.Shelf) error
	GetByID(id string) (*entity.Shelf, error)
	Update(shelf *entity.Shelf) error
	List() ([]*entity.Shelf, error)
	Delete(id string) error
}
