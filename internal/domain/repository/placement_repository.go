package repository

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// PlacementRepository puerto para la tabla de ubicaciones (item, estante).
// Upsert crea o reemplaza por ID; el motor garantiza una fila por par.
type PlacementRepository interface {
	GetByID(id string) (*entity.Placement, error)
	GetByItemAndShelf(itemID, shelfID string) (*entity.Placement, error)
	ListByShelf(shelfID string) ([]*entity.Placement, error)
	ListByItem(itemID string) ([]*entity.Placement, error)
	List() ([]*entity.Placement, error)
	Upsert(p *entity.Placement) error
	Delete(id string) error
}
