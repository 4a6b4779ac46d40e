package shelving

import (
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// Names nombres de productos y estantes por ID, para armar vistas al leer.
type Names struct {
	Items   map[string]string
	Shelves map[string]string
}

func loadNames(items repository.ItemRepository, shelves repository.ShelfRepository) (Names, error) {
	is, err := items.List()
	if err != nil {
		return Names{}, err
	}
	ss, err := shelves.List()
	if err != nil {
		return Names{}, err
	}
	return NamesOf(is, ss), nil
}

// NamesOf índice de nombres a partir de las listas completas.
func NamesOf(items []*entity.Item, shelves []*entity.Shelf) Names {
	n := Names{Items: make(map[string]string, len(items)), Shelves: make(map[string]string, len(shelves))}
	for _, it := range items {
		n.Items[it.ID] = it.Name
	}
	for _, s := range shelves {
		n.Shelves[s.ID] = s.Name
	}
	return n
}

// TransferViews une cada traslado con los nombres actuales. Un ID borrado queda con nombre vacío.
func TransferViews(ts []*entity.Transfer, names Names) []dto.TransferView {
	out := make([]dto.TransferView, 0, len(ts))
	for _, t := range ts {
		v := dto.TransferView{
			ID:        t.ID,
			ItemID:    t.ItemID,
			ItemName:  names.Items[t.ItemID],
			ShelfID:   t.ShelfID,
			ShelfName: names.Shelves[t.ShelfID],
			Quantity:  t.Quantity,
			Kind:      t.Kind,
			Date:      t.Date,
			User:      t.User,
			Comment:   t.Comment,
		}
		if t.DestinationShelfID != "" {
			v.DestinationShelfID = t.DestinationShelfID
			v.DestinationShelfName = names.Shelves[t.DestinationShelfID]
		}
		out = append(out, v)
	}
	return out
}
