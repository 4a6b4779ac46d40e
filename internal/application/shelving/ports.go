package shelving

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a una misma transacción.
// Si fn devuelve error no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		shelves repository.ShelfRepository,
		placements repository.PlacementRepository,
		transfers repository.TransferRepository,
	) error) error
}
