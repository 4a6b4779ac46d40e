package usecase

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// StockTxRunner transacción sobre catálogo, estantes, ubicaciones y traslados.
type StockTxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		shelves repository.ShelfRepository,
		placements repository.PlacementRepository,
		transfers repository.TransferRepository,
	) error) error
}
