// Package shelving es el motor de estantes: mueve unidades entre el stock
// central y los estantes, mantiene la tabla de ubicaciones y el log de traslados.
package shelving

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// DefaultUser etiqueta de usuario cuando la petición no trae una.
const DefaultUser = "Admin Pharmacie"

// TransferUseCase valida y ejecuta traslados. Cada traslado exitoso deja una
// entrada en el log; un traslado rechazado no modifica nada.
type TransferUseCase struct {
	tx  TxRunner
	log *logger.Logger
	now func() time.Time
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(tx TxRunner, log *logger.Logger) *TransferUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &TransferUseCase{tx: tx, log: log.Component("shelving"), now: time.Now}
}

// TransferInput entrada de un traslado.
// ShelfID es el estante origen, o el estante que recibe en stock_to_shelf.
type TransferInput struct {
	ItemID             string
	ShelfID            string
	DestinationShelfID string
	Quantity           int
	Kind               string
	User               string
	Comment            string
}

// Transfer valida la entrada (sin efectos si falla) y aplica el traslado en una transacción.
func (uc *TransferUseCase) Transfer(ctx context.Context, in TransferInput) (*entity.Transfer, error) {
	if msgs := validateTransfer(in); len(msgs) > 0 {
		uc.log.Warn().Strs("errors", msgs).Str("kind", in.Kind).Msg("traslado rechazado")
		return nil, domain.Invalid(msgs...)
	}
	if in.User == "" {
		in.User = DefaultUser
	}

	var out *entity.Transfer
	err := uc.tx.Run(ctx, func(
		items repository.ItemRepository,
		shelves repository.ShelfRepository,
		placements repository.PlacementRepository,
		transfers repository.TransferRepository,
	) error {
		t, err := applyTransfer(items, shelves, placements, transfers, in, uc.now())
		out = t
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("kind", in.Kind).Str("item", in.ItemID).Str("shelf", in.ShelfID).
			Int("quantity", in.Quantity).Msg("traslado rechazado")
		return nil, err
	}

	uc.log.Info().Str("transfer", out.ID).Str("kind", out.Kind).Str("item", out.ItemID).
		Str("shelf", out.ShelfID).Str("destination", out.DestinationShelfID).Int("quantity", out.Quantity).
		Str("user", out.User).Msg("traslado registrado")
	return out, nil
}

func validateTransfer(in TransferInput) []string {
	var msgs []string
	if in.ItemID == "" {
		msgs = append(msgs, "el producto es obligatorio")
	}
	if in.ShelfID == "" {
		msgs = append(msgs, "el estante es obligatorio")
	}
	if in.Quantity <= 0 {
		msgs = append(msgs, "la cantidad debe ser un entero positivo")
	}
	switch in.Kind {
	case entity.TransferStockToShelf, entity.TransferShelfToStock:
	case entity.TransferShelfToShelf:
		if in.DestinationShelfID == "" {
			msgs = append(msgs, "el estante destino es obligatorio")
		} else if in.DestinationShelfID == in.ShelfID {
			msgs = append(msgs, "el estante destino debe ser distinto del origen")
		}
	default:
		msgs = append(msgs, fmt.Sprintf("tipo de traslado desconocido %q", in.Kind))
	}
	return msgs
}

// applyTransfer comprueba todas las restricciones antes de mutar y registra el traslado.
func applyTransfer(
	items repository.ItemRepository,
	shelves repository.ShelfRepository,
	placements repository.PlacementRepository,
	transfers repository.TransferRepository,
	in TransferInput,
	now time.Time,
) (*entity.Transfer, error) {
	item, err := items.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.Violation(domain.ErrNotFound, "el producto no existe")
	}
	shelf, err := shelves.GetByID(in.ShelfID)
	if err != nil {
		return nil, err
	}
	if shelf == nil {
		return nil, domain.Violation(domain.ErrNotFound, "el estante no existe")
	}

	switch in.Kind {
	case entity.TransferStockToShelf:
		if item.StockQuantity < in.Quantity {
			return nil, domain.Violation(domain.ErrInsufficientStock,
				fmt.Sprintf("stock insuficiente de %s: disponible %d, solicitado %d", item.Name, item.StockQuantity, in.Quantity))
		}
		if err := ensureCapacity(placements, shelf, in.Quantity); err != nil {
			return nil, err
		}
		if err := item.Withdraw(in.Quantity); err != nil {
			return nil, err
		}
		if err := items.Update(item); err != nil {
			return nil, err
		}
		if err := placeOnShelf(placements, item.ID, shelf.ID, in.Quantity, now); err != nil {
			return nil, err
		}

	case entity.TransferShelfToStock:
		source, err := sourcePlacement(placements, item, shelf, in.Quantity)
		if err != nil {
			return nil, err
		}
		if err := takeFromShelf(placements, source, in.Quantity, now); err != nil {
			return nil, err
		}
		if err := item.Restock(in.Quantity); err != nil {
			return nil, err
		}
		if err := items.Update(item); err != nil {
			return nil, err
		}

	case entity.TransferShelfToShelf:
		dest, err := shelves.GetByID(in.DestinationShelfID)
		if err != nil {
			return nil, err
		}
		if dest == nil {
			return nil, domain.Violation(domain.ErrNotFound, "el estante destino no existe")
		}
		source, err := sourcePlacement(placements, item, shelf, in.Quantity)
		if err != nil {
			return nil, err
		}
		if err := ensureCapacity(placements, dest, in.Quantity); err != nil {
			return nil, err
		}
		if err := takeFromShelf(placements, source, in.Quantity, now); err != nil {
			return nil, err
		}
		if err := placeOnShelf(placements, item.ID, dest.ID, in.Quantity, now); err != nil {
			return nil, err
		}
	}

	t := &entity.Transfer{
		ID:       uuid.New().String(),
		ItemID:   item.ID,
		ShelfID:  shelf.ID,
		Quantity: in.Quantity,
		Kind:     in.Kind,
		Date:     now,
		User:     in.User,
		Comment:  in.Comment,
	}
	if in.Kind == entity.TransferShelfToShelf {
		t.DestinationShelfID = in.DestinationShelfID
	}
	if err := transfers.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ensureCapacity carga actual + quantity ≤ capacidad del estante.
func ensureCapacity(placements repository.PlacementRepository, shelf *entity.Shelf, quantity int) error {
	onShelf, err := placements.ListByShelf(shelf.ID)
	if err != nil {
		return err
	}
	load := inventory.ShelfLoad(onShelf, shelf.ID)
	if !inventory.Fits(shelf, load, quantity) {
		return domain.Violation(domain.ErrCapacityExceeded,
			fmt.Sprintf("capacidad excedida en %s: ocupado %d + %d > %d", shelf.Name, load, quantity, shelf.MaxCapacity))
	}
	return nil
}

// sourcePlacement ubicación (item, estante) con al menos quantity unidades.
func sourcePlacement(placements repository.PlacementRepository, item *entity.Item, shelf *entity.Shelf, quantity int) (*entity.Placement, error) {
	p, err := placements.GetByItemAndShelf(item.ID, shelf.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.Violation(domain.ErrInsufficientShelfQuantity,
			fmt.Sprintf("%s no está ubicado en %s", item.Name, shelf.Name))
	}
	if p.Quantity < quantity {
		return nil, domain.Violation(domain.ErrInsufficientShelfQuantity,
			fmt.Sprintf("cantidad insuficiente de %s en %s: disponible %d, solicitado %d", item.Name, shelf.Name, p.Quantity, quantity))
	}
	return p, nil
}

// placeOnShelf suma a la ubicación existente del par (item, estante) o crea una nueva
// con mínimo ceil(cantidad × 0.2) y estado for_sale.
func placeOnShelf(placements repository.PlacementRepository, itemID, shelfID string, quantity int, now time.Time) error {
	p, err := placements.GetByItemAndShelf(itemID, shelfID)
	if err != nil {
		return err
	}
	if p != nil {
		p.Quantity += quantity
		p.TransferredAt = now
		return placements.Upsert(p)
	}
	return placements.Upsert(&entity.Placement{
		ID:              uuid.New().String(),
		ItemID:          itemID,
		ShelfID:         shelfID,
		Quantity:        quantity,
		MinimumQuantity: inventory.MinimumQuantity(quantity),
		TransferredAt:   now,
		Status:          entity.PlacementForSale,
	})
}

// takeFromShelf resta quantity a la ubicación; si llega exactamente a cero se elimina la fila.
func takeFromShelf(placements repository.PlacementRepository, p *entity.Placement, quantity int, now time.Time) error {
	if p.Quantity < quantity {
		return domain.Violation(domain.ErrInsufficientShelfQuantity, "cantidad insuficiente en el estante")
	}
	p.Quantity -= quantity
	if p.Quantity == 0 {
		return placements.Delete(p.ID)
	}
	p.TransferredAt = now
	return placements.Upsert(p)
}
