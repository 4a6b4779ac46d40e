package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// ItemUseCase casos de uso del catálogo y del stock central.
type ItemUseCase struct {
	tx         StockTxRunner
	items      repository.ItemRepository
	placements repository.PlacementRepository
	log        *logger.Logger
	now        func() time.Time
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(tx StockTxRunner, items repository.ItemRepository, placements repository.PlacementRepository, log *logger.Logger) *ItemUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ItemUseCase{tx: tx, items: items, placements: placements, log: log.Component("stock"), now: time.Now}
}

func validateItem(it *entity.Item) []string {
	var msgs []string
	if strings.TrimSpace(it.Name) == "" {
		msgs = append(msgs, "el nombre es obligatorio")
	}
	if it.Price.IsNegative() {
		msgs = append(msgs, "el precio no puede ser negativo")
	}
	if it.StockQuantity < 0 {
		msgs = append(msgs, "la cantidad en stock no puede ser negativa")
	}
	if it.AlertThreshold < 0 {
		msgs = append(msgs, "el umbral de alerta no puede ser negativo")
	}
	if it.ExpirationDate.IsZero() {
		msgs = append(msgs, "la fecha de vencimiento es obligatoria")
	}
	if strings.TrimSpace(it.Category) == "" {
		msgs = append(msgs, "la categoría es obligatoria")
	}
	if !entity.ValidForm(it.Form) {
		msgs = append(msgs, fmt.Sprintf("forma desconocida %q", it.Form))
	}
	return msgs
}

// Create da de alta un medicamento.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	now := uc.now()
	if in.Form == "" {
		in.Form = entity.FormOther
	}
	item := &entity.Item{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Price:          in.Price,
		StockQuantity:  in.StockQuantity,
		AlertThreshold: in.AlertThreshold,
		ExpirationDate: in.ExpirationDate,
		Category:       strings.TrimSpace(in.Category),
		Supplier:       in.Supplier,
		Barcode:        in.Barcode,
		Dosage:         in.Dosage,
		Form:           in.Form,
		Prescription:   in.Prescription,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if msgs := validateItem(item); len(msgs) > 0 {
		return nil, domain.Invalid(msgs...)
	}
	if err := uc.items.Create(item); err != nil {
		return nil, err
	}
	uc.log.Info().Str("item", item.ID).Str("name", item.Name).Int("stock", item.StockQuantity).Msg("producto creado")
	return toItemResponse(item, 0), nil
}

// GetByID devuelve (nil, nil) si no existe.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.items.GetByID(id)
	if err != nil || item == nil {
		return nil, err
	}
	shelved, err := uc.shelved(id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item, shelved), nil
}

// Update modifica los campos presentes. El stock central puede corregirse aquí
// (inventario físico); nunca queda negativo.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	var updated *entity.Item
	err := uc.tx.Run(ctx, func(
		items repository.ItemRepository,
		_ repository.ShelfRepository,
		_ repository.PlacementRepository,
		_ repository.TransferRepository,
	) error {
		item, err := items.GetByID(id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		applyItemPatch(item, in)
		if msgs := validateItem(item); len(msgs) > 0 {
			return domain.Invalid(msgs...)
		}
		item.UpdatedAt = uc.now()
		updated = item
		return items.Update(item)
	})
	if err != nil {
		return nil, err
	}
	shelved, err := uc.shelved(id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(updated, shelved), nil
}

func applyItemPatch(item *entity.Item, in dto.UpdateItemRequest) {
	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.StockQuantity != nil {
		item.StockQuantity = *in.StockQuantity
	}
	if in.AlertThreshold != nil {
		item.AlertThreshold = *in.AlertThreshold
	}
	if in.ExpirationDate != nil {
		item.ExpirationDate = *in.ExpirationDate
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if in.Supplier != nil {
		item.Supplier = *in.Supplier
	}
	if in.Barcode != nil {
		item.Barcode = *in.Barcode
	}
	if in.Dosage != nil {
		item.Dosage = *in.Dosage
	}
	if in.Form != nil {
		item.Form = *in.Form
	}
	if in.Prescription != nil {
		item.Prescription = *in.Prescription
	}
}

// List catálogo completo con lo ubicado en estantes por producto.
func (uc *ItemUseCase) List() ([]dto.ItemResponse, error) {
	items, err := uc.items.List()
	if err != nil {
		return nil, err
	}
	placements, err := uc.placements.List()
	if err != nil {
		return nil, err
	}
	shelved := make(map[string]int, len(items))
	for _, p := range placements {
		shelved[p.ItemID] += p.Quantity
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it, shelved[it.ID]))
	}
	return out, nil
}

// Delete elimina un producto. Se rechaza mientras tenga unidades en estantes.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	err := uc.tx.Run(ctx, func(
		items repository.ItemRepository,
		_ repository.ShelfRepository,
		placements repository.PlacementRepository,
		_ repository.TransferRepository,
	) error {
		item, err := items.GetByID(id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		ps, err := placements.ListByItem(id)
		if err != nil {
			return err
		}
		if len(ps) > 0 {
			return domain.Violation(domain.ErrConflict,
				fmt.Sprintf("%s tiene unidades en %d estante(s); devuélvalas al stock antes de eliminarlo", item.Name, len(ps)))
		}
		return items.Delete(id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("item", id).Msg("producto eliminado")
	return nil
}

// Decrement descuenta amount del stock central; rechaza si quedaría negativo.
func (uc *ItemUseCase) Decrement(ctx context.Context, id string, amount int) (*dto.ItemResponse, error) {
	if amount <= 0 {
		return nil, domain.Invalid("la cantidad debe ser un entero positivo")
	}
	var updated *entity.Item
	err := uc.tx.Run(ctx, func(
		items repository.ItemRepository,
		_ repository.ShelfRepository,
		_ repository.PlacementRepository,
		_ repository.TransferRepository,
	) error {
		item, err := DecrementStock(items, id, amount)
		updated = item
		return err
	})
	if err != nil {
		return nil, err
	}
	shelved, err := uc.shelved(id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(updated, shelved), nil
}

// DecrementStock regla compartida con las ventas: descuenta del stock central
// usando el repositorio de la transacción del llamador.
func DecrementStock(items repository.ItemRepository, id string, amount int) (*entity.Item, error) {
	item, err := items.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.Violation(domain.ErrNotFound, "el producto no existe")
	}
	if err := item.Withdraw(amount); err != nil {
		return nil, domain.Violation(domain.ErrInsufficientStock,
			fmt.Sprintf("stock insuficiente de %s: disponible %d, solicitado %d", item.Name, item.StockQuantity, amount))
	}
	if err := items.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *ItemUseCase) shelved(itemID string) (int, error) {
	ps, err := uc.placements.ListByItem(itemID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, p := range ps {
		total += p.Quantity
	}
	return total, nil
}

func toItemResponse(it *entity.Item, shelved int) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:              it.ID,
		Name:            it.Name,
		Description:     it.Description,
		Price:           it.Price,
		StockQuantity:   it.StockQuantity,
		ShelvedQuantity: shelved,
		AlertThreshold:  it.AlertThreshold,
		ExpirationDate:  it.ExpirationDate,
		Category:        it.Category,
		Supplier:        it.Supplier,
		Barcode:         it.Barcode,
		Dosage:          it.Dosage,
		Form:            it.Form,
		Prescription:    it.Prescription,
		LowStock:        it.IsLowStock(),
		CreatedAt:       it.CreatedAt,
		UpdatedAt:       it.UpdatedAt,
	}
}
