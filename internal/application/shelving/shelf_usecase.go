package shelving

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// Etiquetas de los traslados generados al eliminar un estante.
const (
	SystemUser           = "Système (suppression rayon)"
	ShelfDeletionComment = "Retour automatique lors de la suppression du rayon"
)

// ShelfUseCase CRUD de estantes y vistas de lectura con los nombres resueltos.
type ShelfUseCase struct {
	tx         TxRunner
	shelves    repository.ShelfRepository
	placements repository.PlacementRepository
	items      repository.ItemRepository
	transfers  repository.TransferRepository
	log        *logger.Logger
	now        func() time.Time
}

// NewShelfUseCase construye el caso de uso.
func NewShelfUseCase(
	tx TxRunner,
	shelves repository.ShelfRepository,
	placements repository.PlacementRepository,
	items repository.ItemRepository,
	transfers repository.TransferRepository,
	log *logger.Logger,
) *ShelfUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ShelfUseCase{
		tx:         tx,
		shelves:    shelves,
		placements: placements,
		items:      items,
		transfers:  transfers,
		log:        log.Component("shelving"),
		now:        time.Now,
	}
}

func validateShelf(name, location string, capacity int) []string {
	var msgs []string
	if strings.TrimSpace(name) == "" {
		msgs = append(msgs, "el nombre del estante es obligatorio")
	}
	if strings.TrimSpace(location) == "" {
		msgs = append(msgs, "la ubicación del estante es obligatoria")
	}
	if capacity <= 0 {
		msgs = append(msgs, "la capacidad máxima debe ser mayor que cero")
	}
	return msgs
}

// Create da de alta un estante vacío.
func (uc *ShelfUseCase) Create(in dto.CreateShelfRequest) (*dto.ShelfResponse, error) {
	if msgs := validateShelf(in.Name, in.Location, in.MaxCapacity); len(msgs) > 0 {
		return nil, domain.Invalid(msgs...)
	}
	now := uc.now()
	shelf := &entity.Shelf{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Location:    strings.TrimSpace(in.Location),
		MaxCapacity: in.MaxCapacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.shelves.Create(shelf); err != nil {
		return nil, err
	}
	uc.log.Info().Str("shelf", shelf.ID).Str("name", shelf.Name).Int("capacity", shelf.MaxCapacity).Msg("estante creado")
	return uc.toResponse(shelf, 0), nil
}

// GetByID devuelve (nil, nil) si no existe.
func (uc *ShelfUseCase) GetByID(id string) (*dto.ShelfResponse, error) {
	shelf, err := uc.shelves.GetByID(id)
	if err != nil || shelf == nil {
		return nil, err
	}
	load, err := uc.load(shelf.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(shelf, load), nil
}

// Update modifica los campos presentes y refresca la fecha de modificación.
// Bajar la capacidad por debajo de la carga actual está permitido; el siguiente
// traslado hacia el estante será rechazado.
func (uc *ShelfUseCase) Update(id string, in dto.UpdateShelfRequest) (*dto.ShelfResponse, error) {
	shelf, err := uc.shelves.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shelf == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		shelf.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		shelf.Description = *in.Description
	}
	if in.Location != nil {
		shelf.Location = strings.TrimSpace(*in.Location)
	}
	if in.MaxCapacity != nil {
		shelf.MaxCapacity = *in.MaxCapacity
	}
	if msgs := validateShelf(shelf.Name, shelf.Location, shelf.MaxCapacity); len(msgs) > 0 {
		return nil, domain.Invalid(msgs...)
	}
	shelf.UpdatedAt = uc.now()
	if err := uc.shelves.Update(shelf); err != nil {
		return nil, err
	}
	load, err := uc.load(shelf.ID)
	if err != nil {
		return nil, err
	}
	if load > shelf.MaxCapacity {
		uc.log.Warn().Str("shelf", shelf.ID).Int("load", load).Int("capacity", shelf.MaxCapacity).Msg("estante por encima de su capacidad")
	}
	return uc.toResponse(shelf, load), nil
}

// List todos los estantes con su carga.
func (uc *ShelfUseCase) List() ([]dto.ShelfResponse, error) {
	shelves, err := uc.shelves.List()
	if err != nil {
		return nil, err
	}
	placements, err := uc.placements.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShelfResponse, 0, len(shelves))
	for _, s := range shelves {
		out = append(out, *uc.toResponse(s, inventory.ShelfLoad(placements, s.ID)))
	}
	return out, nil
}

// Delete devuelve al stock central todas las unidades del estante (un traslado
// shelf_to_stock por ubicación, a nombre del sistema), borra sus ubicaciones y el estante.
func (uc *ShelfUseCase) Delete(ctx context.Context, id string) (*dto.ShelfDeletionResponse, error) {
	out := &dto.ShelfDeletionResponse{ShelfID: id}
	err := uc.tx.Run(ctx, func(
		items repository.ItemRepository,
		shelves repository.ShelfRepository,
		placements repository.PlacementRepository,
		transfers repository.TransferRepository,
	) error {
		shelf, err := shelves.GetByID(id)
		if err != nil {
			return err
		}
		if shelf == nil {
			return domain.Violation(domain.ErrNotFound, "el estante no existe")
		}
		onShelf, err := placements.ListByShelf(id)
		if err != nil {
			return err
		}
		now := uc.now()
		for _, p := range onShelf {
			item, err := items.GetByID(p.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.Violation(domain.ErrConflict, fmt.Sprintf("la ubicación %s referencia un producto inexistente", p.ID))
			}
			if err := item.Restock(p.Quantity); err != nil {
				return err
			}
			if err := items.Update(item); err != nil {
				return err
			}
			if err := placements.Delete(p.ID); err != nil {
				return err
			}
			if err := transfers.Create(&entity.Transfer{
				ID:       uuid.New().String(),
				ItemID:   p.ItemID,
				ShelfID:  id,
				Quantity: p.Quantity,
				Kind:     entity.TransferShelfToStock,
				Date:     now,
				User:     SystemUser,
				Comment:  ShelfDeletionComment,
			}); err != nil {
				return err
			}
			out.ReturnedUnits += p.Quantity
			out.Transfers++
		}
		return shelves.Delete(id)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("shelf", id).Int("returned_units", out.ReturnedUnits).Int("transfers", out.Transfers).Msg("estante eliminado")
	return out, nil
}

// SetPlacementStatus marca una ubicación como for_sale, reserved o expired.
func (uc *ShelfUseCase) SetPlacementStatus(ctx context.Context, placementID, status string) (*dto.PlacementView, error) {
	if !entity.ValidPlacementStatus(status) {
		return nil, domain.Invalid(fmt.Sprintf("estado desconocido %q", status))
	}
	var updated *entity.Placement
	err := uc.tx.Run(ctx, func(
		_ repository.ItemRepository,
		_ repository.ShelfRepository,
		placements repository.PlacementRepository,
		_ repository.TransferRepository,
	) error {
		p, err := placements.GetByID(placementID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.Violation(domain.ErrNotFound, "la ubicación no existe")
		}
		p.Status = status
		updated = p
		return placements.Upsert(p)
	})
	if err != nil {
		return nil, err
	}
	views, err := uc.placementViews([]*entity.Placement{updated})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ItemsOnShelf ubicaciones del estante con los datos del producto.
func (uc *ShelfUseCase) ItemsOnShelf(shelfID string) ([]dto.PlacementView, error) {
	shelf, err := uc.shelves.GetByID(shelfID)
	if err != nil {
		return nil, err
	}
	if shelf == nil {
		return nil, domain.ErrNotFound
	}
	ps, err := uc.placements.ListByShelf(shelfID)
	if err != nil {
		return nil, err
	}
	return uc.placementViews(ps)
}

// ListPlacements todas las ubicaciones con nombres resueltos.
func (uc *ShelfUseCase) ListPlacements() ([]dto.PlacementView, error) {
	ps, err := uc.placements.List()
	if err != nil {
		return nil, err
	}
	return uc.placementViews(ps)
}

// ListTransfers log completo, más reciente primero.
func (uc *ShelfUseCase) ListTransfers() ([]dto.TransferView, error) {
	ts, err := uc.transfers.List()
	if err != nil {
		return nil, err
	}
	names, err := loadNames(uc.items, uc.shelves)
	if err != nil {
		return nil, err
	}
	views := TransferViews(ts, names)
	sort.SliceStable(views, func(i, j int) bool { return views[i].Date.After(views[j].Date) })
	return views, nil
}

// Summary carga, ocupación, valor y productos bajo su mínimo.
func (uc *ShelfUseCase) Summary(shelfID string) (*dto.ShelfSummaryResponse, error) {
	shelf, err := uc.shelves.GetByID(shelfID)
	if err != nil {
		return nil, err
	}
	if shelf == nil {
		return nil, domain.ErrNotFound
	}
	views, err := uc.ItemsOnShelf(shelfID)
	if err != nil {
		return nil, err
	}
	out := &dto.ShelfSummaryResponse{
		ShelfID:       shelf.ID,
		ShelfName:     shelf.Name,
		MaxCapacity:   shelf.MaxCapacity,
		DistinctItems: len(views),
		TotalValue:    decimal.Zero,
	}
	for _, v := range views {
		out.TotalQuantity += v.Quantity
		out.TotalValue = out.TotalValue.Add(v.UnitPrice.Mul(decimal.NewFromInt(int64(v.Quantity))))
		if v.BelowMinimum {
			out.BelowMinimum++
		}
	}
	out.RemainingCapacity = max(shelf.MaxCapacity-out.TotalQuantity, 0)
	out.Occupancy = round2(inventory.Occupancy(out.TotalQuantity, shelf.MaxCapacity))
	return out, nil
}

func (uc *ShelfUseCase) load(shelfID string) (int, error) {
	ps, err := uc.placements.ListByShelf(shelfID)
	if err != nil {
		return 0, err
	}
	return inventory.ShelfLoad(ps, shelfID), nil
}

func (uc *ShelfUseCase) toResponse(s *entity.Shelf, load int) *dto.ShelfResponse {
	return &dto.ShelfResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Location:    s.Location,
		MaxCapacity: s.MaxCapacity,
		CurrentLoad: load,
		Occupancy:   round2(inventory.Occupancy(load, s.MaxCapacity)),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (uc *ShelfUseCase) placementViews(ps []*entity.Placement) ([]dto.PlacementView, error) {
	items, err := uc.items.List()
	if err != nil {
		return nil, err
	}
	shelves, err := uc.shelves.List()
	if err != nil {
		return nil, err
	}
	itemByID := make(map[string]*entity.Item, len(items))
	for _, it := range items {
		itemByID[it.ID] = it
	}
	shelfName := make(map[string]string, len(shelves))
	for _, s := range shelves {
		shelfName[s.ID] = s.Name
	}

	out := make([]dto.PlacementView, 0, len(ps))
	for _, p := range ps {
		v := dto.PlacementView{
			ID:              p.ID,
			ItemID:          p.ItemID,
			ShelfID:         p.ShelfID,
			ShelfName:       shelfName[p.ShelfID],
			Quantity:        p.Quantity,
			MinimumQuantity: p.MinimumQuantity,
			BelowMinimum:    p.Quantity <= p.MinimumQuantity,
			TransferredAt:   p.TransferredAt,
			Status:          p.Status,
			UnitPrice:       decimal.Zero,
		}
		if it, ok := itemByID[p.ItemID]; ok {
			v.ItemName = it.Name
			v.UnitPrice = it.Price
		}
		out = append(out, v)
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
