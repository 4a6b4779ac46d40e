package shelving

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func TestShelfCreate_Validacion(t *testing.T) {
	f := newFixture(t)

	_, err := f.shelves.Create(dto.CreateShelfRequest{Name: " ", Location: "", MaxCapacity: 0})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, domain.Messages(err), 3)

	out, err := f.shelves.Create(dto.CreateShelfRequest{Name: "Rayon D", Location: "Allée 3", MaxCapacity: 40})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, 0, out.CurrentLoad)
	assert.True(t, out.CreatedAt.Equal(t0))
}

func TestShelfUpdate_CapacidadBajaSeAplicaEnSiguienteTraslado(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "I", 100)
	f.addShelf(t, "S", 50)
	_, err := f.do(entity.TransferStockToShelf, "I", "S", 40)
	require.NoError(t, err)

	f.shelves.now = func() time.Time { return t0.Add(24 * time.Hour) }
	out, err := f.shelves.Update("S", dto.UpdateShelfRequest{MaxCapacity: ptr(30)})
	require.NoError(t, err)
	assert.Equal(t, 30, out.MaxCapacity)
	assert.Equal(t, 40, out.CurrentLoad)
	assert.True(t, out.UpdatedAt.Equal(t0.Add(24*time.Hour)))

	// La ubicación existente se mantiene.
	assert.Equal(t, 40, f.placement(t, "I", "S").Quantity)

	_, err = f.do(entity.TransferStockToShelf, "I", "S", 1)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	// Sacar unidades sigue permitido.
	_, err = f.do(entity.TransferShelfToStock, "I", "S", 15)
	assert.NoError(t, err)
}

func TestShelfUpdate_NoEncontrado(t *testing.T) {
	f := newFixture(t)
	_, err := f.shelves.Update("x", dto.UpdateShelfRequest{Name: ptr("B")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShelfDelete_DevuelveUnidadesAlStock(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "I", 100)
	f.addItem(t, "J", 20)
	f.addShelf(t, "S", 100)
	f.addShelf(t, "T", 100)
	_, err := f.do(entity.TransferStockToShelf, "I", "S", 30)
	require.NoError(t, err)
	_, err = f.do(entity.TransferStockToShelf, "J", "S", 12)
	require.NoError(t, err)
	_, err = f.do(entity.TransferStockToShelf, "I", "T", 5)
	require.NoError(t, err)

	out, err := f.shelves.Delete(context.Background(), "S")
	require.NoError(t, err)
	assert.Equal(t, 42, out.ReturnedUnits)
	assert.Equal(t, 2, out.Transfers)

	assert.Equal(t, 95, f.stock(t, "I"))
	assert.Equal(t, 20, f.stock(t, "J"))
	assert.Equal(t, 100, f.total(t, "I"))
	ps, _ := f.db.Placements().ListByShelf("S")
	assert.Empty(t, ps)
	assert.NotNil(t, f.placement(t, "I", "T"))

	shelf, _ := f.db.Shelves().GetByID("S")
	assert.Nil(t, shelf)

	ts := f.transfers(t)
	require.Len(t, ts, 5)
	for _, tr := range ts[3:] {
		assert.Equal(t, entity.TransferShelfToStock, tr.Kind)
		assert.Equal(t, SystemUser, tr.User)
		assert.Equal(t, ShelfDeletionComment, tr.Comment)
		assert.Equal(t, "S", tr.ShelfID)
	}
}

func TestShelfDelete_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.shelves.Delete(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetPlacementStatus(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "I", 100)
	f.addShelf(t, "S", 100)
	_, err := f.do(entity.TransferStockToShelf, "I", "S", 10)
	require.NoError(t, err)
	p := f.placement(t, "I", "S")

	v, err := f.shelves.SetPlacementStatus(context.Background(), p.ID, entity.PlacementReserved)
	require.NoError(t, err)
	assert.Equal(t, entity.PlacementReserved, v.Status)
	assert.Equal(t, "Item I", v.ItemName)
	assert.Equal(t, entity.PlacementReserved, f.placement(t, "I", "S").Status)

	_, err = f.shelves.SetPlacementStatus(context.Background(), p.ID, "vendido")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.shelves.SetPlacementStatus(context.Background(), "x", entity.PlacementExpired)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVistas_NombresResueltosAlLeer(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "I", 100)
	f.addShelf(t, "A", 100)
	f.addShelf(t, "B", 100)
	_, err := f.do(entity.TransferStockToShelf, "I", "A", 10)
	require.NoError(t, err)
	f.transfer.now = func() time.Time { return t0.Add(time.Minute) }
	_, err = f.move("I", "A", "B", 4)
	require.NoError(t, err)

	// Renombrar después del traslado: la vista refleja el nombre actual.
	_, err = f.shelves.Update("B", dto.UpdateShelfRequest{Name: ptr("Rayon B bis")})
	require.NoError(t, err)

	views, err := f.shelves.ListTransfers()
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, entity.TransferShelfToShelf, views[0].Kind)
	assert.Equal(t, "Rayon B bis", views[0].DestinationShelfName)
	assert.Equal(t, "Estante A", views[0].ShelfName)
	assert.Equal(t, "Item I", views[0].ItemName)

	onB, err := f.shelves.ItemsOnShelf("B")
	require.NoError(t, err)
	require.Len(t, onB, 1)
	assert.Equal(t, "Rayon B bis", onB[0].ShelfName)

	_, err = f.shelves.ItemsOnShelf("zz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "I", 100)
	f.addItem(t, "J", 100)
	f.addShelf(t, "S", 80)
	_, err := f.do(entity.TransferStockToShelf, "I", "S", 30)
	require.NoError(t, err)
	_, err = f.do(entity.TransferStockToShelf, "J", "S", 20)
	require.NoError(t, err)
	_, err = f.do(entity.TransferShelfToStock, "J", "S", 16)
	require.NoError(t, err)

	s, err := f.shelves.Summary("S")
	require.NoError(t, err)
	assert.Equal(t, 34, s.TotalQuantity)
	assert.Equal(t, 46, s.RemainingCapacity)
	assert.Equal(t, 2, s.DistinctItems)
	assert.InDelta(t, 42.5, s.Occupancy, 1e-9)
	assert.True(t, decimal.NewFromInt(3400).Equal(s.TotalValue))
	// J: 4 unidades con mínimo 4.
	assert.Equal(t, 1, s.BelowMinimum)
}

func TestList_IncluyeCarga(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "I", 100)
	f.addShelf(t, "S", 60)
	f.addShelf(t, "T", 60)
	_, err := f.do(entity.TransferStockToShelf, "I", "S", 20)
	require.NoError(t, err)

	list, err := f.shelves.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 20, list[0].CurrentLoad)
	assert.InDelta(t, 33.33, list[0].Occupancy, 1e-9)
	assert.Equal(t, 0, list[1].CurrentLoad)
}
