package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

func day(n int) time.Time { return t0.Add(time.Duration(n) * 24 * time.Hour) }

func TestBuildAlerts(t *testing.T) {
	items := []*entity.Item{
		{ID: "ok", Name: "Ok", StockQuantity: 50, AlertThreshold: 10, ExpirationDate: day(200)},
		{ID: "low", Name: "Bajo", StockQuantity: 8, AlertThreshold: 10, ExpirationDate: day(200)},
		{ID: "zero", Name: "Agotado", StockQuantity: 0, AlertThreshold: 5, ExpirationDate: day(200)},
		{ID: "soon", Name: "Pronto", StockQuantity: 50, AlertThreshold: 10, ExpirationDate: day(12)},
		{ID: "gone", Name: "Vencido", StockQuantity: 50, AlertThreshold: 10, ExpirationDate: day(-1)},
	}
	alerts := BuildAlerts(items, t0, 30)
	require.Len(t, alerts, 4)

	byItem := map[string]entity.Alert{}
	for _, a := range alerts {
		byItem[a.ItemID] = a
	}
	assert.Equal(t, entity.PriorityMedium, byItem["low"].Priority)
	assert.Equal(t, entity.AlertLowStock, byItem["zero"].Type)
	assert.Equal(t, entity.PriorityHigh, byItem["zero"].Priority)
	assert.Equal(t, entity.AlertExpiring, byItem["soon"].Type)
	assert.Contains(t, byItem["soon"].Message, "12")
	assert.Equal(t, entity.AlertExpired, byItem["gone"].Type)

	// prioridad alta primero
	assert.Equal(t, entity.PriorityHigh, alerts[0].Priority)
	assert.Equal(t, entity.PriorityHigh, alerts[1].Priority)
}

func TestBuildAlerts_HorizonteConfigurable(t *testing.T) {
	items := []*entity.Item{{ID: "a", StockQuantity: 50, AlertThreshold: 1, ExpirationDate: day(45)}}
	assert.Empty(t, BuildAlerts(items, t0, 30))
	assert.Len(t, BuildAlerts(items, t0, 60), 1)
}

func TestAlertScan(t *testing.T) {
	_, db := newItemUseCase(t)
	require.NoError(t, db.Items().Create(&entity.Item{ID: "a", Name: "A", StockQuantity: 1, AlertThreshold: 5, ExpirationDate: day(-3)}))
	require.NoError(t, db.Items().Create(&entity.Item{ID: "b", Name: "B", StockQuantity: 90, AlertThreshold: 5, ExpirationDate: day(3)}))

	uc := NewAlertUseCase(db.Items(), 0, logger.Nop())
	uc.now = func() time.Time { return t0 }

	counts, err := uc.Scan()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		entity.AlertLowStock: 1,
		entity.AlertExpiring: 1,
		entity.AlertExpired:  1,
	}, counts)
}
