package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemWithdraw_NoPermiteNegativo(t *testing.T) {
	it := &Item{StockQuantity: 10}
	require.NoError(t, it.Withdraw(4))
	assert.Equal(t, 6, it.StockQuantity)

	assert.ErrorIs(t, it.Withdraw(7), ErrNotEnoughUnits)
	assert.Equal(t, 6, it.StockQuantity)

	assert.ErrorIs(t, it.Withdraw(0), ErrNonPositiveQuantity)
}

func TestItemRestock(t *testing.T) {
	it := &Item{StockQuantity: 1}
	require.NoError(t, it.Restock(9))
	assert.Equal(t, 10, it.StockQuantity)
	assert.ErrorIs(t, it.Restock(-1), ErrNonPositiveQuantity)
}

func TestItemVencimiento(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	soon := &Item{ExpirationDate: now.Add(10 * 24 * time.Hour)}
	assert.False(t, soon.IsExpired(now))
	assert.True(t, soon.IsExpiringSoon(now, 30))
	assert.Equal(t, 10, soon.DaysUntilExpiration(now))

	far := &Item{ExpirationDate: now.AddDate(1, 0, 0)}
	assert.False(t, far.IsExpiringSoon(now, 30))

	past := &Item{ExpirationDate: now.Add(-time.Hour)}
	assert.True(t, past.IsExpired(now))
	assert.False(t, past.IsExpiringSoon(now, 30))

	none := &Item{}
	assert.False(t, none.IsExpired(now))
}

func TestItemStockValue(t *testing.T) {
	it := &Item{Price: decimal.NewFromInt(250), StockQuantity: 4}
	assert.True(t, decimal.NewFromInt(1000).Equal(it.StockValue()))
	assert.True(t, (&Item{Price: decimal.NewFromInt(5), StockQuantity: 0}).IsLowStock())
}
