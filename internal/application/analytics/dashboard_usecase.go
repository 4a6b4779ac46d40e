package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

const dashboardTopItems = 5 // productos en el widget de más vendidos

// DashboardUseCase genera el resumen de ventas y stock.
type DashboardUseCase struct {
	sales      repository.SaleRepository
	items      repository.ItemRepository
	expiryDays int
	now        func() time.Time
}

// NewDashboardUseCase construye el caso de uso; expiryDays <= 0 usa el horizonte por defecto.
func NewDashboardUseCase(sales repository.SaleRepository, items repository.ItemRepository, expiryDays int) *DashboardUseCase {
	if expiryDays <= 0 {
		expiryDays = usecase.DefaultExpiryDays
	}
	return &DashboardUseCase{sales: sales, items: items, expiryDays: expiryDays, now: time.Now}
}

// GetSummary construye el resumen: ventas del día, mes y año, más vendidos,
// estado del stock y alertas vigentes.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := uc.now()

	// ── Lecturas en paralelo ──────────────────────────────────────────────────
	type salesResult struct {
		sales []*entity.Sale
		err   error
	}
	type itemsResult struct {
		items []*entity.Item
		err   error
	}
	salesCh := make(chan salesResult, 1)
	itemsCh := make(chan itemsResult, 1)
	go func() {
		s, err := uc.sales.List()
		salesCh <- salesResult{s, err}
	}()
	go func() {
		i, err := uc.items.List()
		itemsCh <- itemsResult{i, err}
	}()
	sr := <-salesCh
	ir := <-itemsCh
	if sr.err != nil {
		return nil, sr.err
	}
	if ir.err != nil {
		return nil, ir.err
	}

	return &dto.DashboardSummary{
		Sales:  SalesStats(sr.sales, ir.items, now),
		Stock:  StockStats(ir.items, now, uc.expiryDays),
		Alerts: usecase.BuildAlerts(ir.items, now, uc.expiryDays),
	}, nil
}

// SalesStats totales del día, mes y año en curso, cantidad de transacciones
// y los cinco productos más vendidos en unidades.
func SalesStats(sales []*entity.Sale, items []*entity.Item, now time.Time) dto.SalesStats {
	loc := now.Location()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)

	names := make(map[string]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}

	out := dto.SalesStats{
		TodayTotal: decimal.Zero,
		MonthTotal: decimal.Zero,
		YearTotal:  decimal.Zero,
		TopItems:   []dto.TopSoldItem{},
	}
	sold := map[string]*dto.TopSoldItem{}
	var order []string
	for _, s := range sales {
		out.Transactions++
		at := s.Date.In(loc)
		if !at.Before(dayStart) {
			out.TodayTotal = out.TodayTotal.Add(s.Total)
		}
		if !at.Before(monthStart) {
			out.MonthTotal = out.MonthTotal.Add(s.Total)
		}
		if !at.Before(yearStart) {
			out.YearTotal = out.YearTotal.Add(s.Total)
		}
		for _, l := range s.Lines {
			t, ok := sold[l.ItemID]
			if !ok {
				t = &dto.TopSoldItem{ItemID: l.ItemID, ItemName: names[l.ItemID], Revenue: decimal.Zero}
				sold[l.ItemID] = t
				order = append(order, l.ItemID)
			}
			t.Quantity += l.Quantity
			t.Revenue = t.Revenue.Add(l.Subtotal)
		}
	}
	for _, id := range order {
		out.TopItems = append(out.TopItems, *sold[id])
	}
	sort.SliceStable(out.TopItems, func(i, j int) bool { return out.TopItems[i].Quantity > out.TopItems[j].Quantity })
	out.TopItems = head(out.TopItems, dashboardTopItems)
	return out
}

// StockStats recuento del catálogo y valor del stock central.
func StockStats(items []*entity.Item, now time.Time, expiryDays int) dto.StockStats {
	out := dto.StockStats{TotalItems: len(items), StockValue: decimal.Zero}
	for _, it := range items {
		if it.IsLowStock() {
			out.LowStockItems++
		}
		if it.IsExpired(now) {
			out.ExpiredItems++
		} else if it.IsExpiringSoon(now, expiryDays) {
			out.ExpiringItems++
		}
		out.StockValue = out.StockValue.Add(it.StockValue())
	}
	return out
}
