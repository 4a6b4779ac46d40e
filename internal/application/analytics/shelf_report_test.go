package analytics

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/storage"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func tr(id, item, shelf, kind string, qty int, at time.Time) *entity.Transfer {
	return &entity.Transfer{ID: id, ItemID: item, ShelfID: shelf, Kind: kind, Quantity: qty, Date: at, User: "Admin Pharmacie"}
}

func scenario() ReportInput {
	in := now.Add(-2 * time.Hour)
	return ReportInput{
		Shelves: []*entity.Shelf{
			{ID: "s1", Name: "Rayon A", MaxCapacity: 100},
			{ID: "s2", Name: "Rayon B", MaxCapacity: 40},
		},
		Items: []*entity.Item{
			{ID: "i1", Name: "Paracetamol"},
			{ID: "i2", Name: "Amoxicilina"},
		},
		Placements: []*entity.Placement{
			{ID: "p1", ItemID: "i1", ShelfID: "s1", Quantity: 25},
			{ID: "p2", ItemID: "i2", ShelfID: "s2", Quantity: 30},
		},
		Transfers: []*entity.Transfer{
			tr("t1", "i1", "s1", entity.TransferStockToShelf, 10, in),
			tr("t2", "i1", "s1", entity.TransferStockToShelf, 10, in.Add(time.Minute)),
			tr("t3", "i2", "s2", entity.TransferStockToShelf, 30, in.Add(2*time.Minute)),
			tr("t4", "i1", "s1", entity.TransferStockToShelf, 5, in.Add(3*time.Minute)),
			// fuera del periodo
			tr("t0", "i2", "s2", entity.TransferStockToShelf, 99, now.AddDate(0, -2, 0)),
		},
	}
}

func monthCriteria(t *testing.T) Criteria {
	r, err := ResolvePeriod(PeriodMonth, "", "", now)
	require.NoError(t, err)
	return Criteria{Range: r}
}

// ── BuildShelfReport ──

func TestBuildShelfReport_RankingYOcupacion(t *testing.T) {
	in := scenario()
	in.Criteria = monthCriteria(t)
	report, filtered := BuildShelfReport(in)

	assert.Len(t, filtered, 4)
	assert.Equal(t, 4, report.TotalTransfers)
	assert.Equal(t, 55, report.TotalQuantity)
	assert.Equal(t, dto.KindCount{StockToShelf: 4}, report.ByKind)

	require.Len(t, report.TopShelves, 2)
	assert.Equal(t, "s1", report.TopShelves[0].ShelfID)
	assert.Equal(t, 3, report.TopShelves[0].Transfers)
	assert.Equal(t, 25, report.TopShelves[0].Quantity)
	assert.Equal(t, "s2", report.TopShelves[1].ShelfID)
	assert.Equal(t, 1, report.TopShelves[1].Transfers)

	require.Len(t, report.TopItems, 2)
	assert.Equal(t, "i2", report.TopItems[0].ItemID) // 30 > 25
	assert.Equal(t, 1, report.TopItems[0].Transfers)

	// ocupación independiente del periodo: s2 75% > s1 25%
	require.Len(t, report.Occupancy, 2)
	assert.Equal(t, "s2", report.Occupancy[0].ShelfID)
	assert.InDelta(t, 75.0, report.Occupancy[0].Rate, 1e-9)
	assert.Equal(t, "75%", report.Occupancy[0].Display)
	assert.Equal(t, 30, report.Occupancy[0].TotalQuantity)

	require.Len(t, report.Daily, 1)
	assert.Equal(t, dto.DailyCount{Day: "2024-05-15", Transfers: 4}, report.Daily[0])
}

func TestBuildShelfReport_OcupacionNoDependeDelPeriodo(t *testing.T) {
	in := scenario()
	in.Criteria = monthCriteria(t)
	month, _ := BuildShelfReport(in)

	r, err := ResolvePeriod(PeriodCustom, "2023-01-01", "2023-01-31", now)
	require.NoError(t, err)
	in.Criteria = Criteria{Range: r}
	empty, filtered := BuildShelfReport(in)

	assert.Empty(t, filtered)
	assert.Zero(t, empty.TotalTransfers)
	assert.Empty(t, empty.TopShelves)
	assert.Equal(t, month.Occupancy, empty.Occupancy)
}

func TestBuildShelfReport_EmpateEstable(t *testing.T) {
	in := scenario()
	in.Transfers = []*entity.Transfer{
		tr("a", "i1", "s2", entity.TransferStockToShelf, 1, now.Add(-time.Hour)),
		tr("b", "i1", "s1", entity.TransferStockToShelf, 1, now.Add(-time.Hour)),
	}
	in.Criteria = monthCriteria(t)
	report, _ := BuildShelfReport(in)
	require.Len(t, report.TopShelves, 2)
	assert.Equal(t, "s2", report.TopShelves[0].ShelfID)
	assert.Equal(t, "s1", report.TopShelves[1].ShelfID)
}

func TestBuildShelfReport_Filtros(t *testing.T) {
	in := scenario()
	in.Transfers = append(in.Transfers,
		&entity.Transfer{ID: "x", ItemID: "i1", ShelfID: "s1", DestinationShelfID: "s2", Kind: entity.TransferShelfToShelf, Quantity: 2, Date: now.Add(-time.Minute)},
		tr("y", "i1", "s1", entity.TransferShelfToStock, 3, now.Add(-time.Minute)),
	)

	c := monthCriteria(t)
	c.ShelfID = "s2"
	in.Criteria = c
	report, filtered := BuildShelfReport(in)
	assert.Equal(t, 1, report.TotalTransfers) // solo t3; el traslado hacia s2 sale de s1
	require.Len(t, filtered, 1)
	assert.Equal(t, "t3", filtered[0].ID)

	c.ShelfID = "s1"
	in.Criteria = c
	report, _ = BuildShelfReport(in)
	assert.Equal(t, 5, report.TotalTransfers) // t1, t2, t4, x, y

	c = monthCriteria(t)
	c.ItemID = "i1"
	c.Kind = entity.TransferShelfToStock
	in.Criteria = c
	report, filtered = BuildShelfReport(in)
	require.Len(t, filtered, 1)
	assert.Equal(t, "y", filtered[0].ID)
	assert.Equal(t, dto.KindCount{ShelfToStock: 1}, report.ByKind)

	c.Kind = KindAll
	in.Criteria = c
	report, _ = BuildShelfReport(in)
	assert.Equal(t, 5, report.TotalTransfers)
}

func TestBuildShelfReport_TopCinco(t *testing.T) {
	in := ReportInput{Criteria: monthCriteria(t)}
	for i := 0; i < 7; i++ {
		id := string(rune('a' + i))
		in.Shelves = append(in.Shelves, &entity.Shelf{ID: id, Name: id, MaxCapacity: 10})
		for j := 0; j <= i; j++ {
			in.Transfers = append(in.Transfers, tr(id+string(rune('0'+j)), "i", id, entity.TransferStockToShelf, 1, now.Add(-time.Hour)))
		}
	}
	report, _ := BuildShelfReport(in)
	require.Len(t, report.TopShelves, 5)
	assert.Equal(t, "g", report.TopShelves[0].ShelfID)
	assert.Empty(t, report.TopItems) // producto desconocido
}

// ── ShelfAnalyticsUseCase ──

func newAnalytics(t *testing.T) *ShelfAnalyticsUseCase {
	t.Helper()
	store, err := kvstore.NewFileStore(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)
	db := storage.Open(store, logger.Nop(), storage.Options{})
	in := scenario()
	for _, s := range in.Shelves {
		require.NoError(t, db.Shelves().Create(s))
	}
	for _, it := range in.Items {
		it.Price = decimal.NewFromInt(100)
		require.NoError(t, db.Items().Create(it))
	}
	for _, p := range in.Placements {
		require.NoError(t, db.Placements().Upsert(p))
	}
	in.Transfers[3].Comment = `reposición "urgente"`
	for _, x := range in.Transfers {
		require.NoError(t, db.Transfers().Create(x))
	}
	uc := NewShelfAnalyticsUseCase(db.Transfers(), db.Placements(), db.Shelves(), db.Items())
	uc.now = func() time.Time { return now }
	return uc
}

func TestReport(t *testing.T) {
	uc := newAnalytics(t)
	report, err := uc.Report(context.Background(), dto.ShelfReportFilter{Period: PeriodMonth})
	require.NoError(t, err)
	assert.Equal(t, 4, report.TotalTransfers)

	_, err = uc.Report(context.Background(), dto.ShelfReportFilter{Kind: "teleport"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportCSV(t *testing.T) {
	uc := newAnalytics(t)
	out, err := uc.ExportCSV(context.Background(), dto.ShelfReportFilter{})
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, CSVHeader, lines[0])
	assert.Equal(t, `"2024-05-15T12:30:00.000Z","Paracetamol","Rayon A","stock_to_shelf","10","Admin Pharmacie",""`, lines[1])
	assert.True(t, strings.HasSuffix(lines[4], `"reposición ""urgente"""`), lines[4])
}

func TestExportJSON(t *testing.T) {
	uc := newAnalytics(t)
	out, err := uc.ExportJSON(context.Background(), dto.ShelfReportFilter{Period: PeriodMonth})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, PeriodMonth, doc["period"])
	assert.Equal(t, "2024-05-01T00:00:00.000Z", doc["start"])
	assert.Len(t, doc["transfers"], 4)
	stats, ok := doc["statistics"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 4, stats["total_transfers"])
}
