package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
)

const topLimit = 5

// KindAll valor del filtro de tipo que no filtra.
const KindAll = "all"

// Criteria filtros ya validados del reporte.
type Criteria struct {
	Range   Range
	ShelfID string // estante de origen del traslado
	ItemID  string
	Kind    string // "" o KindAll = todos
}

// Match indica si el traslado pasa el intervalo y los filtros opcionales.
func (c Criteria) Match(t *entity.Transfer) bool {
	if !c.Range.Contains(t.Date) {
		return false
	}
	if c.ShelfID != "" && t.ShelfID != c.ShelfID {
		return false
	}
	if c.ItemID != "" && t.ItemID != c.ItemID {
		return false
	}
	if c.Kind != "" && c.Kind != KindAll && t.Kind != c.Kind {
		return false
	}
	return true
}

// ReportInput estado completo leído del motor de estantes.
type ReportInput struct {
	Transfers  []*entity.Transfer
	Placements []*entity.Placement
	Shelves    []*entity.Shelf
	Items      []*entity.Item
	Criteria   Criteria
}

// BuildShelfReport función pura: agrega los traslados que pasan los filtros
// y calcula la ocupación actual de cada estante. Devuelve también los
// traslados filtrados, en orden de registro.
func BuildShelfReport(in ReportInput) (dto.ShelfReport, []*entity.Transfer) {
	shelves := make(map[string]*entity.Shelf, len(in.Shelves))
	for _, s := range in.Shelves {
		shelves[s.ID] = s
	}
	items := make(map[string]*entity.Item, len(in.Items))
	for _, it := range in.Items {
		items[it.ID] = it
	}

	report := dto.ShelfReport{
		Period:     in.Criteria.Range.Period,
		Start:      in.Criteria.Range.Start,
		End:        in.Criteria.Range.End,
		TopShelves: []dto.ShelfActivity{},
		TopItems:   []dto.ItemActivity{},
		Daily:      []dto.DailyCount{},
	}

	var (
		filtered   []*entity.Transfer
		shelfOrder []string
		shelfAct   = map[string]*dto.ShelfActivity{}
		itemOrder  []string
		itemAct    = map[string]*dto.ItemActivity{}
		daily      = map[string]int{}
	)
	for _, t := range in.Transfers {
		if !in.Criteria.Match(t) {
			continue
		}
		filtered = append(filtered, t)
		report.TotalTransfers++
		report.TotalQuantity += t.Quantity
		switch t.Kind {
		case entity.TransferStockToShelf:
			report.ByKind.StockToShelf++
		case entity.TransferShelfToStock:
			report.ByKind.ShelfToStock++
		case entity.TransferShelfToShelf:
			report.ByKind.ShelfToShelf++
		}
		daily[t.Date.UTC().Format(dateLayout)]++

		// estantes o productos ya borrados no entran en los rankings
		if s, ok := shelves[t.ShelfID]; ok {
			a, seen := shelfAct[s.ID]
			if !seen {
				a = &dto.ShelfActivity{ShelfID: s.ID, ShelfName: s.Name}
				shelfAct[s.ID] = a
				shelfOrder = append(shelfOrder, s.ID)
			}
			a.Transfers++
			a.Quantity += t.Quantity
		}
		if it, ok := items[t.ItemID]; ok {
			a, seen := itemAct[it.ID]
			if !seen {
				a = &dto.ItemActivity{ItemID: it.ID, ItemName: it.Name}
				itemAct[it.ID] = a
				itemOrder = append(itemOrder, it.ID)
			}
			a.Transfers++
			a.Quantity += t.Quantity
		}
	}

	for _, id := range shelfOrder {
		report.TopShelves = append(report.TopShelves, *shelfAct[id])
	}
	sort.SliceStable(report.TopShelves, func(i, j int) bool {
		return report.TopShelves[i].Transfers > report.TopShelves[j].Transfers
	})
	report.TopShelves = head(report.TopShelves, topLimit)

	for _, id := range itemOrder {
		report.TopItems = append(report.TopItems, *itemAct[id])
	}
	sort.SliceStable(report.TopItems, func(i, j int) bool {
		return report.TopItems[i].Quantity > report.TopItems[j].Quantity
	})
	report.TopItems = head(report.TopItems, topLimit)

	days := make([]string, 0, len(daily))
	for d := range daily {
		days = append(days, d)
	}
	sort.Strings(days)
	for _, d := range days {
		report.Daily = append(report.Daily, dto.DailyCount{Day: d, Transfers: daily[d]})
	}

	report.Occupancy = occupancy(in.Shelves, in.Placements)
	return report, filtered
}

// occupancy ocupación actual de cada estante, la más alta primero.
func occupancy(shelves []*entity.Shelf, placements []*entity.Placement) []dto.ShelfOccupancy {
	out := make([]dto.ShelfOccupancy, 0, len(shelves))
	for _, s := range shelves {
		load := inventory.ShelfLoad(placements, s.ID)
		distinct := 0
		for _, p := range placements {
			if p.ShelfID == s.ID {
				distinct++
			}
		}
		rate := inventory.Occupancy(load, s.MaxCapacity)
		out = append(out, dto.ShelfOccupancy{
			ShelfID:       s.ID,
			ShelfName:     s.Name,
			TotalQuantity: load,
			MaxCapacity:   s.MaxCapacity,
			DistinctItems: distinct,
			Rate:          rate,
			Display:       fmt.Sprintf("%d%%", int(math.Round(rate))),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rate > out[j].Rate })
	return out
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
