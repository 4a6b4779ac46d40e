package customers

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
)

// LoyalThreshold compras mínimas para considerar fiel a un cliente.
const (
	LoyalThreshold = 5
	loyalLimit     = 10
)

// NoAgeLabel tramo de los clientes sin fecha de nacimiento.
const NoAgeLabel = "No informado"

var ageBrackets = []struct {
	label string
	max   int
}{
	{"18-25", 25},
	{"26-35", 35},
	{"36-45", 45},
	{"46-55", 55},
	{"56-65", 65},
}

// Stats total, altas del mes, activos, fieles (top 10) y reparto por edad.
func (uc *CustomerUseCase) Stats() (*dto.CustomerStatsResponse, error) {
	all, err := uc.customers.List()
	if err != nil {
		return nil, err
	}
	sales, err := uc.sales.List()
	if err != nil {
		return nil, err
	}
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	counts := make(map[string]int)
	spend := make(map[string]decimal.Decimal)
	for _, s := range sales {
		if s.CustomerID == "" {
			continue
		}
		counts[s.CustomerID]++
		spend[s.CustomerID] = spend[s.CustomerID].Add(s.Total)
	}

	out := &dto.CustomerStatsResponse{Total: len(all), Loyal: []dto.LoyalCustomer{}}
	brackets := make([]int, len(ageBrackets)+2) // + "65+" + sin dato
	sortByName(all)
	for _, c := range all {
		if !c.RegisteredAt.Before(monthStart) {
			out.NewThisMonth++
		}
		n := counts[c.ID]
		if n > 0 {
			out.Active++
		}
		if n >= LoyalThreshold {
			out.Loyal = append(out.Loyal, dto.LoyalCustomer{
				CustomerResponse: *uc.toResponse(c),
				PurchaseCount:    n,
				LifetimeSpend:    spend[c.ID],
			})
		}
		brackets[bracketIndex(Age(c.BirthDate, now))]++
	}

	sort.SliceStable(out.Loyal, func(i, j int) bool { return out.Loyal[i].PurchaseCount > out.Loyal[j].PurchaseCount })
	if len(out.Loyal) > loyalLimit {
		out.Loyal = out.Loyal[:loyalLimit]
	}

	for i, b := range ageBrackets {
		out.AgeBreakdown = append(out.AgeBreakdown, dto.AgeBracket{Label: b.label, Count: brackets[i]})
	}
	out.AgeBreakdown = append(out.AgeBreakdown,
		dto.AgeBracket{Label: "65+", Count: brackets[len(ageBrackets)]},
		dto.AgeBracket{Label: NoAgeLabel, Count: brackets[len(ageBrackets)+1]},
	)
	return out, nil
}

// bracketIndex los menores de 18 cuentan en el primer tramo.
func bracketIndex(age *int) int {
	if age == nil {
		return len(ageBrackets) + 1
	}
	for i, b := range ageBrackets {
		if *age <= b.max {
			return i
		}
	}
	return len(ageBrackets)
}
