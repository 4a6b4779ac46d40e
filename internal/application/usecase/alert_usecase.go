package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// DefaultExpiryDays horizonte de "vence pronto" cuando la configuración no lo fija.
const DefaultExpiryDays = 30

// AlertUseCase deriva alertas de stock bajo y vencimiento a partir del catálogo.
type AlertUseCase struct {
	items      repository.ItemRepository
	expiryDays int
	log        *logger.Logger
	now        func() time.Time
}

// NewAlertUseCase construye el caso de uso; expiryDays <= 0 usa DefaultExpiryDays.
func NewAlertUseCase(items repository.ItemRepository, expiryDays int, log *logger.Logger) *AlertUseCase {
	if expiryDays <= 0 {
		expiryDays = DefaultExpiryDays
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AlertUseCase{items: items, expiryDays: expiryDays, log: log.Component("alerts"), now: time.Now}
}

// List alertas vigentes, las de prioridad alta primero.
func (uc *AlertUseCase) List() ([]entity.Alert, error) {
	items, err := uc.items.List()
	if err != nil {
		return nil, err
	}
	return BuildAlerts(items, uc.now(), uc.expiryDays), nil
}

// Scan recorre el catálogo y registra en el log cuántas alertas hay por tipo.
func (uc *AlertUseCase) Scan() (map[string]int, error) {
	alerts, err := uc.List()
	if err != nil {
		uc.log.Error().Err(err).Msg("no se pudo leer el catálogo")
		return nil, err
	}
	counts := map[string]int{
		entity.AlertLowStock: 0,
		entity.AlertExpiring: 0,
		entity.AlertExpired:  0,
	}
	for _, a := range alerts {
		counts[a.Type]++
	}
	uc.log.Info().
		Int(entity.AlertLowStock, counts[entity.AlertLowStock]).
		Int(entity.AlertExpiring, counts[entity.AlertExpiring]).
		Int(entity.AlertExpired, counts[entity.AlertExpired]).
		Msg("revisión de alertas")
	return counts, nil
}

// BuildAlerts función pura: stock bajo (prioridad alta si agotado),
// vencimiento próximo (media) y vencido (alta).
func BuildAlerts(items []*entity.Item, now time.Time, expiryDays int) []entity.Alert {
	out := []entity.Alert{}
	for _, it := range items {
		if it.IsLowStock() {
			prio := entity.PriorityMedium
			msg := fmt.Sprintf("Stock bajo: quedan %d unidades (umbral %d)", it.StockQuantity, it.AlertThreshold)
			if it.StockQuantity == 0 {
				prio = entity.PriorityHigh
				msg = "Producto agotado en el stock central"
			}
			out = append(out, entity.Alert{
				Type: entity.AlertLowStock, ItemID: it.ID, ItemName: it.Name,
				Message: msg, Priority: prio, Date: now,
			})
		}
		switch {
		case it.IsExpired(now):
			out = append(out, entity.Alert{
				Type: entity.AlertExpired, ItemID: it.ID, ItemName: it.Name,
				Message:  "Producto vencido el " + it.ExpirationDate.Format("2006-01-02"),
				Priority: entity.PriorityHigh, Date: now,
			})
		case it.IsExpiringSoon(now, expiryDays):
			out = append(out, entity.Alert{
				Type: entity.AlertExpiring, ItemID: it.ID, ItemName: it.Name,
				Message:  fmt.Sprintf("Vence en %d días", it.DaysUntilExpiration(now)),
				Priority: entity.PriorityMedium, Date: now,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank(out[i].Priority) > priorityRank(out[j].Priority)
	})
	return out
}

func priorityRank(p string) int {
	switch p {
	case entity.PriorityHigh:
		return 2
	case entity.PriorityMedium:
		return 1
	}
	return 0
}
