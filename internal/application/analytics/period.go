package analytics

import (
	"fmt"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain"
)

// Periodos del reporte de estantes.
const (
	PeriodDay     = "day"
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
	PeriodCustom  = "custom"
)

const dateLayout = "2006-01-02"

// Range intervalo semiabierto [Start, End).
type Range struct {
	Period string
	Start  time.Time
	End    time.Time
}

// Contains indica si t cae dentro del intervalo.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// ResolvePeriod convierte el selector de periodo en un intervalo concreto.
// Periodo vacío = mes en curso. En custom la fecha final incluye el día completo
// y las fechas ausentes valen 1 de enero y now.
func ResolvePeriod(period, startDate, endDate string, now time.Time) (Range, error) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	r := Range{Period: period, End: now}

	switch period {
	case PeriodDay:
		r.Start = today
	case PeriodWeek:
		r.Start = now.AddDate(0, 0, -7)
	case "", PeriodMonth:
		r.Period = PeriodMonth
		r.Start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	case PeriodQuarter:
		q := (int(now.Month()) - 1) / 3
		r.Start = time.Date(now.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, loc)
	case PeriodYear:
		r.Start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	case PeriodCustom:
		var msgs []string
		r.Start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		if startDate != "" {
			d, err := time.ParseInLocation(dateLayout, startDate, loc)
			if err != nil {
				msgs = append(msgs, fmt.Sprintf("fecha de inicio inválida %q (formato AAAA-MM-DD)", startDate))
			}
			r.Start = d
		}
		if endDate != "" {
			d, err := time.ParseInLocation(dateLayout, endDate, loc)
			if err != nil {
				msgs = append(msgs, fmt.Sprintf("fecha de fin inválida %q (formato AAAA-MM-DD)", endDate))
			}
			r.End = d.AddDate(0, 0, 1)
		}
		if len(msgs) == 0 && !r.Start.Before(r.End) {
			msgs = append(msgs, "la fecha de inicio debe ser anterior a la fecha de fin")
		}
		if len(msgs) > 0 {
			return Range{}, domain.Invalid(msgs...)
		}
	default:
		return Range{}, domain.Invalid(fmt.Sprintf("periodo desconocido %q", period))
	}
	return r, nil
}
