package filtering

import (
	"time"

	"github.com/ordenate/backend/internal/core/domain"
)

// Period bounds a transaction query to a calendar window anchored at "now".
type Period string

const (
	PeriodToday Period = "hoje"
	PeriodWeek  Period = "semana"
	PeriodMonth Period = "mes"
	PeriodYear  Period = "ano"
	PeriodAll   Period = "todos"
)

// ParsePeriod maps a query value to a Period, defaulting to PeriodAll for
// anything unrecognized.
func ParsePeriod(raw string) Period {
	switch Period(raw) {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear:
		return Period(raw)
	default:
		return PeriodAll
	}
}

// TransactionsInPeriod returns the transactions whose date falls inside the
// period anchored at now. A transaction dated exactly at local midnight of
// today belongs to "hoje"; one dated 23:59:59 the previous day does not.
// Week starts Sunday at local midnight; month and year use calendar
// equality, not rolling windows. Transactions with unparseable dates are
// excluded from every bounded period.
func TransactionsInPeriod(txns []domain.Transaction, period Period, now time.Time) []domain.Transaction {
	if period == PeriodAll || period == "" {
		out := make([]domain.Transaction, len(txns))
		copy(out, txns)
		return out
	}
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		day := domain.ParseDay(t.Date)
		if day.IsZero() {
			continue
		}
		if inPeriod(day, period, now) {
			out = append(out, t)
		}
	}
	return out
}

func inPeriod(day time.Time, period Period, now time.Time) bool {
	switch period {
	case PeriodToday:
		y1, m1, d1 := day.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case PeriodWeek:
		return !day.Before(StartOfWeek(now))
	case PeriodMonth:
		return day.Year() == now.Year() && day.Month() == now.Month()
	case PeriodYear:
		return day.Year() == now.Year()
	default:
		return true
	}
}

// StartOfWeek returns local midnight of the Sunday opening the week that
// contains t.
func StartOfWeek(t time.Time) time.Time {
	t = t.In(time.Local)
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}
