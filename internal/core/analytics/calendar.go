package analytics

import (
	"sort"
	"time"

	"github.com/ordenate/backend/internal/core/domain"
)

// MonthGridCells is the number of cells in the 6-week calendar grid.
const MonthGridCells = 42

// MonthGrid returns the 42-cell day grid for the month containing anchor.
// Leading cells before the first weekday and trailing filler cells are nil,
// matching a Sunday-first calendar layout.
func MonthGrid(anchor time.Time) []*time.Time {
	year, month, _ := anchor.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	grid := make([]*time.Time, 0, MonthGridCells)
	for i := 0; i < int(first.Weekday()); i++ {
		grid = append(grid, nil)
	}
	for day := 1; day <= daysInMonth; day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		grid = append(grid, &d)
	}
	for len(grid) < MonthGridCells {
		grid = append(grid, nil)
	}
	return grid
}

// EventsOnDay returns the events starting on the given local calendar day,
// ordered by start time.
func EventsOnDay(events []domain.Event, day time.Time) []domain.Event {
	y, m, d := day.Date()
	out := make([]domain.Event, 0)
	for _, e := range events {
		ey, em, ed := e.StartsAt.In(time.Local).Date()
		if ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	return out
}

// UpcomingEvents returns the next events at or after now, ordered by start
// time and capped at limit.
func UpcomingEvents(events []domain.Event, now time.Time, limit int) []domain.Event {
	out := make([]domain.Event, 0)
	for _, e := range events {
		if !e.StartsAt.Before(now) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
