package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ordenate/backend/internal/core/analytics"
	"github.com/ordenate/backend/internal/core/domain"
	"github.com/ordenate/backend/internal/core/filtering"
)

func TestRollupDivergesFromSettledTotals(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.Local)
	txns := []domain.Transaction{
		{Kind: domain.Revenue, Amount: decimal.NewFromInt(100), Date: "2026-08-10", ClientID: "A", Settled: true},
		{Kind: domain.Revenue, Amount: decimal.NewFromInt(50), Date: "2026-08-11", ClientID: "A", Settled: false},
	}

	// The rollup describes work attributable to the client and counts
	// unsettled revenue; the financial totals describe cash received.
	rollup := analytics.RollupForClient("A", nil, nil, txns)
	assert.True(t, rollup.Revenue.Equal(decimal.NewFromInt(150)))

	totals := analytics.FinancialTotals(txns, filtering.PeriodMonth, analytics.KindAll, now)
	assert.True(t, totals.Revenue.Equal(decimal.NewFromInt(100)))
}

func TestRollupCountsAndDanglingID(t *testing.T) {
	notes := []domain.Note{
		{ClientID: "A", Text: "primeira"},
		{ClientID: "B", Text: "outra"},
		{ClientID: "A", Text: "segunda"},
	}
	events := []domain.Event{
		{ClientID: "A", Title: "Consulta"},
	}

	rollup := analytics.RollupForClient("A", notes, events, nil)
	assert.Equal(t, 2, rollup.NoteCount)
	assert.Equal(t, 1, rollup.Events)
	assert.True(t, rollup.Revenue.IsZero())

	// An id that resolves to nothing yields zeros, never an error.
	orphan := analytics.RollupForClient("missing", notes, events, nil)
	assert.Equal(t, 0, orphan.NoteCount)
	assert.Equal(t, 0, orphan.Events)
}

func TestNotesForClientMostRecentFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.Local)
	notes := []domain.Note{
		{ID: "old", ClientID: "A", CreatedAt: base},
		{ID: "other-client", ClientID: "B", CreatedAt: base.Add(time.Hour)},
		{ID: "new", ClientID: "A", CreatedAt: base.Add(2 * time.Hour)},
	}

	got := analytics.NotesForClient("A", notes)

	assert.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "old", got[1].ID)
}

func TestNewThisMonth(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.Local)
	clients := []domain.Client{
		{CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)},
		{CreatedAt: time.Date(2026, 7, 31, 23, 59, 0, 0, time.Local)},
		{CreatedAt: time.Date(2025, 8, 15, 0, 0, 0, 0, time.Local)},
		{}, // no creation timestamp
	}

	assert.Equal(t, 1, analytics.NewThisMonth(clients, now))
}

func TestAgeYears(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.Local)

	tests := []struct {
		birth string
		want  int
	}{
		{"1990-04-12", 36},
		{"1990-08-27", 36}, // birthday today
		{"1990-08-28", 35}, // birthday tomorrow
		{"", -1},
		{"not a date", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, analytics.AgeYears(tt.birth, now), "birth date %q", tt.birth)
	}
}

func TestUpcomingEvents(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.Local)
	events := []domain.Event{
		{ID: "past", StartsAt: now.Add(-time.Hour)},
		{ID: "later", StartsAt: now.Add(48 * time.Hour)},
		{ID: "soon", StartsAt: now.Add(time.Hour)},
		{ID: "next", StartsAt: now.Add(2 * time.Hour)},
	}

	got := analytics.UpcomingEvents(events, now, 2)

	assert.Len(t, got, 2)
	assert.Equal(t, "soon", got[0].ID)
	assert.Equal(t, "next", got[1].ID)
}

func TestMonthGrid(t *testing.T) {
	// August 2026 starts on a Saturday.
	grid := analytics.MonthGrid(time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local))

	assert.Len(t, grid, analytics.MonthGridCells)
	for i := 0; i < 6; i++ {
		assert.Nil(t, grid[i])
	}
	assert.NotNil(t, grid[6])
	assert.Equal(t, 1, grid[6].Day())
	assert.Equal(t, 31, grid[36].Day())
	assert.Nil(t, grid[37])
}
