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

func revenue(amount int64, date string, settled bool) domain.Transaction {
	return domain.Transaction{Kind: domain.Revenue, Amount: decimal.NewFromInt(amount), Date: date, Settled: settled}
}

func expense(amount int64, date string, settled bool) domain.Transaction {
	return domain.Transaction{Kind: domain.Expense, Amount: decimal.NewFromInt(amount), Date: date, Settled: settled}
}

func TestFinancialTotalsSettledOnly(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.Local)
	txns := []domain.Transaction{
		revenue(100, "2026-08-10", true),
		revenue(50, "2026-08-12", false), // recorded, not received
		expense(30, "2026-08-15", true),
		expense(20, "2026-08-16", false),
		revenue(500, "2026-01-05", true), // outside the month
	}

	totals := analytics.FinancialTotals(txns, filtering.PeriodMonth, analytics.KindAll, now)

	assert.True(t, totals.Revenue.Equal(decimal.NewFromInt(100)))
	assert.True(t, totals.Expense.Equal(decimal.NewFromInt(30)))
	assert.True(t, totals.Balance.Equal(decimal.NewFromInt(70)))

	// All-time totals are settled-only too, over the unfiltered set.
	assert.True(t, totals.AllRevenue.Equal(decimal.NewFromInt(600)))
	assert.True(t, totals.AllExpense.Equal(decimal.NewFromInt(30)))
	assert.True(t, totals.AllBalance.Equal(decimal.NewFromInt(570)))
}

func TestFinancialTotalsKindFilterNarrowsList(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.Local)
	txns := []domain.Transaction{
		revenue(100, "2026-08-10", true),
		expense(30, "2026-08-15", true),
	}

	totals := analytics.FinancialTotals(txns, filtering.PeriodMonth, analytics.KindExpenses, now)

	assert.Len(t, totals.Filtered, 1)
	assert.Equal(t, domain.Expense, totals.Filtered[0].Kind)
	// The kind filter narrows the period figures but never the all-time ones.
	assert.True(t, totals.Revenue.IsZero())
	assert.True(t, totals.Expense.Equal(decimal.NewFromInt(30)))
	assert.True(t, totals.AllRevenue.Equal(decimal.NewFromInt(100)))
}

func TestMonthlyCashFlow(t *testing.T) {
	txns := []domain.Transaction{
		revenue(200, "2026-03-10", true),
		revenue(100, "2026-01-15", true),
		expense(40, "2026-01-20", true),
		revenue(999, "2026-02-01", false), // unsettled, excluded
		expense(10, "bad date", true),     // unparseable, excluded
	}

	series := analytics.MonthlyCashFlow(txns)

	// Chronologically ascending regardless of input order.
	assert.Len(t, series, 2)
	assert.Equal(t, "jan 2026", series[0].Label)
	assert.True(t, series[0].Revenue.Equal(decimal.NewFromInt(100)))
	assert.True(t, series[0].Expense.Equal(decimal.NewFromInt(40)))
	assert.True(t, series[0].Balance.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, "mar 2026", series[1].Label)
	assert.True(t, series[1].Balance.Equal(decimal.NewFromInt(200)))
}

func TestExpenseByCategory(t *testing.T) {
	mk := func(amount int64, category string) domain.Transaction {
		txn := expense(amount, "2026-08-01", true)
		txn.Category = category
		return txn
	}
	txns := []domain.Transaction{
		mk(50, "Aluguel"),
		mk(20, ""), // falls into the Outros bucket
		mk(25, "Aluguel"),
		revenue(500, "2026-08-01", true), // ignored
		mk(5, "Outros"),
	}

	categories := analytics.ExpenseByCategory(txns)

	assert.Len(t, categories, 2)
	assert.Equal(t, "Aluguel", categories[0].Category)
	assert.True(t, categories[0].Amount.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, "Outros", categories[1].Category)
	assert.True(t, categories[1].Amount.Equal(decimal.NewFromInt(25)))
}
