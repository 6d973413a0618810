package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/ordenate/backend/internal/core/domain"
	"github.com/ordenate/backend/internal/core/filtering"
	"github.com/shopspring/decimal"
)

// KindFilter optionally restricts a financial query to one transaction
// kind. The zero value means both kinds.
type KindFilter string

const (
	KindAll      KindFilter = "todos"
	KindRevenue  KindFilter = KindFilter(domain.Revenue)
	KindExpenses KindFilter = KindFilter(domain.Expense)
)

// Totals are period-bounded settled-only sums plus the all-time settled
// subtotals. Amounts stay unrounded decimals; rounding happens only at
// presentation time.
type Totals struct {
	Revenue    decimal.Decimal `json:"receitas"`
	Expense    decimal.Decimal `json:"despesas"`
	Balance    decimal.Decimal `json:"saldo"`
	AllRevenue decimal.Decimal `json:"receitasTotal"`
	AllExpense decimal.Decimal `json:"despesasTotal"`
	AllBalance decimal.Decimal `json:"saldoTotal"`

	// Filtered is the period+kind narrowed slice backing the list view.
	Filtered []domain.Transaction `json:"-"`
}

// FinancialTotals computes settled-only revenue, expense and balance for
// the given period and kind filter, alongside the settled-only all-time
// totals over the unfiltered set.
func FinancialTotals(txns []domain.Transaction, period filtering.Period, kind KindFilter, now time.Time) Totals {
	filtered := filtering.TransactionsInPeriod(txns, period, now)
	if kind != "" && kind != KindAll {
		narrowed := filtered[:0:0]
		for _, t := range filtered {
			if KindFilter(t.Kind) == kind {
				narrowed = append(narrowed, t)
			}
		}
		filtered = narrowed
	}

	totals := Totals{Filtered: filtered}
	totals.Revenue = sumSettled(filtered, domain.Revenue)
	totals.Expense = sumSettled(filtered, domain.Expense)
	totals.Balance = totals.Revenue.Sub(totals.Expense)
	totals.AllRevenue = sumSettled(txns, domain.Revenue)
	totals.AllExpense = sumSettled(txns, domain.Expense)
	totals.AllBalance = totals.AllRevenue.Sub(totals.AllExpense)
	return totals
}

func sumSettled(txns []domain.Transaction, kind domain.TransactionKind) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		if t.Kind == kind && t.Settled {
			sum = sum.Add(t.Amount)
		}
	}
	return sum
}

// MonthPoint is one calendar-month bucket of the cash-flow series.
type MonthPoint struct {
	Label   string          `json:"name"` // pt-BR short month + year, e.g. "ago 2026"
	Revenue decimal.Decimal `json:"receitas"`
	Expense decimal.Decimal `json:"despesas"`
	Balance decimal.Decimal `json:"saldo"`
}

var shortMonths = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// MonthLabel renders a calendar month the way the charts label it.
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", shortMonths[month-1], year)
}

// MonthlyCashFlow buckets settled transactions by calendar month and year,
// accumulating revenue and expense per bucket with the balance recomputed
// per bucket, and returns the buckets sorted chronologically ascending.
// Transactions with unparseable dates are skipped.
func MonthlyCashFlow(txns []domain.Transaction) []MonthPoint {
	type key struct {
		year  int
		month time.Month
	}
	buckets := make(map[key]*MonthPoint)
	keys := make([]key, 0)
	for _, t := range txns {
		if !t.Settled {
			continue
		}
		day := domain.ParseDay(t.Date)
		if day.IsZero() {
			continue
		}
		k := key{day.Year(), day.Month()}
		point, ok := buckets[k]
		if !ok {
			point = &MonthPoint{
				Label:   MonthLabel(k.year, k.month),
				Revenue: decimal.Zero,
				Expense: decimal.Zero,
			}
			buckets[k] = point
			keys = append(keys, k)
		}
		switch t.Kind {
		case domain.Revenue:
			point.Revenue = point.Revenue.Add(t.Amount)
		case domain.Expense:
			point.Expense = point.Expense.Add(t.Amount)
		}
		point.Balance = point.Revenue.Sub(point.Expense)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})
	series := make([]MonthPoint, 0, len(keys))
	for _, k := range keys {
		series = append(series, *buckets[k])
	}
	return series
}

// CategoryAmount is one bucket of the expense-by-category breakdown.
type CategoryAmount struct {
	Category string          `json:"name"`
	Amount   decimal.Decimal `json:"value"`
}

// ExpenseByCategory sums expense transactions per category, in
// first-encountered order. Expenses without a category fall into the
// "Outros" bucket. Settled status does not matter here; the chart
// describes recorded spending.
func ExpenseByCategory(txns []domain.Transaction) []CategoryAmount {
	index := make(map[string]int)
	out := make([]CategoryAmount, 0)
	for _, t := range txns {
		if t.Kind != domain.Expense {
			continue
		}
		category := t.Category
		if category == "" {
			category = domain.ExpenseCategoryOther
		}
		at, ok := index[category]
		if !ok {
			at = len(out)
			index[category] = at
			out = append(out, CategoryAmount{Category: category, Amount: decimal.Zero})
		}
		out[at].Amount = out[at].Amount.Add(t.Amount)
	}
	return out
}
