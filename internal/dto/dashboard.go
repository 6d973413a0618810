package dto

import (
	"github.com/ordenate/backend/internal/core/analytics"
	"github.com/ordenate/backend/internal/core/domain"
)

// DashboardResponse carries the cross-filterable dashboard: counters,
// chart series and the next scheduled events.
type DashboardResponse struct {
	TotalClients   int                 `json:"totalClientes"`
	ActiveClients  int                 `json:"clientesAtivos"`
	UnderReview    int                 `json:"emAvaliacao"`
	Inactive       int                 `json:"clientesInativos"`
	NewThisMonth   int                 `json:"novosNoMes"`
	StatusChart    []domain.ChartPoint `json:"statusChart"`
	GenderChart    []domain.ChartPoint `json:"generoChart"`
	UpcomingEvents []EventResponse     `json:"proximosEventos"`
}

// FinancialSummaryResponse carries the financial view for one period and
// kind filter: totals, the monthly cash-flow series, the expense category
// breakdown and the narrowed transaction list.
type FinancialSummaryResponse struct {
	Period       string                     `json:"periodo"`
	Kind         string                     `json:"tipo"`
	Totals       analytics.Totals           `json:"totais"`
	MonthlyFlow  []analytics.MonthPoint     `json:"fluxoMensal"`
	Categories   []analytics.CategoryAmount `json:"despesasPorCategoria"`
	Transactions []TransactionResponse      `json:"transacoes"`
}
