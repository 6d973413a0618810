package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ordenate/backend/internal/core/analytics"
	"github.com/ordenate/backend/internal/core/domain"
	"github.com/ordenate/backend/internal/core/filtering"
	portssvc "github.com/ordenate/backend/internal/core/ports/services"
	"github.com/ordenate/backend/internal/dto"
)

const upcomingEventsOnDashboard = 5

// analyticsHandler serves the dashboard and financial summary views.
type analyticsHandler struct {
	store portssvc.StoreSvcFacade
}

func newAnalyticsHandler(store portssvc.StoreSvcFacade) *analyticsHandler {
	return &analyticsHandler{store: store}
}

// registerAnalyticsRoutes registers the aggregate read routes.
func registerAnalyticsRoutes(rg *gin.RouterGroup, store portssvc.StoreSvcFacade) {
	h := newAnalyticsHandler(store)

	rg.GET("/dashboard", h.dashboard)
	rg.GET("/financial/summary", h.financialSummary)
}

// dashboard returns counters and chart series over the cross-filtered
// client set. ?status= and ?genero= narrow the charts the way clicking a
// chart segment does; both charts always describe the same filtered set.
func (h *analyticsHandler) dashboard(c *gin.Context) {
	now := time.Now()
	snap := h.store.Snapshot()

	filter := filtering.CrossFilter{
		Status: c.Query("status"),
		Gender: c.Query("genero"),
	}
	clients := filter.Apply(snap.Clients)

	out := dto.DashboardResponse{
		TotalClients:  len(clients),
		ActiveClients: analytics.CountStatus(clients, domain.StatusActive),
		UnderReview:   analytics.CountStatus(clients, domain.StatusUnderReview),
		Inactive:      analytics.CountStatus(clients, domain.StatusInactive),
		NewThisMonth:  analytics.NewThisMonth(clients, now),
		StatusChart:   analytics.StatusHistogram(clients).ChartSeries(),
		GenderChart:   analytics.GenderHistogram(clients).ChartSeries(),
	}

	upcoming := analytics.UpcomingEvents(snap.Events, now, upcomingEventsOnDashboard)
	out.UpcomingEvents = make([]dto.EventResponse, 0, len(upcoming))
	for i := range upcoming {
		out.UpcomingEvents = append(out.UpcomingEvents, dto.ToEventResponse(&upcoming[i]))
	}

	c.JSON(http.StatusOK, out)
}

// financialSummary returns totals, the monthly cash-flow series and the
// expense category breakdown. ?periodo= selects the window (hoje, semana,
// mes, ano, todos) and ?tipo= narrows the transaction list.
func (h *analyticsHandler) financialSummary(c *gin.Context) {
	now := time.Now()
	snap := h.store.Snapshot()

	period := filtering.ParsePeriod(c.Query("periodo"))
	kind := analytics.KindFilter(c.DefaultQuery("tipo", string(analytics.KindAll)))

	totals := analytics.FinancialTotals(snap.Transactions, period, kind, now)

	// Both charts describe the same narrowed set the list shows, not the
	// full history.
	out := dto.FinancialSummaryResponse{
		Period:      string(period),
		Kind:        string(kind),
		Totals:      totals,
		MonthlyFlow: analytics.MonthlyCashFlow(totals.Filtered),
		Categories:  analytics.ExpenseByCategory(totals.Filtered),
	}
	out.Transactions = make([]dto.TransactionResponse, 0, len(totals.Filtered))
	for i := range totals.Filtered {
		out.Transactions = append(out.Transactions, dto.ToTransactionResponse(&totals.Filtered[i]))
	}

	c.JSON(http.StatusOK, out)
}
