package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ordenate/backend/internal/core/domain"
	portsrepo "github.com/ordenate/backend/internal/core/ports/repositories"
	portssvc "github.com/ordenate/backend/internal/core/ports/services"
)

// reportHandler assembles and optionally renders reports.
type reportHandler struct {
	store    portssvc.StoreSvcFacade
	report   portssvc.ReportSvcFacade
	renderer portsrepo.DocumentRenderer
}

func newReportHandler(store portssvc.StoreSvcFacade, report portssvc.ReportSvcFacade, renderer portsrepo.DocumentRenderer) *reportHandler {
	return &reportHandler{store: store, report: report, renderer: renderer}
}

// registerReportRoutes registers the report assembly routes.
func registerReportRoutes(rg *gin.RouterGroup, store portssvc.StoreSvcFacade, report portssvc.ReportSvcFacade, renderer portsrepo.DocumentRenderer) {
	h := newReportHandler(store, report, renderer)

	rg.GET("/reports/:kind", h.getReport)
}

// getReport assembles the weekly or monthly report over the current
// snapshot. The default response is the document model as JSON;
// ?formato=texto returns the rendered plain-text document instead.
func (h *reportHandler) getReport(c *gin.Context) {
	kind := domain.ReportKind(c.Param("kind"))

	report, err := h.report.Assemble(c.Request.Context(), kind, h.store.Snapshot(), time.Now())
	if err != nil {
		respondError(c, err, "Failed to assemble report")
		return
	}

	if c.Query("formato") == "texto" {
		payload, err := h.renderer.RenderDocument(c.Request.Context(), *report)
		if err != nil {
			respondError(c, err, "Failed to render report")
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", payload)
		return
	}
	c.JSON(http.StatusOK, report)
}
