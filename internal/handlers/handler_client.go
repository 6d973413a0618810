package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ordenate/backend/internal/core/analytics"
	"github.com/ordenate/backend/internal/core/filtering"
	portsrepo "github.com/ordenate/backend/internal/core/ports/repositories"
	portssvc "github.com/ordenate/backend/internal/core/ports/services"
	"github.com/ordenate/backend/internal/dto"
	"github.com/ordenate/backend/internal/middleware"
)

// clientHandler handles HTTP requests related to clients.
type clientHandler struct {
	store    portssvc.StoreSvcFacade
	report   portssvc.ReportSvcFacade
	renderer portsrepo.DocumentRenderer
}

func newClientHandler(store portssvc.StoreSvcFacade, report portssvc.ReportSvcFacade, renderer portsrepo.DocumentRenderer) *clientHandler {
	return &clientHandler{store: store, report: report, renderer: renderer}
}

// registerClientRoutes registers routes related to clients.
func registerClientRoutes(rg *gin.RouterGroup, store portssvc.StoreSvcFacade, report portssvc.ReportSvcFacade, renderer portsrepo.DocumentRenderer) {
	h := newClientHandler(store, report, renderer)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)
		clients.GET("/:id/persona", h.getPersona)
		clients.GET("/:id/rollup", h.getRollup)
	}
	rg.GET("/export/clients.csv", h.exportClientsCSV)
}

func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	client, err := h.store.CreateClient(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// listClients runs the search pipeline over the current snapshot. Query
// parameters: busca (free text), status, genero ("Todos" bypasses),
// ordenarPor (nome|data|status) and direcao (asc|desc).
func (h *clientHandler) listClients(c *gin.Context) {
	criteria := filtering.ClientCriteria{
		Term:   c.Query("busca"),
		Status: c.DefaultQuery("status", filtering.SentinelAll),
		Gender: c.DefaultQuery("genero", filtering.SentinelAll),
		Sort:   filtering.DefaultSort,
	}
	if key := c.Query("ordenarPor"); key != "" {
		criteria.Sort.Key = filtering.SortKey(key)
	}
	if direction := c.Query("direcao"); direction != "" {
		criteria.Sort.Direction = filtering.SortDirection(direction)
	}

	snap := h.store.Snapshot()
	matched := filtering.SearchClients(snap.Clients, criteria)

	out := dto.ListClientsResponse{Clients: make([]dto.ClientResponse, 0, len(matched)), Total: len(matched)}
	for i := range matched {
		out.Clients = append(out.Clients, dto.ToClientResponse(&matched[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *clientHandler) getClient(c *gin.Context) {
	client, err := h.store.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

func (h *clientHandler) updateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	client, err := h.store.UpdateClient(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

func (h *clientHandler) deleteClient(c *gin.Context) {
	if err := h.store.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete client")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *clientHandler) getPersona(c *gin.Context) {
	persona, err := h.report.Persona(c.Request.Context(), h.store.Snapshot(), c.Param("id"), time.Now())
	if err != nil {
		respondError(c, err, "Failed to build persona")
		return
	}
	c.JSON(http.StatusOK, persona)
}

func (h *clientHandler) getRollup(c *gin.Context) {
	// The rollup tolerates dangling ids, but the route resolves the client
	// first so a bad id is a 404 rather than an all-zero rollup.
	if _, err := h.store.GetClient(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to get client")
		return
	}
	snap := h.store.Snapshot()
	rollup := analytics.RollupForClient(c.Param("id"), snap.Notes, snap.Events, snap.Transactions)
	c.JSON(http.StatusOK, rollup)
}

func (h *clientHandler) exportClientsCSV(c *gin.Context) {
	snap := h.store.Snapshot()

	headers := []string{"Nome", "Email", "Telefone", "Celular", "Status", "Grupo", "Gênero", "Data de Criação"}
	rows := make([][]string, 0, len(snap.Clients))
	for _, client := range snap.Clients {
		created := ""
		if !client.CreatedAt.IsZero() {
			created = client.CreatedAt.Format("02/01/2006")
		}
		rows = append(rows, []string{
			client.Name, client.Email, client.Phone, client.Mobile,
			client.Status, client.Group, client.Gender, created,
		})
	}

	payload, err := h.renderer.RenderTable(c.Request.Context(), headers, rows)
	if err != nil {
		respondError(c, err, "Failed to export clients")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="clientes.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}
