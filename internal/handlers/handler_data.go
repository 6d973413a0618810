package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ordenate/backend/internal/core/domain"
	portsrepo "github.com/ordenate/backend/internal/core/ports/repositories"
	"github.com/ordenate/backend/internal/middleware"
)

// dataHandler exposes the raw persistence gateway: the generic key/value
// routes plus the legacy clientes/perfil routes older frontends call.
type dataHandler struct {
	gateway portsrepo.Gateway
}

func newDataHandler(gateway portsrepo.Gateway) *dataHandler {
	return &dataHandler{gateway: gateway}
}

// registerDataRoutes registers the gateway-backed data routes.
func registerDataRoutes(r *gin.Engine, gateway portsrepo.Gateway) {
	h := newDataHandler(gateway)

	api := r.Group("/api")
	{
		api.POST("/save-data", h.saveData)
		api.GET("/load-data/:key", h.loadData)
		api.POST("/data/clientes", h.saveClientes)
		api.GET("/data/clientes", h.loadClientes)
		api.POST("/data/perfil", h.savePerfil)
		api.GET("/data/perfil", h.loadPerfil)
		api.POST("/backup", h.createBackup)
	}
}

type saveDataRequest struct {
	Key  string `json:"key" binding:"required"`
	Data any    `json:"data"`
}

func (h *dataHandler) saveData(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req saveDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format: " + err.Error()})
		return
	}
	if err := h.gateway.Save(c.Request.Context(), domain.CollectionKey(req.Key), req.Data); err != nil {
		logger.Error("Failed to save data", slog.String("key", req.Key), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Dados salvos com sucesso"})
}

func (h *dataHandler) loadData(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	key := c.Param("key")

	var data any
	found, err := h.gateway.Load(c.Request.Context(), domain.CollectionKey(key), &data)
	if err != nil {
		logger.Error("Failed to load data", slog.String("key", key), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load data"})
		return
	}
	if !found {
		// Missing keys hydrate as an empty collection on the caller side
		c.JSON(http.StatusOK, []any{})
		return
	}
	c.JSON(http.StatusOK, data)
}

// saveClientes keeps wire compatibility with the original clientes.json
// file: the body is the whole collection, and every save drops a
// timestamped backup.
func (h *dataHandler) saveClientes(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var clientes any
	if err := c.ShouldBindJSON(&clientes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format: " + err.Error()})
		return
	}
	if err := h.gateway.Save(c.Request.Context(), "clientes", clientes); err != nil {
		logger.Error("Failed to save clientes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save data"})
		return
	}
	if _, err := h.gateway.WriteBackup(c.Request.Context(), "clientes_backup", clientes); err != nil {
		logger.Warn("Failed to write clientes backup", slog.String("error", err.Error()))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Clientes salvos com sucesso"})
}

func (h *dataHandler) loadClientes(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var clientes any
	found, err := h.gateway.Load(c.Request.Context(), "clientes", &clientes)
	if err != nil {
		logger.Error("Failed to load clientes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load data"})
		return
	}
	if !found {
		c.JSON(http.StatusOK, []any{})
		return
	}
	c.JSON(http.StatusOK, clientes)
}

func (h *dataHandler) savePerfil(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var perfil any
	if err := c.ShouldBindJSON(&perfil); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format: " + err.Error()})
		return
	}
	if err := h.gateway.Save(c.Request.Context(), "perfil", perfil); err != nil {
		logger.Error("Failed to save perfil", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Perfil salvo com sucesso"})
}

func (h *dataHandler) loadPerfil(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var perfil any
	found, err := h.gateway.Load(c.Request.Context(), "perfil", &perfil)
	if err != nil {
		logger.Error("Failed to load perfil", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load data"})
		return
	}
	if !found {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, perfil)
}

func (h *dataHandler) createBackup(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var backup any
	if err := c.ShouldBindJSON(&backup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format: " + err.Error()})
		return
	}
	filename, err := h.gateway.WriteBackup(c.Request.Context(), "backup", backup)
	if err != nil {
		logger.Error("Failed to create backup", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create backup"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Backup criado com sucesso", "filename": filename})
}
