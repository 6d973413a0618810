package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ordenate/backend/internal/core/domain"
	portssvc "github.com/ordenate/backend/internal/core/ports/services"
	"github.com/ordenate/backend/internal/middleware"
)

// profileHandler handles the practitioner's profile.
type profileHandler struct {
	store portssvc.StoreSvcFacade
}

func newProfileHandler(store portssvc.StoreSvcFacade) *profileHandler {
	return &profileHandler{store: store}
}

// registerProfileRoutes registers the profile routes.
func registerProfileRoutes(rg *gin.RouterGroup, store portssvc.StoreSvcFacade) {
	h := newProfileHandler(store)

	rg.GET("/profile", h.getProfile)
	rg.PUT("/profile", h.saveProfile)
}

func (h *profileHandler) getProfile(c *gin.Context) {
	profile, err := h.store.Profile(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *profileHandler) saveProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var profile domain.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		logger.Warn("Failed to bind JSON for SaveProfile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	if err := h.store.SaveProfile(c.Request.Context(), profile); err != nil {
		respondError(c, err, "Failed to save profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}
