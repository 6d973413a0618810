package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portsrepo "github.com/ordenate/backend/internal/core/ports/repositories"
	portssvc "github.com/ordenate/backend/internal/core/ports/services"
	"github.com/ordenate/backend/internal/middleware"
	"github.com/ordenate/backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	gateway portsrepo.Gateway,
	renderer portsrepo.DocumentRenderer,
) {
	registerHomeRoutes(r)
	registerDataRoutes(r, gateway)

	setupAPIV1Routes(r, cfg, services, renderer)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	renderer portsrepo.DocumentRenderer,
) {
	rate := limiter.Rate{Period: time.Second, Limit: int64(cfg.RateLimitRPS)}
	limiterInstance := limiter.New(memory.NewStore(), rate)

	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance))

	registerClientRoutes(v1, services.Store, services.Report, renderer)
	registerNoteRoutes(v1, services.Store)
	registerEventRoutes(v1, services.Store)
	registerTransactionRoutes(v1, services.Store)
	registerAnalyticsRoutes(v1, services.Store)
	registerProfileRoutes(v1, services.Store)
	registerReportRoutes(v1, services.Store, services.Report, renderer)
}
