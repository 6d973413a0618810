package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ordenate/backend/internal/adapters/render/textdoc"
	"github.com/ordenate/backend/internal/adapters/storage/jsonfile"
	"github.com/ordenate/backend/internal/core/services"
	"github.com/ordenate/backend/internal/handlers"
	"github.com/ordenate/backend/internal/middleware"
	"github.com/ordenate/backend/internal/platform/config"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	gateway, err := jsonfile.NewGateway(cfg.DataDir,
		jsonfile.WithBackupKeep(cfg.BackupKeep),
		jsonfile.WithLogger(logger),
	)
	if err != nil {
		logger.Error("Failed to initialize data directory", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Data directory ready", slog.String("dir", cfg.DataDir))

	svcContainer := services.NewServiceContainer(gateway)
	if err := svcContainer.Store.Load(context.Background()); err != nil {
		logger.Error("Failed to load collections", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.DemoSeed {
		if err := services.SeedDemoData(context.Background(), svcContainer.Store); err != nil {
			logger.Error("Failed to seed demo data", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svcContainer, gateway, textdoc.NewRenderer())

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
