// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nktomer45/planboard/internal/api"
	"github.com/nktomer45/planboard/internal/config"
	"github.com/nktomer45/planboard/internal/dimension"
	"github.com/nktomer45/planboard/internal/planning"
	"github.com/nktomer45/planboard/internal/service"
	"github.com/nktomer45/planboard/internal/source"
	"github.com/nktomer45/planboard/internal/storage"
	"github.com/nktomer45/planboard/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.Setup(cfg.Server.Mode, cfg.Server.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opened, err := source.Open(ctx, cfg, "")
	if err != nil {
		logger.Log.Fatal().Err(err).Str("kind", cfg.Source.Kind).Msg("Failed to open planning source")
	}
	defer func() {
		if err := opened.Close(); err != nil {
			logger.Log.Warn().Err(err).Msg("Failed to close planning source")
		}
	}()

	objectStore, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Object storage unavailable, publishing disabled")
		objectStore = storage.Disabled()
	}

	// Dimension members always come from a fixture; the embedded one when no
	// path is configured.
	dims, err := source.NewFixtureSource(cfg.Source.FixturePath)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load dimension fixture")
	}
	registry := dimension.NewRegistry(dims.Dimensions())

	calendar := planning.BuildCalendarN(cfg.Planning.Months, cfg.Planning.WeeksPerMonth)
	planningService := service.NewPlanningService(opened.Source, calendar, objectStore, service.PlanningOptions{
		FillMissingWeeks: cfg.Planning.FillMissingWeeks,
		StoragePrefix:    cfg.Storage.Prefix,
	})

	// A failed initial load leaves an empty grid; clients can retry via refresh.
	if _, err := planningService.Refresh(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Initial planning load failed")
	}

	router := api.NewRouter(&api.Services{
		Planning:   planningService,
		Metrics:    service.NewMetricsService(registry),
		Dimensions: registry,
	}, cfg.Server.AllowedOrigins)

	// Initialize HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-ctx.Done()
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
