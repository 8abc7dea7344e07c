package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/nktomer45/planboard/internal/config"
	"github.com/nktomer45/planboard/internal/planning"
	"github.com/nktomer45/planboard/internal/source"
	"github.com/nktomer45/planboard/pkg/logger"
)

// Admin server for inspecting the configured planning source directly and
// flushing its cache.
func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	logger.Setup(cfg.Server.Mode, cfg.Server.LogLevel)

	ctx := context.Background()

	opened, err := source.Open(ctx, cfg, "")
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open planning source")
	}
	defer opened.Close()

	// Create router
	r := mux.NewRouter()

	calendar := planning.BuildCalendarN(cfg.Planning.Months, cfg.Planning.WeeksPerMonth)
	sourceHandler := source.NewHandler(opened.Source, calendar)
	sourceHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.AdminPort)
	logger.Log.Info().Str("addr", addr).Str("source", opened.Source.Name()).Msg("Admin server starting")
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Log.Fatal().Err(err).Msg("Admin server stopped")
	}
}
