package source

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/nktomer45/planboard/internal/domain"
)

// Handler exposes raw source reads for operators, bypassing the planning
// snapshot.
type Handler struct {
	source   *Cached
	calendar []domain.CalendarWeek
}

func NewHandler(source *Cached, calendar []domain.CalendarWeek) *Handler {
	return &Handler{
		source:   source,
		calendar: calendar,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/source/stores", h.ListStores).Methods("GET")
	router.HandleFunc("/api/source/skus", h.ListSKUs).Methods("GET")
	router.HandleFunc("/api/source/units", h.ListUnits).Methods("GET")
	router.HandleFunc("/api/source/cache/invalidate", h.InvalidateCache).Methods("POST")
}

func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.source.Stores(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, stores)
}

func (h *Handler) ListSKUs(w http.ResponseWriter, r *http.Request) {
	skus, err := h.source.SKUs(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, skus)
}

func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	entries, err := h.source.UnitEntries(r.Context(), h.calendar)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	storeID := r.URL.Query().Get("storeId")
	if storeID != "" {
		filtered := entries[:0:0]
		for _, e := range entries {
			if e.StoreID == storeID {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	if err := h.source.Invalidate(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Info().Str("source", h.source.Name()).Msg("source cache invalidated")
	writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
