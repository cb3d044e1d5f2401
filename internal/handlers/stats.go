package handlers

import (
	"net/http"

	"taste-trail-backend/internal/middleware"
	"taste-trail-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// StatsHandler handles the statistics endpoint.
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Get handles GET /api/v1/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	stats, err := h.statsService.Get(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to compute stats")
		respondError(w, "Failed to compute stats", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
