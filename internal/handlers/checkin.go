package handlers

import (
	"encoding/json"
	"net/http"

	"taste-trail-backend/internal/middleware"
	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// CheckInHandler handles check-in HTTP requests.
type CheckInHandler struct {
	checkInService *services.CheckInService
	wsHub          *services.WSHub
}

// NewCheckInHandler creates a new check-in handler.
func NewCheckInHandler(checkInService *services.CheckInService, wsHub *services.WSHub) *CheckInHandler {
	return &CheckInHandler{
		checkInService: checkInService,
		wsHub:          wsHub,
	}
}

// CreateCheckInRequest is the body of POST /api/v1/checkins.
type CreateCheckInRequest struct {
	RestaurantID string  `json:"restaurant_id"`
	Rating       *int    `json:"rating"`
	Notes        *string `json:"notes"`
}

// Create handles POST /api/v1/checkins.
func (h *CheckInHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CreateCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.RestaurantID == "" {
		respondError(w, "restaurant_id is required", http.StatusBadRequest)
		return
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		respondError(w, "rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	checkIn, err := h.checkInService.Create(ctx, userID, &models.CheckIn{
		RestaurantID: req.RestaurantID,
		Rating:       req.Rating,
		Notes:        req.Notes,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("restaurant_id", req.RestaurantID).Msg("Failed to create check-in")
		respondStoreError(w, err, "Failed to create check-in")
		return
	}

	log.Info().Str("user_id", userID).Str("restaurant_id", req.RestaurantID).Str("check_in_id", checkIn.ID).Msg("Check-in created")
	h.wsHub.NotifyCheckIn(userID, checkIn)
	respondJSON(w, http.StatusCreated, checkIn)
}

// ListByRestaurant handles GET /api/v1/restaurants/{id}/checkins.
func (h *CheckInHandler) ListByRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	restaurantID := chi.URLParam(r, "id")

	checkIns, err := h.checkInService.ListByRestaurant(ctx, userID, restaurantID)
	if err != nil {
		respondStoreError(w, err, "Failed to list check-ins")
		return
	}
	respondJSON(w, http.StatusOK, checkIns)
}
