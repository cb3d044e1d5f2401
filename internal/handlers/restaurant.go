package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"taste-trail-backend/internal/middleware"
	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var validPriceRanges = map[string]bool{
	"$": true, "$$": true, "$$$": true, "$$$$": true,
}

// RestaurantHandler handles restaurant HTTP requests.
type RestaurantHandler struct {
	restaurantService *services.RestaurantService
	wsHub             *services.WSHub
}

// NewRestaurantHandler creates a new restaurant handler.
func NewRestaurantHandler(restaurantService *services.RestaurantService, wsHub *services.WSHub) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
		wsHub:             wsHub,
	}
}

// CreateRestaurantRequest is the body of POST /api/v1/restaurants.
type CreateRestaurantRequest struct {
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine"`
	PriceRange  string   `json:"price_range"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Rating      int      `json:"rating"`
	Notes       *string  `json:"notes"`
	PlaceID     *string  `json:"place_id"`
	PhotoURL    *string  `json:"photo_url"`
	PhoneNumber *string  `json:"phone_number"`
	Website     *string  `json:"website"`
}

// List handles GET /api/v1/restaurants.
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	restaurants, err := h.restaurantService.List(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list restaurants")
		respondError(w, "Failed to list restaurants", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, restaurants)
}

// Get handles GET /api/v1/restaurants/{id}.
func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	id := chi.URLParam(r, "id")

	restaurant, err := h.restaurantService.Get(ctx, userID, id)
	if err != nil {
		respondStoreError(w, err, "Failed to get restaurant")
		return
	}
	respondJSON(w, http.StatusOK, restaurant)
}

// Create handles POST /api/v1/restaurants.
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CreateRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		respondError(w, "name is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Cuisine) == "" {
		respondError(w, "cuisine is required", http.StatusBadRequest)
		return
	}
	if !validPriceRanges[req.PriceRange] {
		respondError(w, "price_range must be one of $, $$, $$$, $$$$", http.StatusBadRequest)
		return
	}
	if req.Rating < 0 || req.Rating > 5 {
		respondError(w, "rating must be between 0 and 5", http.StatusBadRequest)
		return
	}

	restaurant, err := h.restaurantService.Create(ctx, userID, &models.Restaurant{
		Name:        req.Name,
		Cuisine:     req.Cuisine,
		PriceRange:  req.PriceRange,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Rating:      req.Rating,
		Notes:       req.Notes,
		PlaceID:     req.PlaceID,
		PhotoURL:    req.PhotoURL,
		PhoneNumber: req.PhoneNumber,
		Website:     req.Website,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create restaurant")
		respondError(w, "Failed to create restaurant", http.StatusInternalServerError)
		return
	}

	log.Info().Str("user_id", userID).Str("restaurant_id", restaurant.ID).Str("name", restaurant.Name).Msg("Restaurant created")
	h.wsHub.NotifyRestaurant(userID, "created", restaurant)
	respondJSON(w, http.StatusCreated, restaurant)
}

// Update handles PATCH /api/v1/restaurants/{id}.
func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	id := chi.URLParam(r, "id")

	var upd models.RestaurantUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		respondError(w, "name cannot be empty", http.StatusBadRequest)
		return
	}
	if upd.Cuisine != nil && strings.TrimSpace(*upd.Cuisine) == "" {
		respondError(w, "cuisine cannot be empty", http.StatusBadRequest)
		return
	}
	if upd.PriceRange != nil && !validPriceRanges[*upd.PriceRange] {
		respondError(w, "price_range must be one of $, $$, $$$, $$$$", http.StatusBadRequest)
		return
	}
	if upd.Rating != nil && (*upd.Rating < 0 || *upd.Rating > 5) {
		respondError(w, "rating must be between 0 and 5", http.StatusBadRequest)
		return
	}

	restaurant, err := h.restaurantService.Update(ctx, userID, id, &upd)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("restaurant_id", id).Msg("Failed to update restaurant")
		respondStoreError(w, err, "Failed to update restaurant")
		return
	}

	h.wsHub.NotifyRestaurant(userID, "updated", restaurant)
	respondJSON(w, http.StatusOK, restaurant)
}

// Delete handles DELETE /api/v1/restaurants/{id}.
func (h *RestaurantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	id := chi.URLParam(r, "id")

	if err := h.restaurantService.Delete(ctx, userID, id); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("restaurant_id", id).Msg("Failed to delete restaurant")
		respondStoreError(w, err, "Failed to delete restaurant")
		return
	}

	log.Info().Str("user_id", userID).Str("restaurant_id", id).Msg("Restaurant deleted")
	h.wsHub.NotifyRestaurantDeleted(userID, id)
	w.WriteHeader(http.StatusNoContent)
}
