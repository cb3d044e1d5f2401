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

var validIcons = map[string]bool{
	"heart": true, "clock": true, "utensils": true, "coffee": true,
}

// ListHandler handles list HTTP requests, including list membership.
type ListHandler struct {
	listService *services.ListService
	wsHub       *services.WSHub
}

// NewListHandler creates a new list handler.
func NewListHandler(listService *services.ListService, wsHub *services.WSHub) *ListHandler {
	return &ListHandler{
		listService: listService,
		wsHub:       wsHub,
	}
}

// CreateListRequest is the body of POST /api/v1/lists.
type CreateListRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Icon        string  `json:"icon"`
	Color       string  `json:"color"`
}

// AddRestaurantRequest is the body of POST /api/v1/lists/{id}/restaurants.
type AddRestaurantRequest struct {
	RestaurantID string `json:"restaurant_id"`
}

// List handles GET /api/v1/lists.
func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	lists, err := h.listService.List(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list lists")
		respondError(w, "Failed to list lists", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, lists)
}

// Get handles GET /api/v1/lists/{id}.
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	id := chi.URLParam(r, "id")

	list, err := h.listService.Get(ctx, userID, id)
	if err != nil {
		respondStoreError(w, err, "Failed to get list")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// Create handles POST /api/v1/lists.
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CreateListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.Icon != "" && !validIcons[req.Icon] {
		respondError(w, "icon must be one of heart, clock, utensils, coffee", http.StatusBadRequest)
		return
	}

	list, err := h.listService.Create(ctx, userID, &models.List{
		Name:        name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create list")
		respondError(w, "Failed to create list", http.StatusInternalServerError)
		return
	}

	log.Info().Str("user_id", userID).Str("list_id", list.ID).Str("name", list.Name).Msg("List created")
	h.wsHub.NotifyList(userID, "created", list)
	respondJSON(w, http.StatusCreated, list)
}

// Update handles PATCH /api/v1/lists/{id}.
func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	id := chi.URLParam(r, "id")

	var upd models.ListUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			respondError(w, "name cannot be empty", http.StatusBadRequest)
			return
		}
		upd.Name = &name
	}
	if upd.Icon != nil && !validIcons[*upd.Icon] {
		respondError(w, "icon must be one of heart, clock, utensils, coffee", http.StatusBadRequest)
		return
	}

	list, err := h.listService.Update(ctx, userID, id, &upd)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("list_id", id).Msg("Failed to update list")
		respondStoreError(w, err, "Failed to update list")
		return
	}

	h.wsHub.NotifyList(userID, "updated", list)
	respondJSON(w, http.StatusOK, list)
}

// Delete handles DELETE /api/v1/lists/{id}.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	id := chi.URLParam(r, "id")

	if err := h.listService.Delete(ctx, userID, id); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("list_id", id).Msg("Failed to delete list")
		respondStoreError(w, err, "Failed to delete list")
		return
	}

	log.Info().Str("user_id", userID).Str("list_id", id).Msg("List deleted")
	h.wsHub.NotifyListDeleted(userID, id)
	w.WriteHeader(http.StatusNoContent)
}

// GetRestaurants handles GET /api/v1/lists/{id}/restaurants.
func (h *ListHandler) GetRestaurants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	id := chi.URLParam(r, "id")

	restaurants, err := h.listService.GetRestaurants(ctx, userID, id)
	if err != nil {
		respondStoreError(w, err, "Failed to get list restaurants")
		return
	}
	respondJSON(w, http.StatusOK, restaurants)
}

// AddRestaurant handles POST /api/v1/lists/{id}/restaurants.
func (h *ListHandler) AddRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	listID := chi.URLParam(r, "id")

	var req AddRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.RestaurantID == "" {
		respondError(w, "restaurant_id is required", http.StatusBadRequest)
		return
	}

	membership, err := h.listService.AddRestaurant(ctx, userID, listID, req.RestaurantID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("list_id", listID).Str("restaurant_id", req.RestaurantID).Msg("Failed to add restaurant to list")
		respondStoreError(w, err, "Failed to add restaurant to list")
		return
	}

	h.wsHub.NotifyMembership(userID, "added", listID, req.RestaurantID)
	respondJSON(w, http.StatusCreated, membership)
}

// RemoveRestaurant handles DELETE /api/v1/lists/{listID}/restaurants/{restaurantID}.
func (h *ListHandler) RemoveRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	listID := chi.URLParam(r, "listID")
	restaurantID := chi.URLParam(r, "restaurantID")

	if err := h.listService.RemoveRestaurant(ctx, userID, listID, restaurantID); err != nil {
		respondStoreError(w, err, "Failed to remove restaurant from list")
		return
	}

	h.wsHub.NotifyMembership(userID, "removed", listID, restaurantID)
	w.WriteHeader(http.StatusNoContent)
}
