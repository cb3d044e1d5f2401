package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"taste-trail-backend/internal/middleware"
	"taste-trail-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PhotoHandler handles restaurant photo uploads.
type PhotoHandler struct {
	photoService *services.PhotoService
	wsHub        *services.WSHub
}

// NewPhotoHandler creates a new photo handler.
func NewPhotoHandler(photoService *services.PhotoService, wsHub *services.WSHub) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		wsHub:        wsHub,
	}
}

// UploadRequest is the body of POST /api/v1/restaurants/{id}/photo-upload.
type UploadRequest struct {
	ContentType string `json:"content_type"`
}

// ConfirmRequest is the body of POST /api/v1/restaurants/{id}/photo-confirm.
type ConfirmRequest struct {
	PhotoURL string `json:"photo_url"`
}

// Upload handles POST /api/v1/restaurants/{id}/photo-upload. It returns a
// pre-signed URL the client PUTs the image to.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	restaurantID := chi.URLParam(r, "id")

	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	response, err := h.photoService.GetUploadURL(ctx, userID, restaurantID, req.ContentType)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("restaurant_id", restaurantID).Msg("Failed to generate pre-signed URL")
		respondStoreError(w, err, "Failed to generate upload URL")
		return
	}

	log.Info().Str("user_id", userID).Str("restaurant_id", restaurantID).Msg("Pre-signed URL generated")
	respondJSON(w, http.StatusOK, response)
}

// Confirm handles POST /api/v1/restaurants/{id}/photo-confirm. The client
// calls it after the PUT succeeded.
func (h *PhotoHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	restaurantID := chi.URLParam(r, "id")

	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PhotoURL == "" {
		respondError(w, "photo_url is required", http.StatusBadRequest)
		return
	}

	restaurant, err := h.photoService.ConfirmUpload(ctx, userID, restaurantID, req.PhotoURL)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPhotoURL) {
			respondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("user_id", userID).Str("restaurant_id", restaurantID).Msg("Failed to confirm photo upload")
		respondStoreError(w, err, "Failed to confirm photo upload")
		return
	}

	h.wsHub.NotifyRestaurant(userID, "updated", restaurant)
	respondJSON(w, http.StatusOK, restaurant)
}
