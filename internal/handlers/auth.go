package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"taste-trail-backend/internal/middleware"
	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles sessions and the current-user endpoint.
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// SessionRequest is the body of POST /api/v1/auth/session.
type SessionRequest struct {
	ID              string  `json:"id"`
	Email           *string `json:"email"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// SessionResponse carries the upserted user and a bearer token.
type SessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// CreateSession handles POST /api/v1/auth/session. A known id refreshes the
// profile in place; an empty id creates a new user.
func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		respondError(w, "email is invalid", http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.Login(ctx, &models.User{
		ID:              req.ID,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create session")
		respondError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("Session created")
	respondJSON(w, http.StatusOK, SessionResponse{User: user, Token: token})
}

// Me handles GET /api/v1/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.userService.GetUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get user")
		respondStoreError(w, err, "Failed to get user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
