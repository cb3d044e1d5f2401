package services

import (
	"context"
	"fmt"
	"time"

	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/storage"

	"github.com/golang-jwt/jwt/v5"
)

const jwtExpDays = 30

// UserService handles sessions: upserting users on login and issuing and
// validating the bearer tokens the middleware checks.
type UserService struct {
	store     storage.UserStore
	jwtSecret string
}

// NewUserService creates a new user service.
func NewUserService(store storage.UserStore, jwtSecret string) *UserService {
	return &UserService{
		store:     store,
		jwtSecret: jwtSecret,
	}
}

// Login upserts the user record and returns it with a fresh token. A known
// id refreshes the profile fields in place; an empty id creates a new user.
func (s *UserService) Login(ctx context.Context, user *models.User) (*models.User, string, error) {
	upserted, err := s.store.UpsertUser(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to upsert user: %w", err)
	}

	token, err := s.GenerateJWT(upserted.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return upserted, token, nil
}

// GetUser returns the user for the given id.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// GenerateJWT generates a signed token for a user.
func (s *UserService) GenerateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateJWT validates a token and returns the user id it carries.
func (s *UserService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", fmt.Errorf("user_id not found in token")
	}
	return userID, nil
}
