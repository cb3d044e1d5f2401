package postgres

import (
	"context"
	"fmt"
	"time"

	"taste-trail-backend/internal/models"

	"github.com/google/uuid"
)

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, first_name, last_name, profile_image_url, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user models.User
	err := s.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&user.ProfileImageURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", translateErr(err))
	}
	return &user, nil
}

func (s *Store) UpsertUser(ctx context.Context, u *models.User) (*models.User, error) {
	id := u.ID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()

	// ON CONFLICT keeps the original created_at and refreshes updated_at.
	query := `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at = EXCLUDED.updated_at
		RETURNING id, email, first_name, last_name, profile_image_url, created_at, updated_at
	`
	var user models.User
	err := s.db.QueryRow(ctx, query,
		id, u.Email, u.FirstName, u.LastName, u.ProfileImageURL, now,
	).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&user.ProfileImageURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", translateErr(err))
	}
	return &user, nil
}
