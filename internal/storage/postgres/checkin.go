package postgres

import (
	"context"
	"fmt"
	"time"

	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/storage"

	"github.com/google/uuid"
)

func (s *Store) CreateCheckIn(ctx context.Context, c *models.CheckIn) (*models.CheckIn, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Bump the denormalized counter first; zero rows means the restaurant
	// is gone and the check-in is rejected.
	result, err := tx.Exec(ctx, `
		UPDATE restaurants
		SET check_in_count = check_in_count + 1, is_visited = TRUE
		WHERE id = $1
	`, c.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}

	query := `
		INSERT INTO check_ins (id, user_id, restaurant_id, rating, notes, visit_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, restaurant_id, rating, notes, visit_date
	`
	var checkIn models.CheckIn
	err = tx.QueryRow(ctx, query,
		uuid.New().String(), c.UserID, c.RestaurantID, c.Rating, c.Notes, time.Now().UTC(),
	).Scan(&checkIn.ID, &checkIn.UserID, &checkIn.RestaurantID, &checkIn.Rating, &checkIn.Notes, &checkIn.VisitDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create check-in: %w", translateErr(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit check-in: %w", err)
	}
	return &checkIn, nil
}

func (s *Store) ListCheckIns(ctx context.Context, restaurantID string) ([]*models.CheckIn, error) {
	query := `
		SELECT id, user_id, restaurant_id, rating, notes, visit_date
		FROM check_ins
		WHERE restaurant_id = $1
		ORDER BY visit_date DESC
	`
	rows, err := s.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	defer rows.Close()

	result := make([]*models.CheckIn, 0)
	for rows.Next() {
		var checkIn models.CheckIn
		if err := rows.Scan(&checkIn.ID, &checkIn.UserID, &checkIn.RestaurantID, &checkIn.Rating, &checkIn.Notes, &checkIn.VisitDate); err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		result = append(result, &checkIn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating check-ins: %w", err)
	}
	return result, nil
}
