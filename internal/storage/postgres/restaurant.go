package postgres

import (
	"context"
	"fmt"
	"time"

	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const restaurantColumns = `
	id, user_id, name, cuisine, price_range, address, latitude, longitude,
	rating, notes, is_visited, check_in_count, place_id, photo_url,
	phone_number, website, created_at`

func scanRestaurant(row pgx.Row) (*models.Restaurant, error) {
	var r models.Restaurant
	err := row.Scan(
		&r.ID, &r.UserID, &r.Name, &r.Cuisine, &r.PriceRange, &r.Address,
		&r.Latitude, &r.Longitude, &r.Rating, &r.Notes, &r.IsVisited,
		&r.CheckInCount, &r.PlaceID, &r.PhotoURL, &r.PhoneNumber, &r.Website,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) CreateRestaurant(ctx context.Context, r *models.Restaurant) (*models.Restaurant, error) {
	query := `
		INSERT INTO restaurants (
			id, user_id, name, cuisine, price_range, address, latitude, longitude,
			rating, notes, is_visited, check_in_count, place_id, photo_url,
			phone_number, website, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + restaurantColumns
	row := s.db.QueryRow(ctx, query,
		uuid.New().String(), r.UserID, r.Name, r.Cuisine, r.PriceRange,
		r.Address, r.Latitude, r.Longitude, r.Rating, r.Notes, r.IsVisited,
		r.CheckInCount, r.PlaceID, r.PhotoURL, r.PhoneNumber, r.Website,
		time.Now().UTC(),
	)
	created, err := scanRestaurant(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", translateErr(err))
	}
	return created, nil
}

func (s *Store) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`
	r, err := scanRestaurant(s.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", translateErr(err))
	}
	return r, nil
}

func (s *Store) ListRestaurants(ctx context.Context, userID string) ([]*models.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Restaurant, 0)
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}
	return result, nil
}

func (s *Store) UpdateRestaurant(ctx context.Context, id string, upd *models.RestaurantUpdate) (*models.Restaurant, error) {
	// Nil parameters fall back to the stored value, giving the same
	// shallow-merge semantics as the memory store.
	query := `
		UPDATE restaurants SET
			name = COALESCE($2, name),
			cuisine = COALESCE($3, cuisine),
			price_range = COALESCE($4, price_range),
			address = COALESCE($5, address),
			latitude = COALESCE($6, latitude),
			longitude = COALESCE($7, longitude),
			rating = COALESCE($8, rating),
			notes = COALESCE($9, notes),
			is_visited = COALESCE($10, is_visited),
			place_id = COALESCE($11, place_id),
			photo_url = COALESCE($12, photo_url),
			phone_number = COALESCE($13, phone_number),
			website = COALESCE($14, website)
		WHERE id = $1
		RETURNING ` + restaurantColumns
	row := s.db.QueryRow(ctx, query, id,
		upd.Name, upd.Cuisine, upd.PriceRange, upd.Address, upd.Latitude,
		upd.Longitude, upd.Rating, upd.Notes, upd.IsVisited, upd.PlaceID,
		upd.PhotoURL, upd.PhoneNumber, upd.Website,
	)
	r, err := scanRestaurant(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update restaurant: %w", translateErr(err))
	}
	return r, nil
}

func (s *Store) DeleteRestaurant(ctx context.Context, id string) error {
	// Memberships and check-ins go with it via ON DELETE CASCADE.
	result, err := s.db.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
