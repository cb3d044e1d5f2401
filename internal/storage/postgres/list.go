package postgres

import (
	"context"
	"fmt"
	"time"

	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/storage"

	"github.com/google/uuid"
)

func (s *Store) CreateList(ctx context.Context, l *models.List) (*models.List, error) {
	icon := l.Icon
	if icon == "" {
		icon = "utensils"
	}
	color := l.Color
	if color == "" {
		color = "primary"
	}

	query := `
		INSERT INTO lists (id, user_id, name, description, icon, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, name, description, icon, color, created_at
	`
	var list models.List
	err := s.db.QueryRow(ctx, query,
		uuid.New().String(), l.UserID, l.Name, l.Description, icon, color, time.Now().UTC(),
	).Scan(&list.ID, &list.UserID, &list.Name, &list.Description, &list.Icon, &list.Color, &list.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", translateErr(err))
	}
	return &list, nil
}

func (s *Store) GetList(ctx context.Context, id string) (*models.List, error) {
	query := `
		SELECT id, user_id, name, description, icon, color, created_at
		FROM lists
		WHERE id = $1
	`
	var list models.List
	err := s.db.QueryRow(ctx, query, id).Scan(
		&list.ID, &list.UserID, &list.Name, &list.Description, &list.Icon, &list.Color, &list.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", translateErr(err))
	}
	return &list, nil
}

func (s *Store) ListLists(ctx context.Context, userID string) ([]*models.List, error) {
	query := `
		SELECT id, user_id, name, description, icon, color, created_at
		FROM lists
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	defer rows.Close()

	result := make([]*models.List, 0)
	for rows.Next() {
		var list models.List
		if err := rows.Scan(&list.ID, &list.UserID, &list.Name, &list.Description, &list.Icon, &list.Color, &list.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		result = append(result, &list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lists: %w", err)
	}
	return result, nil
}

func (s *Store) UpdateList(ctx context.Context, id string, upd *models.ListUpdate) (*models.List, error) {
	query := `
		UPDATE lists SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			icon = COALESCE($4, icon),
			color = COALESCE($5, color)
		WHERE id = $1
		RETURNING id, user_id, name, description, icon, color, created_at
	`
	var list models.List
	err := s.db.QueryRow(ctx, query, id, upd.Name, upd.Description, upd.Icon, upd.Color).Scan(
		&list.ID, &list.UserID, &list.Name, &list.Description, &list.Icon, &list.Color, &list.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update list: %w", translateErr(err))
	}
	return &list, nil
}

func (s *Store) DeleteList(ctx context.Context, id string) error {
	result, err := s.db.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) AddRestaurantToList(ctx context.Context, listID, restaurantID string) (*models.ListRestaurant, error) {
	// The unique index rejects duplicate pairs and the foreign keys reject
	// unknown ids; translateErr maps both onto the storage sentinels.
	query := `
		INSERT INTO list_restaurants (id, list_id, restaurant_id, added_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, list_id, restaurant_id, added_at
	`
	var lr models.ListRestaurant
	err := s.db.QueryRow(ctx, query,
		uuid.New().String(), listID, restaurantID, time.Now().UTC(),
	).Scan(&lr.ID, &lr.ListID, &lr.RestaurantID, &lr.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add restaurant to list: %w", translateErr(err))
	}
	return &lr, nil
}

func (s *Store) GetListRestaurants(ctx context.Context, listID string) ([]*models.Restaurant, error) {
	query := `
		SELECT r.id, r.user_id, r.name, r.cuisine, r.price_range, r.address,
			r.latitude, r.longitude, r.rating, r.notes, r.is_visited,
			r.check_in_count, r.place_id, r.photo_url, r.phone_number,
			r.website, r.created_at
		FROM restaurants r
		JOIN list_restaurants lr ON lr.restaurant_id = r.id
		WHERE lr.list_id = $1
		ORDER BY lr.added_at
	`
	rows, err := s.db.Query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get list restaurants: %w", err)
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
		return nil, fmt.Errorf("error iterating list restaurants: %w", err)
	}
	return result, nil
}

func (s *Store) RemoveRestaurantFromList(ctx context.Context, listID, restaurantID string) error {
	query := `DELETE FROM list_restaurants WHERE list_id = $1 AND restaurant_id = $2`
	result, err := s.db.Exec(ctx, query, listID, restaurantID)
	if err != nil {
		return fmt.Errorf("failed to remove restaurant from list: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
