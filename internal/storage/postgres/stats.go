package postgres

import (
	"context"
	"fmt"
	"math"

	"taste-trail-backend/internal/models"
)

func (s *Store) GetStats(ctx context.Context, userID string) (*models.Stats, error) {
	stats := &models.Stats{TopCuisines: []models.CuisineCount{}}

	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_visited)
		FROM restaurants
		WHERE user_id = $1
	`, userID).Scan(&stats.TotalRestaurants, &stats.VisitedCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count restaurants: %w", err)
	}
	stats.WishlistCount = stats.TotalRestaurants - stats.VisitedCount

	var ratingSum, ratingCount int
	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(ci.rating), 0), COUNT(ci.rating)
		FROM check_ins ci
		JOIN restaurants r ON r.id = ci.restaurant_id
		WHERE r.user_id = $1
	`, userID).Scan(&stats.TotalCheckIns, &ratingSum, &ratingCount)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate check-ins: %w", err)
	}
	if ratingCount > 0 {
		avg := float64(ratingSum) / float64(ratingCount)
		stats.AverageRating = math.Round(avg*10) / 10
	}

	rows, err := s.db.Query(ctx, `
		SELECT cuisine, COUNT(*)
		FROM restaurants
		WHERE user_id = $1
		GROUP BY cuisine
		ORDER BY COUNT(*) DESC, cuisine ASC
		LIMIT 5
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to group cuisines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc models.CuisineCount
		if err := rows.Scan(&cc.Cuisine, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan cuisine count: %w", err)
		}
		stats.TopCuisines = append(stats.TopCuisines, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cuisines: %w", err)
	}

	return stats, nil
}
