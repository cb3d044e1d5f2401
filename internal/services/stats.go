package services

import (
	"context"

	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/storage"
)

// StatsService exposes the derived statistics view. Every call re-scans
// current store state; nothing is memoized.
type StatsService struct {
	store storage.StatsStore
}

// NewStatsService creates a new stats service.
func NewStatsService(store storage.StatsStore) *StatsService {
	return &StatsService{store: store}
}

// Get computes the user's statistics.
func (s *StatsService) Get(ctx context.Context, userID string) (*models.Stats, error) {
	return s.store.GetStats(ctx, userID)
}
