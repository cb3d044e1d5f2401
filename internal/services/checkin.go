package services

import (
	"context"

	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/storage"
)

// CheckInService handles visit records. Creating a check-in also bumps the
// restaurant's check-in count and marks it visited; the store performs both
// steps atomically.
type CheckInService struct {
	checkIns    storage.CheckInStore
	restaurants storage.RestaurantStore
}

// NewCheckInService creates a new check-in service.
func NewCheckInService(checkIns storage.CheckInStore, restaurants storage.RestaurantStore) *CheckInService {
	return &CheckInService{
		checkIns:    checkIns,
		restaurants: restaurants,
	}
}

// Create records a visit to one of the user's restaurants.
func (s *CheckInService) Create(ctx context.Context, userID string, c *models.CheckIn) (*models.CheckIn, error) {
	r, err := s.restaurants.GetRestaurant(ctx, c.RestaurantID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, storage.ErrNotFound
	}

	c.UserID = userID
	return s.checkIns.CreateCheckIn(ctx, c)
}

// ListByRestaurant returns all check-ins for one of the user's restaurants.
func (s *CheckInService) ListByRestaurant(ctx context.Context, userID, restaurantID string) ([]*models.CheckIn, error) {
	r, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return s.checkIns.ListCheckIns(ctx, restaurantID)
}
