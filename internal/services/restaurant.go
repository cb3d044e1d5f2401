package services

import (
	"context"

	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/storage"
)

// RestaurantService handles restaurant business logic. Every operation is
// scoped to the calling user; a restaurant owned by someone else behaves as
// if it does not exist.
type RestaurantService struct {
	store storage.RestaurantStore
}

// NewRestaurantService creates a new restaurant service.
func NewRestaurantService(store storage.RestaurantStore) *RestaurantService {
	return &RestaurantService{store: store}
}

// List returns all restaurants owned by the user.
func (s *RestaurantService) List(ctx context.Context, userID string) ([]*models.Restaurant, error) {
	return s.store.ListRestaurants(ctx, userID)
}

// Get returns one restaurant owned by the user.
func (s *RestaurantService) Get(ctx context.Context, userID, id string) (*models.Restaurant, error) {
	r, err := s.store.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return r, nil
}

// Create stores a new restaurant for the user. Validation happened at the
// handler; the service only stamps ownership.
func (s *RestaurantService) Create(ctx context.Context, userID string, r *models.Restaurant) (*models.Restaurant, error) {
	r.UserID = userID
	return s.store.CreateRestaurant(ctx, r)
}

// Update applies a partial update to a restaurant owned by the user.
func (s *RestaurantService) Update(ctx context.Context, userID, id string, upd *models.RestaurantUpdate) (*models.Restaurant, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.store.UpdateRestaurant(ctx, id, upd)
}

// Delete removes a restaurant owned by the user, cascading to its list
// memberships and check-ins.
func (s *RestaurantService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.store.DeleteRestaurant(ctx, id)
}
