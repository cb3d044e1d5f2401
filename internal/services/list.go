package services

import (
	"context"

	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/storage"
)

// ListService handles list business logic, including the membership
// relation between a user's lists and restaurants.
type ListService struct {
	lists       storage.ListStore
	restaurants storage.RestaurantStore
}

// NewListService creates a new list service.
func NewListService(lists storage.ListStore, restaurants storage.RestaurantStore) *ListService {
	return &ListService{
		lists:       lists,
		restaurants: restaurants,
	}
}

// List returns all lists owned by the user.
func (s *ListService) List(ctx context.Context, userID string) ([]*models.List, error) {
	return s.lists.ListLists(ctx, userID)
}

// Get returns one list owned by the user.
func (s *ListService) Get(ctx context.Context, userID, id string) (*models.List, error) {
	l, err := s.lists.GetList(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return l, nil
}

// Create stores a new list for the user.
func (s *ListService) Create(ctx context.Context, userID string, l *models.List) (*models.List, error) {
	l.UserID = userID
	return s.lists.CreateList(ctx, l)
}

// Update applies a partial update to a list owned by the user.
func (s *ListService) Update(ctx context.Context, userID, id string, upd *models.ListUpdate) (*models.List, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.lists.UpdateList(ctx, id, upd)
}

// Delete removes a list owned by the user together with its membership rows.
func (s *ListService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.lists.DeleteList(ctx, id)
}

// AddRestaurant puts one of the user's restaurants on one of their lists.
// Adding the same restaurant twice returns storage.ErrDuplicate.
func (s *ListService) AddRestaurant(ctx context.Context, userID, listID, restaurantID string) (*models.ListRestaurant, error) {
	if _, err := s.Get(ctx, userID, listID); err != nil {
		return nil, err
	}
	r, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return s.lists.AddRestaurantToList(ctx, listID, restaurantID)
}

// GetRestaurants resolves a list's members to restaurants.
func (s *ListService) GetRestaurants(ctx context.Context, userID, listID string) ([]*models.Restaurant, error) {
	if _, err := s.Get(ctx, userID, listID); err != nil {
		return nil, err
	}
	return s.lists.GetListRestaurants(ctx, listID)
}

// RemoveRestaurant takes a restaurant off a list owned by the user.
func (s *ListService) RemoveRestaurant(ctx context.Context, userID, listID, restaurantID string) error {
	if _, err := s.Get(ctx, userID, listID); err != nil {
		return err
	}
	return s.lists.RemoveRestaurantFromList(ctx, listID, restaurantID)
}
