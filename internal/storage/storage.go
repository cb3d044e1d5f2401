package storage

import (
	"context"
	"errors"

	"taste-trail-backend/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist. Handlers
// translate it to a 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert would violate a uniqueness rule,
// such as adding a restaurant to a list it is already on.
var ErrDuplicate = errors.New("already exists")

// UserStore persists user records.
type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	// UpsertUser creates the user when the id is unknown (generating one if
	// empty) and merge-updates otherwise, preserving the original CreatedAt
	// and refreshing UpdatedAt.
	UpsertUser(ctx context.Context, user *models.User) (*models.User, error)
}

// RestaurantStore persists restaurant records.
type RestaurantStore interface {
	CreateRestaurant(ctx context.Context, r *models.Restaurant) (*models.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
	ListRestaurants(ctx context.Context, userID string) ([]*models.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id string, upd *models.RestaurantUpdate) (*models.Restaurant, error)
	// DeleteRestaurant removes the restaurant together with its list
	// memberships and check-ins. Returns ErrNotFound if the id is unknown.
	DeleteRestaurant(ctx context.Context, id string) error
}

// ListStore persists lists and list memberships.
type ListStore interface {
	CreateList(ctx context.Context, l *models.List) (*models.List, error)
	GetList(ctx context.Context, id string) (*models.List, error)
	ListLists(ctx context.Context, userID string) ([]*models.List, error)
	UpdateList(ctx context.Context, id string, upd *models.ListUpdate) (*models.List, error)
	// DeleteList removes the list together with its membership rows.
	DeleteList(ctx context.Context, id string) error

	// AddRestaurantToList creates a membership row. Returns ErrNotFound when
	// either side is missing and ErrDuplicate when the pair already exists.
	AddRestaurantToList(ctx context.Context, listID, restaurantID string) (*models.ListRestaurant, error)
	// GetListRestaurants resolves a list's membership rows to restaurants.
	GetListRestaurants(ctx context.Context, listID string) ([]*models.Restaurant, error)
	RemoveRestaurantFromList(ctx context.Context, listID, restaurantID string) error
}

// CheckInStore persists check-ins.
type CheckInStore interface {
	// CreateCheckIn inserts the check-in and, in the same atomic step,
	// increments the restaurant's check-in count and marks it visited.
	// Returns ErrNotFound if the restaurant does not exist.
	CreateCheckIn(ctx context.Context, c *models.CheckIn) (*models.CheckIn, error)
	ListCheckIns(ctx context.Context, restaurantID string) ([]*models.CheckIn, error)
}

// StatsStore computes derived statistics for one user by scanning current
// state. Nothing is cached.
type StatsStore interface {
	GetStats(ctx context.Context, userID string) (*models.Stats, error)
}

// Store is the full persistence surface the services are wired against.
type Store interface {
	UserStore
	RestaurantStore
	ListStore
	CheckInStore
	StatsStore
}
