package models

import "time"

// User represents an authenticated account. Users are created or refreshed
// on login, never deleted.
type User struct {
	ID              string    `json:"id"`
	Email           *string   `json:"email,omitempty"`
	FirstName       *string   `json:"first_name,omitempty"`
	LastName        *string   `json:"last_name,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Restaurant is a place entry owned by a user. CheckInCount mirrors the
// number of check-in rows for the restaurant and IsVisited flips to true
// on the first check-in.
type Restaurant struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Cuisine      string    `json:"cuisine"`
	PriceRange   string    `json:"price_range"`
	Address      *string   `json:"address,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Rating       int       `json:"rating"`
	Notes        *string   `json:"notes,omitempty"`
	IsVisited    bool      `json:"is_visited"`
	CheckInCount int       `json:"check_in_count"`
	PlaceID      *string   `json:"place_id,omitempty"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	Website      *string   `json:"website,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// List is a named user-defined grouping of restaurants.
type List struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListRestaurant is a membership row linking a list to a restaurant.
// The (ListID, RestaurantID) pair is unique.
type ListRestaurant struct {
	ID           string    `json:"id"`
	ListID       string    `json:"list_id"`
	RestaurantID string    `json:"restaurant_id"`
	AddedAt      time.Time `json:"added_at"`
}

// CheckIn is a visit record. Rating is the per-visit rating and is
// independent of the restaurant-level rating. Check-ins are immutable
// once created.
type CheckIn struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	Rating       *int      `json:"rating,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	VisitDate    time.Time `json:"visit_date"`
}

// RestaurantUpdate carries a partial restaurant update. Nil fields are
// left untouched.
type RestaurantUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Cuisine     *string  `json:"cuisine,omitempty"`
	PriceRange  *string  `json:"price_range,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Rating      *int     `json:"rating,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	IsVisited   *bool    `json:"is_visited,omitempty"`
	PlaceID     *string  `json:"place_id,omitempty"`
	PhotoURL    *string  `json:"photo_url,omitempty"`
	PhoneNumber *string  `json:"phone_number,omitempty"`
	Website     *string  `json:"website,omitempty"`
}

// ListUpdate carries a partial list update. Nil fields are left untouched.
type ListUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// CuisineCount is one entry of the top-cuisines ranking.
type CuisineCount struct {
	Cuisine string `json:"cuisine"`
	Count   int    `json:"count"`
}

// Stats is the derived aggregate over a user's restaurants and check-ins.
// It is recomputed on every request.
type Stats struct {
	TotalRestaurants int            `json:"total_restaurants"`
	VisitedCount     int            `json:"visited_count"`
	WishlistCount    int            `json:"wishlist_count"`
	TotalCheckIns    int            `json:"total_check_ins"`
	AverageRating    float64        `json:"average_rating"`
	TopCuisines      []CuisineCount `json:"top_cuisines"`
}
