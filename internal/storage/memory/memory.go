package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/storage"

	"github.com/google/uuid"
)

// Store is a thread-safe in-memory implementation of the storage interfaces.
// It backs the test suite and small single-instance deployments where a
// database is overkill. Compound operations (check-in cascade, cascade
// deletes) run under a single lock hold, so callers observe them atomically.
type Store struct {
	mu              sync.RWMutex
	users           map[string]models.User
	restaurants     map[string]models.Restaurant
	lists           map[string]models.List
	listRestaurants map[string]models.ListRestaurant
	checkIns        map[string]models.CheckIn
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:           make(map[string]models.User),
		restaurants:     make(map[string]models.Restaurant),
		lists:           make(map[string]models.List),
		listRestaurants: make(map[string]models.ListRestaurant),
		checkIns:        make(map[string]models.CheckIn),
	}
}

var _ storage.Store = (*Store)(nil)

// UserStore implementation ----------------------------------------------------

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) UpsertUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	u := *user
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if existing, ok := s.users[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	} else {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	s.users[u.ID] = u
	return cloneUser(u), nil
}

// RestaurantStore implementation ----------------------------------------------

func (s *Store) CreateRestaurant(_ context.Context, r *models.Restaurant) (*models.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *r
	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()

	s.restaurants[rec.ID] = rec
	return cloneRestaurant(rec), nil
}

func (s *Store) GetRestaurant(_ context.Context, id string) (*models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.restaurants[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneRestaurant(r), nil
}

func (s *Store) ListRestaurants(_ context.Context, userID string) ([]*models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Restaurant, 0)
	for _, r := range s.restaurants {
		if r.UserID == userID {
			result = append(result, cloneRestaurant(r))
		}
	}
	return result, nil
}

func (s *Store) UpdateRestaurant(_ context.Context, id string, upd *models.RestaurantUpdate) (*models.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.restaurants[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	if upd.Name != nil {
		r.Name = *upd.Name
	}
	if upd.Cuisine != nil {
		r.Cuisine = *upd.Cuisine
	}
	if upd.PriceRange != nil {
		r.PriceRange = *upd.PriceRange
	}
	if upd.Address != nil {
		r.Address = copyString(upd.Address)
	}
	if upd.Latitude != nil {
		r.Latitude = copyFloat(upd.Latitude)
	}
	if upd.Longitude != nil {
		r.Longitude = copyFloat(upd.Longitude)
	}
	if upd.Rating != nil {
		r.Rating = *upd.Rating
	}
	if upd.Notes != nil {
		r.Notes = copyString(upd.Notes)
	}
	if upd.IsVisited != nil {
		r.IsVisited = *upd.IsVisited
	}
	if upd.PlaceID != nil {
		r.PlaceID = copyString(upd.PlaceID)
	}
	if upd.PhotoURL != nil {
		r.PhotoURL = copyString(upd.PhotoURL)
	}
	if upd.PhoneNumber != nil {
		r.PhoneNumber = copyString(upd.PhoneNumber)
	}
	if upd.Website != nil {
		r.Website = copyString(upd.Website)
	}

	s.restaurants[id] = r
	return cloneRestaurant(r), nil
}

func (s *Store) DeleteRestaurant(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.restaurants[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.restaurants, id)

	// Cascade: drop memberships and check-ins referencing the restaurant.
	for lrID, lr := range s.listRestaurants {
		if lr.RestaurantID == id {
			delete(s.listRestaurants, lrID)
		}
	}
	for ciID, ci := range s.checkIns {
		if ci.RestaurantID == id {
			delete(s.checkIns, ciID)
		}
	}
	return nil
}

// ListStore implementation ----------------------------------------------------

func (s *Store) CreateList(_ context.Context, l *models.List) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *l
	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()
	if rec.Icon == "" {
		rec.Icon = "utensils"
	}
	if rec.Color == "" {
		rec.Color = "primary"
	}

	s.lists[rec.ID] = rec
	return cloneList(rec), nil
}

func (s *Store) GetList(_ context.Context, id string) (*models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lists[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneList(l), nil
}

func (s *Store) ListLists(_ context.Context, userID string) ([]*models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.List, 0)
	for _, l := range s.lists {
		if l.UserID == userID {
			result = append(result, cloneList(l))
		}
	}
	return result, nil
}

func (s *Store) UpdateList(_ context.Context, id string, upd *models.ListUpdate) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lists[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	if upd.Name != nil {
		l.Name = *upd.Name
	}
	if upd.Description != nil {
		l.Description = copyString(upd.Description)
	}
	if upd.Icon != nil {
		l.Icon = *upd.Icon
	}
	if upd.Color != nil {
		l.Color = *upd.Color
	}

	s.lists[id] = l
	return cloneList(l), nil
}

func (s *Store) DeleteList(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lists[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.lists, id)

	for lrID, lr := range s.listRestaurants {
		if lr.ListID == id {
			delete(s.listRestaurants, lrID)
		}
	}
	return nil
}

func (s *Store) AddRestaurantToList(_ context.Context, listID, restaurantID string) (*models.ListRestaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lists[listID]; !ok {
		return nil, storage.ErrNotFound
	}
	if _, ok := s.restaurants[restaurantID]; !ok {
		return nil, storage.ErrNotFound
	}
	for _, lr := range s.listRestaurants {
		if lr.ListID == listID && lr.RestaurantID == restaurantID {
			return nil, storage.ErrDuplicate
		}
	}

	rec := models.ListRestaurant{
		ID:           uuid.New().String(),
		ListID:       listID,
		RestaurantID: restaurantID,
		AddedAt:      time.Now().UTC(),
	}
	s.listRestaurants[rec.ID] = rec

	out := rec
	return &out, nil
}

func (s *Store) GetListRestaurants(_ context.Context, listID string) ([]*models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Restaurant, 0)
	for _, lr := range s.listRestaurants {
		if lr.ListID != listID {
			continue
		}
		// Memberships whose restaurant has gone missing are skipped rather
		// than surfaced as an error.
		if r, ok := s.restaurants[lr.RestaurantID]; ok {
			result = append(result, cloneRestaurant(r))
		}
	}
	return result, nil
}

func (s *Store) RemoveRestaurantFromList(_ context.Context, listID, restaurantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for lrID, lr := range s.listRestaurants {
		if lr.ListID == listID && lr.RestaurantID == restaurantID {
			delete(s.listRestaurants, lrID)
			return nil
		}
	}
	return storage.ErrNotFound
}

// CheckInStore implementation -------------------------------------------------

func (s *Store) CreateCheckIn(_ context.Context, c *models.CheckIn) (*models.CheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.restaurants[c.RestaurantID]
	if !ok {
		return nil, storage.ErrNotFound
	}

	rec := *c
	rec.ID = uuid.New().String()
	rec.VisitDate = time.Now().UTC()
	rec.Rating = copyInt(c.Rating)
	rec.Notes = copyString(c.Notes)
	s.checkIns[rec.ID] = rec

	// Same lock hold, so the count and flag can never drift from the rows.
	r.CheckInCount++
	r.IsVisited = true
	s.restaurants[r.ID] = r

	out := rec
	return &out, nil
}

func (s *Store) ListCheckIns(_ context.Context, restaurantID string) ([]*models.CheckIn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.CheckIn, 0)
	for _, ci := range s.checkIns {
		if ci.RestaurantID == restaurantID {
			c := ci
			c.Rating = copyInt(ci.Rating)
			c.Notes = copyString(ci.Notes)
			result = append(result, &c)
		}
	}
	return result, nil
}

// StatsStore implementation ---------------------------------------------------

func (s *Store) GetStats(_ context.Context, userID string) (*models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.Stats{TopCuisines: []models.CuisineCount{}}
	owned := make(map[string]bool)
	cuisines := make(map[string]int)

	for _, r := range s.restaurants {
		if r.UserID != userID {
			continue
		}
		owned[r.ID] = true
		stats.TotalRestaurants++
		if r.IsVisited {
			stats.VisitedCount++
		} else {
			stats.WishlistCount++
		}
		cuisines[r.Cuisine]++
	}

	ratingSum, ratingCount := 0, 0
	for _, ci := range s.checkIns {
		if !owned[ci.RestaurantID] {
			continue
		}
		stats.TotalCheckIns++
		if ci.Rating != nil {
			ratingSum += *ci.Rating
			ratingCount++
		}
	}
	if ratingCount > 0 {
		avg := float64(ratingSum) / float64(ratingCount)
		stats.AverageRating = math.Round(avg*10) / 10
	}

	for cuisine, count := range cuisines {
		stats.TopCuisines = append(stats.TopCuisines, models.CuisineCount{Cuisine: cuisine, Count: count})
	}
	sort.Slice(stats.TopCuisines, func(i, j int) bool {
		a, b := stats.TopCuisines[i], stats.TopCuisines[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Cuisine < b.Cuisine
	})
	if len(stats.TopCuisines) > 5 {
		stats.TopCuisines = stats.TopCuisines[:5]
	}

	return stats, nil
}

// Clone helpers. Returned entities never alias stored state.

func cloneUser(u models.User) *models.User {
	c := u
	c.Email = copyString(u.Email)
	c.FirstName = copyString(u.FirstName)
	c.LastName = copyString(u.LastName)
	c.ProfileImageURL = copyString(u.ProfileImageURL)
	return &c
}

func cloneRestaurant(r models.Restaurant) *models.Restaurant {
	c := r
	c.Address = copyString(r.Address)
	c.Latitude = copyFloat(r.Latitude)
	c.Longitude = copyFloat(r.Longitude)
	c.Notes = copyString(r.Notes)
	c.PlaceID = copyString(r.PlaceID)
	c.PhotoURL = copyString(r.PhotoURL)
	c.PhoneNumber = copyString(r.PhoneNumber)
	c.Website = copyString(r.Website)
	return &c
}

func cloneList(l models.List) *models.List {
	c := l
	c.Description = copyString(l.Description)
	return &c
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
