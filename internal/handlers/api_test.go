package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"taste-trail-backend/internal/middleware"
	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/services"
	"taste-trail-backend/internal/storage/memory"

	"github.com/go-chi/chi/v5"
)

// newTestAPI wires the HTTP surface over an in-memory store and returns the
// router plus a valid bearer token.
func newTestAPI(t *testing.T) (*chi.Mux, string) {
	t.Helper()

	store := memory.New()
	userService := services.NewUserService(store, "test-secret")
	restaurantService := services.NewRestaurantService(store)
	listService := services.NewListService(store, store)
	checkInService := services.NewCheckInService(store, store)
	statsService := services.NewStatsService(store)
	wsHub := services.NewWSHub()

	email := "diner@example.com"
	_, token, err := userService.Login(context.Background(), &models.User{Email: &email})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	authHandler := NewAuthHandler(userService)
	restaurantHandler := NewRestaurantHandler(restaurantService, wsHub)
	listHandler := NewListHandler(listService, wsHub)
	checkInHandler := NewCheckInHandler(checkInService, wsHub)
	statsHandler := NewStatsHandler(statsService)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/session", authHandler.CreateSession)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(userService))

			r.Get("/me", authHandler.Me)

			r.Get("/restaurants", restaurantHandler.List)
			r.Post("/restaurants", restaurantHandler.Create)
			r.Get("/restaurants/{id}", restaurantHandler.Get)
			r.Patch("/restaurants/{id}", restaurantHandler.Update)
			r.Delete("/restaurants/{id}", restaurantHandler.Delete)
			r.Get("/restaurants/{id}/checkins", checkInHandler.ListByRestaurant)

			r.Get("/lists", listHandler.List)
			r.Post("/lists", listHandler.Create)
			r.Get("/lists/{id}", listHandler.Get)
			r.Patch("/lists/{id}", listHandler.Update)
			r.Delete("/lists/{id}", listHandler.Delete)
			r.Get("/lists/{id}/restaurants", listHandler.GetRestaurants)
			r.Post("/lists/{id}/restaurants", listHandler.AddRestaurant)
			r.Delete("/lists/{listID}/restaurants/{restaurantID}", listHandler.RemoveRestaurant)

			r.Post("/checkins", checkInHandler.Create)
			r.Get("/stats", statsHandler.Get)
		})
	})

	return r, token
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestAuthRequired(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/restaurants", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/restaurants", "bogus-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}
}

func TestRestaurantEndpoints(t *testing.T) {
	router, token := newTestAPI(t)

	// Validation failures.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/restaurants", token,
		map[string]interface{}{"cuisine": "Italian", "price_range": "$$"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, "/api/v1/restaurants", token,
		map[string]interface{}{"name": "Luigi's", "cuisine": "Italian", "price_range": "cheap"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad price_range, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, "/api/v1/restaurants", token,
		map[string]interface{}{"name": "Luigi's", "cuisine": "Italian", "price_range": "$$", "rating": 6})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for rating out of range, got %d", rec.Code)
	}

	// Create.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/restaurants", token,
		map[string]interface{}{"name": "Luigi's", "cuisine": "Italian", "price_range": "$$"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created models.Restaurant
	decode(t, rec, &created)
	if created.ID == "" || created.Name != "Luigi's" {
		t.Fatalf("unexpected create response: %+v", created)
	}

	// Read back.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/restaurants/"+created.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Partial update.
	rec = doJSON(t, router, http.MethodPatch, "/api/v1/restaurants/"+created.ID, token,
		map[string]interface{}{"rating": 4})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated models.Restaurant
	decode(t, rec, &updated)
	if updated.Rating != 4 || updated.Name != "Luigi's" {
		t.Fatalf("patch merge broken: %+v", updated)
	}

	// Delete, then the entity is gone.
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/restaurants/"+created.ID, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/v1/restaurants/"+created.ID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestListEndpoints(t *testing.T) {
	router, token := newTestAPI(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/lists", token,
		map[string]interface{}{"name": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/lists", token,
		map[string]interface{}{"name": "Date Night"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var list models.List
	decode(t, rec, &list)
	if list.Icon != "utensils" || list.Color != "primary" {
		t.Fatalf("defaults not applied: %+v", list)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/restaurants", token,
		map[string]interface{}{"name": "Luigi's", "cuisine": "Italian", "price_range": "$$"})
	var restaurant models.Restaurant
	decode(t, rec, &restaurant)

	membersPath := fmt.Sprintf("/api/v1/lists/%s/restaurants", list.ID)

	rec = doJSON(t, router, http.MethodPost, membersPath, token,
		map[string]interface{}{"restaurant_id": restaurant.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 adding member, got %d: %s", rec.Code, rec.Body.String())
	}

	// Duplicate membership is a conflict.
	rec = doJSON(t, router, http.MethodPost, membersPath, token,
		map[string]interface{}{"restaurant_id": restaurant.ID})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate membership, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, membersPath, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var members []models.Restaurant
	decode(t, rec, &members)
	if len(members) != 1 || members[0].Name != "Luigi's" {
		t.Fatalf("expected [Luigi's], got %+v", members)
	}

	rec = doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/lists/%s/restaurants/%s", list.ID, restaurant.ID), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 removing member, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, membersPath, token, nil)
	members = nil
	decode(t, rec, &members)
	if len(members) != 0 {
		t.Fatalf("expected empty members after remove, got %+v", members)
	}
}

func TestCheckInAndStatsEndpoints(t *testing.T) {
	router, token := newTestAPI(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/restaurants", token,
		map[string]interface{}{"name": "Luigi's", "cuisine": "Italian", "price_range": "$$"})
	var restaurant models.Restaurant
	decode(t, rec, &restaurant)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/checkins", token,
		map[string]interface{}{"restaurant_id": restaurant.ID, "rating": 7})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for rating out of range, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/checkins", token,
		map[string]interface{}{"restaurant_id": "missing"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing restaurant, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/checkins", token,
		map[string]interface{}{"restaurant_id": restaurant.ID, "rating": 5})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/restaurants/"+restaurant.ID, token, nil)
	var after models.Restaurant
	decode(t, rec, &after)
	if !after.IsVisited || after.CheckInCount != 1 {
		t.Fatalf("check-in cascade missing: %+v", after)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/restaurants/"+restaurant.ID+"/checkins", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var visits []models.CheckIn
	decode(t, rec, &visits)
	if len(visits) != 1 {
		t.Fatalf("expected 1 check-in, got %d", len(visits))
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/stats", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var stats models.Stats
	decode(t, rec, &stats)
	if stats.TotalRestaurants != 1 || stats.VisitedCount != 1 || stats.TotalCheckIns != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.AverageRating != 5 {
		t.Fatalf("expected average 5, got %v", stats.AverageRating)
	}
	if len(stats.TopCuisines) != 1 || stats.TopCuisines[0].Cuisine != "Italian" {
		t.Fatalf("unexpected cuisines: %+v", stats.TopCuisines)
	}
}

func TestSessionEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/session", "",
		map[string]interface{}{"email": "no-at-sign"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/session", "",
		map[string]interface{}{"email": "new@example.com", "first_name": "Alex"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var session SessionResponse
	decode(t, rec, &session)
	if session.Token == "" || session.User == nil || session.User.ID == "" {
		t.Fatalf("incomplete session response: %+v", session)
	}

	// The issued token works against protected routes.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/me", session.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on /me, got %d", rec.Code)
	}
	var me models.User
	decode(t, rec, &me)
	if me.ID != session.User.ID {
		t.Fatalf("me mismatch: %s != %s", me.ID, session.User.ID)
	}
}
