package services

import (
	"context"
	"errors"
	"testing"

	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/storage"
	"taste-trail-backend/internal/storage/memory"
)

func TestRestaurantOwnershipScoping(t *testing.T) {
	store := memory.New()
	svc := NewRestaurantService(store)
	ctx := context.Background()

	mine, err := svc.Create(ctx, "user-1", &models.Restaurant{Name: "Luigi's", Cuisine: "Italian", PriceRange: "$$"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(ctx, "user-1", mine.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}

	// Another user sees someone else's restaurant as missing.
	if _, err := svc.Get(ctx, "user-2", mine.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign restaurant, got %v", err)
	}
	if _, err := svc.Update(ctx, "user-2", mine.ID, &models.RestaurantUpdate{}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on foreign update, got %v", err)
	}
	if err := svc.Delete(ctx, "user-2", mine.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on foreign delete, got %v", err)
	}

	if _, err := store.GetRestaurant(ctx, mine.ID); err != nil {
		t.Fatalf("restaurant should still exist: %v", err)
	}
}

func TestRestaurantUpdateMergesFields(t *testing.T) {
	svc := NewRestaurantService(memory.New())
	ctx := context.Background()

	r, err := svc.Create(ctx, "user-1", &models.Restaurant{Name: "Luigi's", Cuisine: "Italian", PriceRange: "$$"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rating := 4
	updated, err := svc.Update(ctx, "user-1", r.ID, &models.RestaurantUpdate{Rating: &rating})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Rating != 4 || updated.Name != "Luigi's" {
		t.Fatalf("merge broken: %+v", updated)
	}
}
