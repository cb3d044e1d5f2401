package services

import (
	"context"
	"testing"

	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/storage/memory"
)

func TestLoginIssuesValidToken(t *testing.T) {
	svc := NewUserService(memory.New(), "test-secret")
	email := "diner@example.com"

	user, token, err := svc.Login(context.Background(), &models.User{Email: &email})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected user id")
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	userID, err := svc.ValidateJWT(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("token user mismatch: %s != %s", userID, user.ID)
	}
}

func TestLoginRefreshesExistingUser(t *testing.T) {
	svc := NewUserService(memory.New(), "test-secret")
	ctx := context.Background()
	email := "diner@example.com"

	first, _, err := svc.Login(ctx, &models.User{Email: &email})
	if err != nil {
		t.Fatalf("first login: %v", err)
	}

	name := "Alex"
	second, _, err := svc.Login(ctx, &models.User{ID: first.ID, Email: &email, FirstName: &name})
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("login created a new user: %s != %s", second.ID, first.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at changed on re-login")
	}
	if second.FirstName == nil || *second.FirstName != "Alex" {
		t.Fatalf("profile not refreshed")
	}
}

func TestValidateJWTRejectsBadTokens(t *testing.T) {
	svc := NewUserService(memory.New(), "test-secret")
	other := NewUserService(memory.New(), "other-secret")

	if _, err := svc.ValidateJWT("not-a-token"); err == nil {
		t.Fatalf("expected error for garbage token")
	}

	token, err := other.GenerateJWT("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.ValidateJWT(token); err == nil {
		t.Fatalf("expected error for token signed with a different secret")
	}
}
