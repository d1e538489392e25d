package service_test

import (
	"testing"

	"tubeshare-go/internal/model"
	"tubeshare-go/internal/service"
)

func TestEnsureUserCreatesOnFirstContact(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.identityService.EnsureUser("auth0|alice", "Alice")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("Expected a persisted user with non-zero id")
	}
	if user.DisplayName != "Alice" {
		t.Errorf("Expected display name Alice, got %q", user.DisplayName)
	}

	var count int64
	env.db.Model(&model.User{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 user row, got %d", count)
	}
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.identityService.EnsureUser("auth0|alice", "Alice")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		again, err := env.identityService.EnsureUser("auth0|alice", "Alice")
		if err != nil {
			t.Fatalf("Repeat EnsureUser failed: %v", err)
		}
		if again.ID != first.ID {
			t.Errorf("Expected same user id %d, got %d", first.ID, again.ID)
		}
	}

	var count int64
	env.db.Model(&model.User{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 user row after repeated calls, got %d", count)
	}
}

func TestEnsureUserDefaultsMissingName(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.identityService.EnsureUser("auth0|ghost", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if user.DisplayName != service.DefaultDisplayName {
		t.Errorf("Expected default display name %q, got %q", service.DefaultDisplayName, user.DisplayName)
	}
}

func TestEnsureUserReconcilesAnonymousName(t *testing.T) {
	env := newTestEnv(t)

	// First contact without a claimed name.
	user, err := env.identityService.EnsureUser("auth0|bob", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if user.DisplayName != service.DefaultDisplayName {
		t.Fatalf("Expected placeholder name, got %q", user.DisplayName)
	}

	// A later token carries the real name: the placeholder is replaced.
	user, err = env.identityService.EnsureUser("auth0|bob", "Bob")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if user.DisplayName != "Bob" {
		t.Errorf("Expected placeholder to be replaced by Bob, got %q", user.DisplayName)
	}

	var stored model.User
	env.db.First(&stored, user.ID)
	if stored.DisplayName != "Bob" {
		t.Errorf("Expected Bob persisted, got %q", stored.DisplayName)
	}
}

func TestEnsureUserNeverOverwritesChosenName(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.identityService.EnsureUser("auth0|carol", "Carol"); err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}

	// Claims going quiet must not reset a real name back to the placeholder,
	// and a different claimed name must not clobber it either.
	for _, claimed := range []string{"", "CarolRenamed"} {
		user, err := env.identityService.EnsureUser("auth0|carol", claimed)
		if err != nil {
			t.Fatalf("EnsureUser failed: %v", err)
		}
		if user.DisplayName != "Carol" {
			t.Errorf("Claimed %q: expected stored name Carol untouched, got %q", claimed, user.DisplayName)
		}
	}
}

func TestUpdateDisplayNameAlwaysWins(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.identityService.EnsureUser("auth0|dave", "Dave")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}

	view, err := env.identityService.UpdateDisplayName(user.ID, "DaveTheViewer")
	if err != nil {
		t.Fatalf("UpdateDisplayName failed: %v", err)
	}
	if view.DisplayName != "DaveTheViewer" {
		t.Errorf("Expected DaveTheViewer, got %q", view.DisplayName)
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.identityService.GetProfile(9999); err != service.ErrUserNotFound {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
