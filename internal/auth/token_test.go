package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", 30*time.Minute)

	token, err := tm.Issue("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("expected user-1, got %q", userID)
	}

	// The cookie form carries a Bearer prefix.
	userID, err = tm.Parse("Bearer " + token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("expected user-1, got %q", userID)
	}
}

func TestTokenExpired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", -time.Minute)

	token, err := tm.Issue("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := tm.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenManager("secret-a", 30*time.Minute).Issue("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewTokenManager("secret-b", 30*time.Minute).Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", 30*time.Minute)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := tm.Parse(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("raw %q: expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestPasswordHashAndCheck(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secret123" {
		t.Error("hash must not equal the password")
	}

	if !CheckPassword("secret123", hash) {
		t.Error("correct password must verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("wrong password must not verify")
	}
}
