package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/surjohq/surjo-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:          "unit-test-secret",
		Issuer:          "surjo",
		ExpirationHours: 168,
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()
	userID := uuid.New()

	token, err := MintSessionToken(cfg, now, SessionPayload{
		UserID:  userID,
		Email:   "a@x.com",
		IsAdmin: true,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID() != userID {
		t.Fatalf("expected subject %s, got %s", userID, claims.Subject)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("expected email claim, got %q", claims.Email)
	}
	if !claims.IsAdmin {
		t.Fatalf("expected is_admin snapshot to survive")
	}

	lifetime := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	if lifetime != 7*24*time.Hour {
		t.Fatalf("expected 7 day lifetime, got %s", lifetime)
	}
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintSessionToken(cfg, time.Now().UTC(), SessionPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "rotated"
	if _, err := ParseSessionToken(other, token); err == nil {
		t.Fatalf("expected rotated secret to invalidate token")
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	issued := time.Now().UTC().Add(-8 * 24 * time.Hour)
	token, err := MintSessionToken(cfg, issued, SessionPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(cfg, token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestMintSessionTokenRequiresSecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Secret = ""
	if _, err := MintSessionToken(cfg, time.Now().UTC(), SessionPayload{UserID: uuid.New()}); err == nil {
		t.Fatalf("expected error for missing secret")
	}
}
