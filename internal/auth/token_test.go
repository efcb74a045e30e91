package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/swiftremit/payments-service/internal/domain"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", "payments-test", time.Hour)
	identityID := uuid.New()

	token, err := manager.Issue(identityID, "jdoe", domain.RoleEmployee)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.IdentityID != identityID {
		t.Errorf("expected identity id %s, got %s", identityID, claims.IdentityID)
	}
	if claims.Username != "jdoe" {
		t.Errorf("expected username jdoe, got %q", claims.Username)
	}
	if claims.Role != domain.RoleEmployee {
		t.Errorf("expected role employee, got %q", claims.Role)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", "payments-test", -time.Minute)

	token, err := manager.Issue(uuid.New(), "jdoe", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = manager.Verify(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", "payments-test", time.Hour)
	verifier := NewTokenManager("secret-b", "payments-test", time.Hour)

	token, err := issuer.Issue(uuid.New(), "jdoe", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	manager := NewTokenManager("test-secret", "payments-test", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := manager.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}
