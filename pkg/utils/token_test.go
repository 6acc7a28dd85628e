package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, expiresAt, err := IssueSessionToken("secret", userID, "asha@example.com", "Asha", "user", time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("expiry in the past: %v", expiresAt)
	}

	claims, err := ParseSessionToken("secret", token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if claims.UserID != userID.String() || claims.Email != "asha@example.com" || claims.Role != "user" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, _, err := IssueSessionToken("secret", uuid.New(), "a@b.c", "A", "user", time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	if _, err := ParseSessionToken("other-secret", token); err == nil {
		t.Fatalf("token accepted under the wrong secret")
	}
}

func TestSessionTokenEmptySecretNeverValidates(t *testing.T) {
	token, _, err := IssueSessionToken("", uuid.New(), "a@b.c", "A", "user", time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	if _, err := ParseSessionToken("", token); err == nil {
		t.Fatalf("token accepted under an empty secret")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	token, _, err := IssueSessionToken("secret", uuid.New(), "a@b.c", "A", "user", -time.Minute)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	if _, err := ParseSessionToken("secret", token); err == nil {
		t.Fatalf("expired token accepted")
	}
}
