package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndParse(t *testing.T) {
	tokens, err := NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	raw, expiresAt, err := tokens.Issue("member-1", "owner-a")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected expiry in the future, got %v", expiresAt)
	}

	claims, err := tokens.Parse(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claims.UserID != "member-1" || claims.Parent != "owner-a" || claims.ID == "" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tokens, _ := NewTokens("test-secret", time.Hour)
	issuedAt := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issuedAt }
	raw, _, err := tokens.Issue("owner-a", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	tokens.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if _, err := tokens.Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsForeignSecretAndAlgorithm(t *testing.T) {
	tokens, _ := NewTokens("test-secret", time.Hour)
	other, _ := NewTokens("other-secret", time.Hour)
	raw, _, _ := other.Issue("owner-a", "")
	if _, err := tokens.Parse(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign secret, got %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "owner-a",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := tokens.Parse(unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg none, got %v", err)
	}
}

func TestNewTokensRequiresSecret(t *testing.T) {
	if _, err := NewTokens("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
