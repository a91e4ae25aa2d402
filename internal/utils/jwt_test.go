package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestExpiryFromJWT(t *testing.T) {
	exp := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	token := signedToken(t, jwt.MapClaims{"sub": "user-1", "exp": exp.Unix()})

	got, err := ExpiryFromJWT(token)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !got.Equal(exp) {
		t.Errorf("expected exp %v, got %v", exp, got)
	}
}

func TestExpiryFromJWT_NoExp(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user-1"})

	_, err := ExpiryFromJWT(token)
	if !errors.Is(err, ErrNoExpiry) {
		t.Fatalf("expected ErrNoExpiry, got: %v", err)
	}
}

func TestExpiryFromJWT_Malformed(t *testing.T) {
	if _, err := ExpiryFromJWT("not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
