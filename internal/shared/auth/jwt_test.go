package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignAndVerify(t *testing.T) {
	token, err := SignJWT("user-1", "a@b.com", "secret")
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	claims, err := VerifyJWT(token, "secret")
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected sub user-1, got %s", claims.Subject)
	}
	if claims.Email != "a@b.com" {
		t.Fatalf("expected email a@b.com, got %s", claims.Email)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := SignJWT("user-1", "", "secret")
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	if _, err := VerifyJWT(token, "other"); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyJWT(token, "secret"); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := VerifyJWT("not.a.token", "secret"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}
