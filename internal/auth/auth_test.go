package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"medical-booking/internal/auth"
)

const secret = "test-secret"

func TestTokenExpiry(t *testing.T) {
	tok, err := auth.MakeToken("test-uid", secret)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}

	claims, err := auth.ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "test-uid" {
		t.Errorf("uid mismatch: %s", claims.UserID)
	}

	diff := time.Until(claims.ExpiresAt.Time)
	if diff < 14*time.Minute || diff > 16*time.Minute {
		t.Errorf("expected ~15min expiry, got %v", diff)
	}
}

func TestAlgorithmConfusion(t *testing.T) {
	tok, _ := auth.MakeToken("uid", secret)
	if _, err := auth.ParseToken(tok, secret); err != nil {
		t.Fatalf("valid token failed: %v", err)
	}

	if _, err := auth.ParseToken(tok, "wrong-secret"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
	if _, err := auth.ParseToken("not.a.token", secret); err == nil {
		t.Fatal("expected error for garbage token")
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, auth.Claims{UserID: "uid"})
	raw, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := auth.ParseToken(raw, secret); err == nil {
		t.Fatal("expected error for unsigned token")
	}
}

func TestExpiredToken(t *testing.T) {
	c := auth.Claims{
		UserID: "uid",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	raw, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	if _, err := auth.ParseToken(raw, secret); err == nil {
		t.Fatal("expected error for expired token")
	}
}
