package services

import (
	"strings"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := &JWTService{secretKey: "test-secret", expiry: time.Hour}

	token, expiresAt, err := svc.GenerateConsoleJWT("0190-user", "operator")
	if err != nil {
		t.Fatalf("GenerateConsoleJWT: %v", err)
	}
	if until := time.Until(expiresAt); until <= 59*time.Minute || until > time.Hour {
		t.Errorf("expiresAt %v not ~1h away", expiresAt)
	}

	claims, err := svc.VerifyConsoleJWT(token)
	if err != nil {
		t.Fatalf("VerifyConsoleJWT: %v", err)
	}
	if claims.UserID != "0190-user" || claims.Username != "operator" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	issuer := &JWTService{secretKey: "one", expiry: time.Hour}
	verifier := &JWTService{secretKey: "two", expiry: time.Hour}

	token, _, err := issuer.GenerateConsoleJWT("id", "name")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.VerifyConsoleJWT(token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	svc := &JWTService{secretKey: "s", expiry: -time.Minute}
	token, _, err := svc.GenerateConsoleJWT("id", "name")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.VerifyConsoleJWT(token); err == nil || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expiry error, got %v", err)
	}
}

func TestJWTRequiresClaims(t *testing.T) {
	svc := &JWTService{secretKey: "s", expiry: time.Hour}
	if _, _, err := svc.GenerateConsoleJWT("", "name"); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestInitJWTService(t *testing.T) {
	if err := InitJWTService("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if err := InitJWTService("secret", 0); err != nil {
		t.Fatal(err)
	}
	if got := GetJWTService().Expiry(); got != 24*time.Hour {
		t.Fatalf("Expiry = %v, want 24h default", got)
	}
}
