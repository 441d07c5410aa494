package auth

import (
	"errors"
	"testing"
	"time"
)

func TestMintAndValidate(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour)

	token, err := svc.Mint("user-1", "alice@x.com")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Email != "alice@x.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("expected expiry to be set")
	}
}

func TestValidateExpired(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour)
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.Mint("user-1", "alice@x.com")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	// 発行直後は有効
	if _, err := svc.Validate(token); err != nil {
		t.Fatalf("token should be valid right after minting: %v", err)
	}

	// 有効期限を過ぎると失効
	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.Validate(token)
	assertAuthCode(t, err, CodeTokenExpired)
}

func TestValidateWrongSecret(t *testing.T) {
	minter := NewTokenService([]byte("secret-a"), time.Hour)
	validator := NewTokenService([]byte("secret-b"), time.Hour)

	token, err := minter.Mint("user-1", "alice@x.com")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	_, err = validator.Validate(token)
	assertAuthCode(t, err, CodeTokenInvalidSignature)
}

func TestValidateMalformed(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := svc.Validate(token)
		assertAuthCode(t, err, CodeTokenMalformed)
	}
}

func assertAuthCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	var authErr *Error
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *auth.Error, got %T: %v", err, err)
	}
	if authErr.Code != code {
		t.Fatalf("unexpected code: got %s, want %s", authErr.Code, code)
	}
}
