package auth

import (
	"errors"
	"testing"
	"time"
)

func testConfig() JWTConfig {
	return JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: time.Hour,
		Issuer:        "test-issuer",
	}
}

func TestJWTManager_GenerateAndVerify(t *testing.T) {
	manager := NewJWTManager(testConfig())

	userID := "user-123"
	username := "alice"

	token, err := manager.GenerateToken(userID, username)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Error("GenerateToken() returned empty token")
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Username != username {
		t.Errorf("claims.Username = %v, want %v", claims.Username, username)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("claims.Issuer = %v, want test-issuer", claims.Issuer)
	}
}

func TestJWTManager_VerifyIsIdempotent(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateToken("user-123", "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// The gate re-verifies the same token on every event.
	for i := 0; i < 3; i++ {
		if _, err := manager.Verify(token); err != nil {
			t.Fatalf("Verify() call %d error = %v", i+1, err)
		}
	}
}

func TestJWTManager_VerifyRejectsMissingToken(t *testing.T) {
	manager := NewJWTManager(testConfig())

	_, err := manager.Verify("")
	if !errors.Is(err, ErrMissingToken) {
		t.Errorf("Verify(\"\") error = %v, want ErrMissingToken", err)
	}
}

func TestJWTManager_VerifyRejectsGarbage(t *testing.T) {
	manager := NewJWTManager(testConfig())

	_, err := manager.Verify("not-a-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTManager_VerifyRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig())
	token, err := manager.GenerateToken("user-123", "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	other := testConfig()
	other.SecretKey = "a-different-secret"
	_, err = NewJWTManager(other).Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTManager_VerifyRejectsExpiredToken(t *testing.T) {
	config := testConfig()
	config.TokenDuration = -time.Minute
	manager := NewJWTManager(config)

	token, err := manager.GenerateToken("user-123", "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	_, err = manager.Verify(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
	}
}
