package utils

import (
	"testing"

	"github.com/fitgear/ymmgo/internal/models"
)

func TestPasswordHashing(t *testing.T) {
	password := "secret123"

	// Test Hashing
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if hash == password {
		t.Error("Hash should not match plaintext password")
	}
	if len(hash) == 0 {
		t.Error("Hash should not be empty")
	}

	// Test Comparison (Success)
	if !CheckPasswordHash(password, hash) {
		t.Error("Password should match hash")
	}

	// Test Comparison (Failure)
	if CheckPasswordHash("wrongpassword", hash) {
		t.Error("Wrong password should not match hash")
	}
}

func TestJWT(t *testing.T) {
	secret := "test-secret-key-12345"

	user := &models.AdminUser{
		ID:       "uuid-1234",
		Username: "tester",
		Role:     "admin",
	}

	// Test Generation
	accessToken, refreshToken, err := GenerateTokens(user, secret)
	if err != nil {
		t.Fatalf("Failed to generate tokens: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Error("Tokens should not be empty")
	}

	// Test Validation (Success)
	claims, err := ValidateToken(accessToken, secret)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims["id"] != user.ID {
		t.Errorf("ID claim mismatch: got %v, want %s", claims["id"], user.ID)
	}
	if claims["username"] != user.Username {
		t.Errorf("Username claim mismatch: got %v, want %s", claims["username"], user.Username)
	}

	// Test Validation (Wrong Secret)
	if _, err := ValidateToken(accessToken, "other-secret"); err == nil {
		t.Error("Token signed with another secret should not validate")
	}

	// Test Validation (Garbage)
	if _, err := ValidateToken("not-a-token", secret); err == nil {
		t.Error("Garbage input should not validate")
	}
}
