package utils

import (
	"testing"

	"medibook-server/internal/config"
	"medibook-server/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "test-secret",
		JWTRefreshSecret:          "test-refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 168,
	}
}

func TestGenerateAndValidateTokens(t *testing.T) {
	cfg := testConfig()
	user := &models.User{Role: models.RolePatient}
	user.ID = "user-123"

	accessToken, refreshToken, err := GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("generating tokens: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("tokens must not be empty")
	}

	claims, err := ValidateToken(accessToken, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("validating access token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != models.RolePatient {
		t.Fatalf("claims do not round-trip: %+v", claims)
	}

	if _, err := ValidateToken(refreshToken, cfg.JWTRefreshSecret); err != nil {
		t.Fatalf("validating refresh token: %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	cfg := testConfig()
	user := &models.User{Role: models.RoleDoctor}
	user.ID = "user-456"

	accessToken, _, err := GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("generating tokens: %v", err)
	}

	if _, err := ValidateToken(accessToken, "some-other-secret"); err == nil {
		t.Fatal("a token signed with another secret must not validate")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := ValidateToken("not-a-jwt", "test-secret"); err == nil {
		t.Fatal("garbage input must not validate")
	}
}
