package config

import (
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port == "" {
		t.Error("port must have a default")
	}
	if cfg.Database.DSN == "" {
		t.Error("database DSN must be assembled")
	}
	if cfg.JWTExpirationMinutes <= 0 {
		t.Errorf("JWT expiration must default to a positive value, got %d", cfg.JWTExpirationMinutes)
	}
	if cfg.SweepIntervalMinutes <= 0 {
		t.Errorf("sweep interval must default to a positive value, got %d", cfg.SweepIntervalMinutes)
	}
}

func TestLoadConfig_InvalidNumbers(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_MINUTES", "not-a-number")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for a non-numeric JWT_EXPIRATION_MINUTES")
	}
}
