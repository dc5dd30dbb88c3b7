package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		DBUrl:                   "postgres://localhost/barber",
		JWTSecret:               "secret",
		ServerPort:              "8080",
		RateLimitRequests:       10,
		RateLimitWindow:         time.Minute,
		DefaultTimezone:         "America/Sao_Paulo",
		DefaultOpensAt:          "09:00",
		DefaultClosesAt:         "18:00",
		DefaultSlotStepMinutes:  30,
		FallbackDurationMinutes: 30,
		ShutdownTimeout:         time.Second,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DEFAULT_SLOT_STEP_MINUTES", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.DefaultSlotStepMinutes != 30 {
		t.Errorf("expected default step 30, got %d", cfg.DefaultSlotStepMinutes)
	}
	if cfg.RateLimitWindow != time.Minute {
		t.Errorf("expected default window 1m, got %s", cfg.RateLimitWindow)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("unexpected addr %s", cfg.Addr())
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DEFAULT_OPENS_AT", "08:30")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CHECK_EMAIL_DOMAIN", "true")
	t.Setenv("PHONE_REGION", "co")

	cfg := Load()

	if cfg.ServerPort != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.ServerPort)
	}
	if cfg.DefaultOpensAt != "08:30" {
		t.Errorf("expected opens 08:30, got %s", cfg.DefaultOpensAt)
	}
	if cfg.RateLimitWindow != 30*time.Second {
		t.Errorf("expected window 30s, got %s", cfg.RateLimitWindow)
	}
	if !cfg.CheckEmailDomain {
		t.Error("expected CheckEmailDomain to be true")
	}
	if cfg.PhoneRegion != "CO" {
		t.Errorf("expected region CO, got %s", cfg.PhoneRegion)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.ServerPort = "70000" }, wantErr: "SERVER_PORT"},
		{name: "bad opens", mutate: func(c *Config) { c.DefaultOpensAt = "9am" }, wantErr: "DEFAULT_OPENS_AT"},
		{name: "closes before opens", mutate: func(c *Config) { c.DefaultClosesAt = "08:00" }, wantErr: "must be after"},
		{name: "zero step", mutate: func(c *Config) { c.DefaultSlotStepMinutes = 0 }, wantErr: "DEFAULT_SLOT_STEP_MINUTES"},
		{name: "zero fallback", mutate: func(c *Config) { c.FallbackDurationMinutes = 0 }, wantErr: "FALLBACK_DURATION_MINUTES"},
		{name: "unknown zone", mutate: func(c *Config) { c.DefaultTimezone = "Mars/Olympus" }, wantErr: "DEFAULT_TIMEZONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
