package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "APP_PORT", "JWT_SECRET", "AUTH_BCRYPT_COST", "AUTH_ACCESS_TOKEN_TTL_MINUTES",
		"POSTGRES_DSN", "POSTGRES_MAX_CONNS", "POSTGRES_MIN_CONNS", "SEED_DEMO_DATA",
		"REDIS_ADDR", "REDIS_DB", "HTTP_REQUEST_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Addr() != "0.0.0.0:5000" {
		t.Errorf("Addr = %q", cfg.App.Addr())
	}
	if cfg.Postgres.MinConns != 2 || cfg.Postgres.MaxConns != 10 {
		t.Errorf("pool bounds = %d/%d, want 2/10", cfg.Postgres.MinConns, cfg.Postgres.MaxConns)
	}
	if cfg.Redis.Enabled() {
		t.Error("redis should be disabled without REDIS_ADDR")
	}
	if cfg.Auth.AccessTokenTTL() != 24*time.Hour {
		t.Errorf("token TTL = %v", cfg.Auth.AccessTokenTTL())
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("bcrypt cost = %d", cfg.Auth.BcryptCost)
	}
	if cfg.App.RequestTimeout() != 30*time.Second {
		t.Errorf("request timeout = %v", cfg.App.RequestTimeout())
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "8081")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != "8081" {
		t.Errorf("port = %q", cfg.App.Port)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("secret = %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.AccessTokenTTL() != 15*time.Minute {
		t.Errorf("token TTL = %v", cfg.Auth.AccessTokenTTL())
	}
	if !cfg.Redis.Enabled() {
		t.Error("redis should be enabled")
	}
	if !cfg.Postgres.SeedDemoData {
		t.Error("seed flag not read")
	}
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_DB", "zero")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric REDIS_DB")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			App:      AppConfig{Env: "development"},
			Postgres: PostgresConfig{MinConns: 2, MaxConns: 10},
			Auth:     AuthConfig{JWTSecret: DefaultJWTSecret, BcryptCost: 10},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "development default secret", mutate: func(*Config) {}},
		{name: "production default secret", mutate: func(c *Config) { c.App.Env = "production" }, wantErr: true},
		{name: "production custom secret", mutate: func(c *Config) {
			c.App.Env = "production"
			c.Auth.JWTSecret = "real"
		}},
		{name: "empty secret", mutate: func(c *Config) { c.Auth.JWTSecret = " " }, wantErr: true},
		{name: "bcrypt cost too low", mutate: func(c *Config) { c.Auth.BcryptCost = 1 }, wantErr: true},
		{name: "bcrypt cost too high", mutate: func(c *Config) { c.Auth.BcryptCost = 40 }, wantErr: true},
		{name: "pool bounds inverted", mutate: func(c *Config) { c.Postgres.MinConns = 20 }, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
