package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("expected default port 3000, got %q", cfg.Port)
	}
	if cfg.Auth.TokenTTL != 576*time.Hour {
		t.Errorf("expected 24 day token ttl, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.LoginMaxAttempts != 5 || cfg.Auth.LoginLockoutWindow != 15*time.Minute {
		t.Errorf("unexpected throttle defaults: %+v", cfg.Auth)
	}
	if cfg.Mongo.Database != "attendance" {
		t.Errorf("unexpected database: %q", cfg.Mongo.Database)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.IsProduction() {
		t.Errorf("default env must not be production")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":           "s3cret",
		"PORT":                 "8081",
		"ENV":                  "Production",
		"TOKEN_TTL":            "1h",
		"CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
		"REDIS_DB":             "2",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8081" || cfg.Auth.TokenTTL != time.Hour || cfg.Redis.DB != 2 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Errorf("expected two origins, got %v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.IsProduction() {
		t.Errorf("expected production env")
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"missing secret": {},
		"blank secret":   {"JWT_SECRET": "   "},
		"zero ttl":       {"JWT_SECRET": "x", "TOKEN_TTL": "0s"},
		"bad ttl":        {"JWT_SECRET": "x", "TOKEN_TTL": "forever"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
