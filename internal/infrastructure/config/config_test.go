package config

import (
	"context"
	"strings"
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
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("expected default TTL 24h, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("expected default bcrypt cost 10, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Mongo.Database != "task" {
		t.Errorf("expected default database task, got %q", cfg.Mongo.Database)
	}
	if cfg.Redis.Enabled() {
		t.Errorf("redis must be disabled without REDIS_ADDR")
	}
	if !cfg.Development() {
		t.Errorf("expected development env by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"TOKEN_TTL":  "0s",
		"REDIS_ADDR": "localhost:6379",
		"MONGO_USER": "svc",
		"ENV":        "production",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Auth.TokenTTL != 0 {
		t.Errorf("expected TTL disabled, got %v", cfg.Auth.TokenTTL)
	}
	if !cfg.Redis.Enabled() {
		t.Errorf("expected redis enabled")
	}
	if cfg.Mongo.Username != "svc" {
		t.Errorf("expected mongo user svc, got %q", cfg.Mongo.Username)
	}
	if cfg.Development() {
		t.Errorf("expected production env")
	}
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"unset": {},
		"empty": {"JWT_SECRET": ""},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(env))
			if err == nil {
				t.Fatalf("expected error for missing JWT_SECRET")
			}
			if !strings.Contains(err.Error(), "JWT_SECRET") {
				t.Fatalf("error should name JWT_SECRET, got %v", err)
			}
		})
	}
}

func TestLoadFrom_NegativeTTL(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"TOKEN_TTL":  "-1h",
	}))
	if err == nil {
		t.Fatalf("expected error for negative TTL")
	}
}
