package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port: %s", cfg.Port)
	}
	if cfg.TokenTTL() != 30*time.Minute {
		t.Fatalf("unexpected default ttl: %s", cfg.TokenTTL())
	}
	if cfg.Mongo.Database != "accounts" {
		t.Fatalf("unexpected default database: %s", cfg.Mongo.Database)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL_MINUTES", "5")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr: %s", cfg.Addr())
	}
	if cfg.TokenTTL() != 5*time.Minute {
		t.Fatalf("unexpected ttl: %s", cfg.TokenTTL())
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestEnsureJWTSecret(t *testing.T) {
	cfg := &Config{JWTSecret: "configured"}
	generated, err := cfg.EnsureJWTSecret()
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if generated || cfg.JWTSecret != "configured" {
		t.Fatalf("configured secret must be kept")
	}

	cfg = &Config{}
	generated, err = cfg.EnsureJWTSecret()
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !generated || cfg.JWTSecret == "" {
		t.Fatalf("expected a generated secret")
	}

	other := &Config{}
	if _, err := other.EnsureJWTSecret(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if other.JWTSecret == cfg.JWTSecret {
		t.Fatalf("generated secrets must be random")
	}
}
