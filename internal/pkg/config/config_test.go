package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Store.Driver != DriverMongo || cfg.Mongo.Database != "tourism" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != 168*time.Hour || cfg.Auth.FailureWindow != 15*time.Minute {
		t.Fatalf("unexpected durations: %s %s", cfg.Auth.TokenTTL, cfg.Auth.FailureWindow)
	}
	if cfg.Auth.MaxFailures != 10 || cfg.Audit.Workers != 4 || cfg.Redis.Addr != "" {
		t.Fatalf("unexpected auth/audit/redis defaults: %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_DRIVER":  "memory",
		"TOKEN_TTL":     "1h",
		"CORS_ORIGINS":  "https://a.example,https://b.example",
		"REDIS_ADDR":    "localhost:6379",
		"STORE_TIMEOUT": "250ms",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Driver != DriverMemory || cfg.Auth.TokenTTL != time.Hour || cfg.Store.Timeout != 250*time.Millisecond {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}

	cfg.Auth.JWTSecret = "0123456789abcdef0123"
	cfg.Store.Driver = "postgres"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Fatalf("expected STORE_DRIVER error, got %v", err)
	}

	cfg.Store.Driver = DriverMemory
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
