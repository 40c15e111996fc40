package config

import (
	"testing"
	"time"
)

func TestLoadGatewayConfigDefaults(t *testing.T) {
	t.Setenv("WS_HEARTBEAT_INTERVAL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := loadGatewayConfig()
	if err != nil {
		t.Fatalf("loadGatewayConfig err: %v", err)
	}
	if cfg.HeartbeatInterval != 30*time.Second {
		t.Fatalf("expected 30s default interval, got %v", cfg.HeartbeatInterval)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadGatewayConfigOverrides(t *testing.T) {
	t.Setenv("WS_HEARTBEAT_INTERVAL", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := loadGatewayConfig()
	if err != nil {
		t.Fatalf("loadGatewayConfig err: %v", err)
	}
	if cfg.HeartbeatInterval != 5*time.Second {
		t.Fatalf("expected 5s interval, got %v", cfg.HeartbeatInterval)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadGatewayConfigRejectsNonPositiveInterval(t *testing.T) {
	t.Setenv("WS_HEARTBEAT_INTERVAL", "0")

	if _, err := loadGatewayConfig(); err == nil {
		t.Fatal("expected error for non-positive interval")
	}
}

func TestLoadAuthConfig(t *testing.T) {
	t.Setenv("AUTH_TOKENS", "valid-token:test-user, other-token:other-user")

	cfg, err := loadAuthConfig()
	if err != nil {
		t.Fatalf("loadAuthConfig err: %v", err)
	}
	if cfg.Tokens["valid-token"] != "test-user" {
		t.Fatalf("unexpected tokens: %v", cfg.Tokens)
	}
	if cfg.Tokens["other-token"] != "other-user" {
		t.Fatalf("unexpected tokens: %v", cfg.Tokens)
	}
}

func TestLoadAuthConfigEmpty(t *testing.T) {
	t.Setenv("AUTH_TOKENS", "")

	cfg, err := loadAuthConfig()
	if err != nil {
		t.Fatalf("loadAuthConfig err: %v", err)
	}
	if len(cfg.Tokens) != 0 {
		t.Fatalf("expected no tokens, got %v", cfg.Tokens)
	}
}

func TestLoadAuthConfigMalformedEntry(t *testing.T) {
	t.Setenv("AUTH_TOKENS", "missing-user-part")

	if _, err := loadAuthConfig(); err == nil {
		t.Fatal("expected error for malformed AUTH_TOKENS entry")
	}
}

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.Addr)
	}
}
