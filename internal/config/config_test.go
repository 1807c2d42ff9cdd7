package config

import (
	"testing"
	"time"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
}

func TestLoadServerConfigBarePort(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
}

func TestLoadServerConfigFullAddr(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
}

func TestLoadUploadConfigRejectsNonPositive(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "-1")

	if _, err := loadUploadConfig(); err == nil {
		t.Fatal("expected error for negative limit")
	}
}

func TestLoadSessionConfig(t *testing.T) {
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_SWEEP_INTERVAL", "1m")

	cfg, err := loadSessionConfig()
	if err != nil {
		t.Fatalf("loadSessionConfig err: %v", err)
	}
	if cfg.TTL != 30*time.Minute {
		t.Fatalf("unexpected ttl: %s", cfg.TTL)
	}
	if cfg.SweepInterval != time.Minute {
		t.Fatalf("unexpected sweep interval: %s", cfg.SweepInterval)
	}
}

func TestLoadSessionConfigBadDuration(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")

	if _, err := loadSessionConfig(); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}
