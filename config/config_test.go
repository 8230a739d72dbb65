package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "TIANSHU_DB_PATH", "TIANSHU_POLL_INTERVAL", "TIANSHU_WORKERS_PER_DEVICE")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatabasePath != "tianshu.db" {
		t.Fatalf("expected default db path, got %q", cfg.DatabasePath)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("expected default poll interval, got %v", cfg.PollInterval)
	}
	if cfg.WorkersPerDevice != 1 {
		t.Fatalf("expected default workers per device 1, got %d", cfg.WorkersPerDevice)
	}
}

func TestLoadOverrides(t *testing.T) {
	os.Setenv("TIANSHU_DB_PATH", "/tmp/custom.db")
	os.Setenv("TIANSHU_POLL_INTERVAL", "5s")
	os.Setenv("TIANSHU_DEVICES", "cuda:0,cuda:1")
	defer clearEnv(t, "TIANSHU_DB_PATH", "TIANSHU_POLL_INTERVAL", "TIANSHU_DEVICES")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatabasePath != "/tmp/custom.db" {
		t.Fatalf("expected overridden db path, got %q", cfg.DatabasePath)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Fatalf("expected overridden poll interval, got %v", cfg.PollInterval)
	}
	if len(cfg.Devices) != 2 || cfg.Devices[0] != "cuda:0" || cfg.Devices[1] != "cuda:1" {
		t.Fatalf("expected split devices, got %v", cfg.Devices)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	os.Setenv("TIANSHU_POLL_INTERVAL", "not-a-duration")
	defer clearEnv(t, "TIANSHU_POLL_INTERVAL")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
