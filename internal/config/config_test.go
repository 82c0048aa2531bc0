package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COURTSIDE_ADDR", "")
	t.Setenv("COURTSIDE_DATA_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != "0.0.0.0:8000" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("COURTSIDE_ADDR", "127.0.0.1:9000")
	t.Setenv("COURTSIDE_DATA_DIR", "/var/lib/courtside")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9000" || cfg.DataDir != "/var/lib/courtside" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsBadAddr(t *testing.T) {
	t.Setenv("COURTSIDE_ADDR", "not-an-address")

	if _, err := Load(); err == nil {
		t.Fatal("expected a validation error")
	}
}
