package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"KIDCON_LOG_DIR", "KIDCON_DB", "KIDCON_PROVIDER", "KIDCON_DEVICES",
		"KIDCON_ROUTER_HOST", "KIDCON_ROUTER_PORT", "KIDCON_ROUTER_USER",
		"KIDCON_ROUTER_PASSWORD", "KIDCON_ROUTER_KEY_FILE",
		"KIDCON_INTERVAL", "KIDCON_LOG_LEVEL",
	} {
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogDir != "logs" {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.DBPath != "mtkidcon.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Provider != "routeros" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Devices != nil {
		t.Errorf("Devices = %v, want nil", cfg.Devices)
	}
	if cfg.Interval.Duration() != 15*time.Minute {
		t.Errorf("Interval = %v", cfg.Interval)
	}
	if cfg.Router.Port != 22 {
		t.Errorf("Router.Port = %d", cfg.Router.Port)
	}
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("KIDCON_DEVICES", "xiaomi-dalibor, xiaomi-david ,lenovo-wifi")
	t.Setenv("KIDCON_INTERVAL", "5m")
	t.Setenv("KIDCON_ROUTER_HOST", "192.168.88.1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{"xiaomi-dalibor", "xiaomi-david", "lenovo-wifi"}
	if len(cfg.Devices) != len(want) {
		t.Fatalf("Devices = %v, want %v", cfg.Devices, want)
	}
	for i := range want {
		if cfg.Devices[i] != want[i] {
			t.Errorf("Devices[%d] = %q, want %q", i, cfg.Devices[i], want[i])
		}
	}
	if cfg.Interval.Duration() != 5*time.Minute {
		t.Errorf("Interval = %v", cfg.Interval)
	}
	if cfg.Router.Host != "192.168.88.1" {
		t.Errorf("Router.Host = %q", cfg.Router.Host)
	}
}

func TestLoad_FileOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("KIDCON_LOG_DIR", "/from-env")

	path := filepath.Join(t.TempDir(), "kidcon.yaml")
	data := `
log_dir: /from-file
devices:
  - samsung-dalibor
  - lenovo-wifi
router:
  host: 10.0.0.1
  username: telemetry
interval: 30m
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogDir != "/from-file" {
		t.Errorf("LogDir = %q, want file value", cfg.LogDir)
	}
	if len(cfg.Devices) != 2 || cfg.Devices[0] != "samsung-dalibor" {
		t.Errorf("Devices = %v", cfg.Devices)
	}
	if cfg.Router.Username != "telemetry" {
		t.Errorf("Router.Username = %q", cfg.Router.Username)
	}
	if cfg.Interval.Duration() != 30*time.Minute {
		t.Errorf("Interval = %v", cfg.Interval)
	}
	// Fields absent from the file keep their env/default values.
	if cfg.DBPath != "mtkidcon.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("devices: {not: [valid"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
