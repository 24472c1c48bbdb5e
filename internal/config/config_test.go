package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("KAYAKO_HTTP_TIMEOUT_SECONDS", "")
	t.Setenv("APP_PORT", "9090")

	cfg, err := fromEnv()
	if err != nil {
		t.Fatalf("fromEnv: %v", err)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("backend = %q, want %q", cfg.Storage.Backend, BackendMemory)
	}
	if cfg.App.Addr() != "0.0.0.0:9090" {
		t.Errorf("addr = %q", cfg.App.Addr())
	}
	if cfg.Kayako.HTTPTimeout() != 0 {
		t.Errorf("default API timeout = %v, want none", cfg.Kayako.HTTPTimeout())
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "shelf")
	if _, err := fromEnv(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestHTTPTimeout(t *testing.T) {
	t.Setenv("KAYAKO_HTTP_TIMEOUT_SECONDS", "15")
	cfg, err := fromEnv()
	if err != nil {
		t.Fatalf("fromEnv: %v", err)
	}
	if got := cfg.Kayako.HTTPTimeout(); got != 15*time.Second {
		t.Errorf("timeout = %v", got)
	}
}

func TestLoadPluginFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")
	doc := "plugins:\n  kayako:\n    API_KEY: key\n    SECRET_KEY: secret\n    BASE_URL: https://support.example.com\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	file, err := LoadPluginFile(path)
	if err != nil {
		t.Fatalf("LoadPluginFile: %v", err)
	}
	kayako := file.Plugin("kayako")
	if kayako["BASE_URL"] != "https://support.example.com" || kayako["API_KEY"] != "key" {
		t.Errorf("unexpected plugin config %v", kayako)
	}
	if file.Plugin("missing") != nil {
		t.Error("expected nil for unknown plugin")
	}
}

func TestLoadPluginFileEmptyPath(t *testing.T) {
	file, err := LoadPluginFile("")
	if err != nil {
		t.Fatalf("LoadPluginFile: %v", err)
	}
	if len(file.Plugins) != 0 {
		t.Errorf("expected no plugins, got %v", file.Plugins)
	}
}
