package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/kayako-bot/internal/config"
	"github.com/spec-kit/kayako-bot/internal/dispatch"
	"github.com/spec-kit/kayako-bot/internal/persistence"
	"github.com/spec-kit/kayako-bot/internal/plugin"
)

func newService(seed *config.PluginFile) (*PluginService, *persistence.MemoryStore) {
	store := persistence.NewMemoryStore()
	logger := zap.NewNop()
	d := dispatch.NewDispatcher(nil, logger)
	return NewPluginService(store, d, seed, logger), store
}

func TestActivateNotConfigured(t *testing.T) {
	svc, _ := newService(nil)
	err := svc.Activate(context.Background(), plugin.NewKayako(zap.NewNop(), plugin.Options{}))
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestActivateSeedsFromFile(t *testing.T) {
	seed := &config.PluginFile{Plugins: map[string]map[string]string{
		"kayako": {"API_KEY": "k", "SECRET_KEY": "s", "BASE_URL": "https://support.example.com"},
	}}
	svc, store := newService(seed)

	if err := svc.Activate(context.Background(), plugin.NewKayako(zap.NewNop(), plugin.Options{})); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	stored, _ := store.Load(context.Background(), "kayako")
	if stored["BASE_URL"] != "https://support.example.com" {
		t.Errorf("seed not persisted: %v", stored)
	}
}

func TestStoredConfigurationWinsOverSeed(t *testing.T) {
	seed := &config.PluginFile{Plugins: map[string]map[string]string{
		"kayako": {"API_KEY": "seed", "SECRET_KEY": "s", "BASE_URL": "https://seed"},
	}}
	svc, store := newService(seed)
	_ = store.Save(context.Background(), "kayako", map[string]string{"API_KEY": "stored", "SECRET_KEY": "s", "BASE_URL": "https://stored"})

	cfg, err := svc.Configuration(context.Background(), plugin.NewKayako(zap.NewNop(), plugin.Options{}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg["API_KEY"] != "stored" {
		t.Errorf("cfg = %v", cfg)
	}
}

func TestConfigureValidates(t *testing.T) {
	svc, store := newService(nil)
	p := plugin.NewKayako(zap.NewNop(), plugin.Options{})

	if err := svc.Configure(context.Background(), p, map[string]string{"API_KEY": "k"}); err == nil {
		t.Fatal("expected incomplete configuration to be rejected")
	}
	good := map[string]string{"API_KEY": "k", "SECRET_KEY": "s", "BASE_URL": "https://x"}
	if err := svc.Configure(context.Background(), p, good); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	stored, _ := store.Load(context.Background(), "kayako")
	if len(stored) != 3 {
		t.Errorf("stored = %v", stored)
	}
}
