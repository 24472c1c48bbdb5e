package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/kayako-bot/internal/config"
	"github.com/spec-kit/kayako-bot/internal/dispatch"
	"github.com/spec-kit/kayako-bot/internal/persistence"
)

// ErrNotConfigured is returned when a plugin has no stored configuration.
var ErrNotConfigured = errors.New("plugin is not configured")

// PluginService activates plugins with their host-managed configuration.
type PluginService struct {
	store      persistence.PluginConfigStore
	dispatcher *dispatch.Dispatcher
	seed       *config.PluginFile
	logger     *zap.Logger
}

// NewPluginService creates the service. seed may be nil.
func NewPluginService(store persistence.PluginConfigStore, dispatcher *dispatch.Dispatcher, seed *config.PluginFile, logger *zap.Logger) *PluginService {
	return &PluginService{store: store, dispatcher: dispatcher, seed: seed, logger: logger}
}

// Configuration returns the stored configuration for p. When nothing is
// stored yet and the seed file has an entry, the seed is persisted first.
func (s *PluginService) Configuration(ctx context.Context, p dispatch.Plugin) (map[string]string, error) {
	cfg, err := s.store.Load(ctx, p.Name())
	if err != nil {
		return nil, fmt.Errorf("load %s configuration: %w", p.Name(), err)
	}
	if len(cfg) > 0 {
		return cfg, nil
	}

	seeded := s.seed.Plugin(p.Name())
	if len(seeded) == 0 {
		return nil, ErrNotConfigured
	}
	if err := s.store.Save(ctx, p.Name(), seeded); err != nil {
		return nil, fmt.Errorf("save %s configuration: %w", p.Name(), err)
	}
	s.logger.Info("plugin configuration seeded from file", zap.String("plugin", p.Name()))
	return seeded, nil
}

// Configure validates cfg and stores it for p.
func (s *PluginService) Configure(ctx context.Context, p dispatch.Plugin, cfg map[string]string) error {
	if err := p.ValidateConfiguration(cfg); err != nil {
		return err
	}
	return s.store.Save(ctx, p.Name(), cfg)
}

// Activate loads p's configuration and activates it on the dispatcher.
func (s *PluginService) Activate(ctx context.Context, p dispatch.Plugin) error {
	cfg, err := s.Configuration(ctx, p)
	if err != nil {
		return err
	}
	return s.dispatcher.Load(p, cfg)
}
