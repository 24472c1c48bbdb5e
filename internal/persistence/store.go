package persistence

import (
	"context"
	"sync"
)

// PluginConfigStore persists plugin configuration on behalf of the host.
type PluginConfigStore interface {
	Load(ctx context.Context, plugin string) (map[string]string, error)
	Save(ctx context.Context, plugin string, cfg map[string]string) error
	Ping(ctx context.Context) error
}

// MemoryStore keeps configuration in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	plugins map[string]map[string]string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plugins: make(map[string]map[string]string)}
}

// Load returns a copy of the plugin's configuration; unknown plugins yield an empty map.
func (m *MemoryStore) Load(_ context.Context, plugin string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyConfig(m.plugins[plugin]), nil
}

// Save replaces the plugin's configuration.
func (m *MemoryStore) Save(_ context.Context, plugin string, cfg map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plugins[plugin] = copyConfig(cfg)
	return nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error { return nil }

func copyConfig(cfg map[string]string) map[string]string {
	out := make(map[string]string, len(cfg))
	for k, v := range cfg {
		out[k] = v
	}
	return out
}
