package persistence

import (
	"context"
	crand "crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const sealedPrefix = "sealed:"

// SealedKeys are the configuration keys encrypted at rest.
var SealedKeys = []string{"SECRET_KEY"}

// Sealer encrypts selected configuration values with NaCl secretbox.
type Sealer struct {
	key [32]byte
}

// NewSealer parses a base64-encoded 32-byte key.
func NewSealer(encodedKey string) (*Sealer, error) {
	raw, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("decode seal key: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("seal key must be 32 bytes, got %d", len(raw))
	}
	s := &Sealer{}
	copy(s.key[:], raw)
	return s, nil
}

// Seal encrypts value and tags it with the sealed prefix.
func (s *Sealer) Seal(value string) (string, error) {
	var nonce [24]byte
	if _, err := crand.Read(nonce[:]); err != nil {
		return "", err
	}
	box := secretbox.Seal(nonce[:], []byte(value), &nonce, &s.key)
	return sealedPrefix + base64.StdEncoding.EncodeToString(box), nil
}

// Open decrypts a sealed value. Values without the prefix are returned unchanged.
func (s *Sealer) Open(value string) (string, error) {
	if !strings.HasPrefix(value, sealedPrefix) {
		return value, nil
	}
	box, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("decode sealed value: %w", err)
	}
	if len(box) < 24 {
		return "", errors.New("sealed value too short")
	}
	var nonce [24]byte
	copy(nonce[:], box[:24])
	plain, ok := secretbox.Open(nil, box[24:], &nonce, &s.key)
	if !ok {
		return "", errors.New("sealed value failed authentication")
	}
	return string(plain), nil
}

// SealedStore wraps a store and seals SealedKeys on the way in.
type SealedStore struct {
	PluginConfigStore
	sealer *Sealer
}

// NewSealedStore wraps inner.
func NewSealedStore(inner PluginConfigStore, sealer *Sealer) *SealedStore {
	return &SealedStore{PluginConfigStore: inner, sealer: sealer}
}

// Load opens sealed values.
func (s *SealedStore) Load(ctx context.Context, plugin string) (map[string]string, error) {
	cfg, err := s.PluginConfigStore.Load(ctx, plugin)
	if err != nil {
		return nil, err
	}
	for k, v := range cfg {
		opened, err := s.sealer.Open(v)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", k, err)
		}
		cfg[k] = opened
	}
	return cfg, nil
}

// Save seals SealedKeys before storing.
func (s *SealedStore) Save(ctx context.Context, plugin string, cfg map[string]string) error {
	out := copyConfig(cfg)
	for _, k := range SealedKeys {
		v, ok := out[k]
		if !ok || v == "" {
			continue
		}
		sealed, err := s.sealer.Seal(v)
		if err != nil {
			return fmt.Errorf("seal %s: %w", k, err)
		}
		out[k] = sealed
	}
	return s.PluginConfigStore.Save(ctx, plugin, out)
}
