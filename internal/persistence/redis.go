package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/kayako-bot/internal/config"
)

// Redis stores plugin configuration as one hash per plugin.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

func configKey(plugin string) string {
	return "plugin:" + plugin + ":config"
}

// Load reads the plugin's hash. A missing hash yields an empty map.
func (r *Redis) Load(ctx context.Context, plugin string) (map[string]string, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("redis client not configured")
	}
	return r.Client.HGetAll(ctx, configKey(plugin)).Result()
}

// Save replaces the plugin's hash atomically.
func (r *Redis) Save(ctx context.Context, plugin string, cfg map[string]string) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	key := configKey(plugin)
	_, err := r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(cfg) == 0 {
			return nil
		}
		fields := make([]interface{}, 0, 2*len(cfg))
		for k, v := range cfg {
			fields = append(fields, k, v)
		}
		pipe.HSet(ctx, key, fields...)
		return nil
	})
	return err
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
