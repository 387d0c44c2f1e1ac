package storage

import (
	"context"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"github.com/redis/go-redis/v9"
)

type redisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage connects to the configured Redis server. Keys are stored
// without expiry under the configured prefix.
func NewRedisStorage(ctx context.Context, cfg config.RedisConfig) (repository.DeviceStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "failed to ping redis at %s", cfg.Addr)
	}

	return newRedisStorage(client, cfg.KeyPrefix), nil
}

func newRedisStorage(client *redis.Client, prefix string) *redisStorage {
	return &redisStorage{client: client, prefix: prefix}
}

func (s *redisStorage) GetItem(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrStorageKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read key %s", key)
	}

	return value, nil
}

func (s *redisStorage) SetItem(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to write key %s", key)
	}

	return nil
}

func (s *redisStorage) RemoveItems(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = s.prefix + key
	}

	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		return errors.Wrap(err, "failed to remove keys")
	}

	return nil
}

func (s *redisStorage) Close() error {
	return errors.WithStack(s.client.Close())
}
