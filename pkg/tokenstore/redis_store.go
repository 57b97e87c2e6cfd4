package tokenstore

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisTokenKey = "lumeo:auth:access_token"

// redisStore implements a Store backed by Redis, for deployments sharing one
// session across processes. Expiry is delegated to the key TTL.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func newRedisStore(opts Options) *redisStore {
	return &redisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		}),
		ttl: opts.TokenTTL,
	}
}

func (r *redisStore) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *redisStore) Token(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, redisTokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (r *redisStore) SetToken(ctx context.Context, token string) error {
	return r.client.Set(ctx, redisTokenKey, token, r.ttl).Err()
}

func (r *redisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, redisTokenKey).Err()
}
