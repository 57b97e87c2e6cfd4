package tokenstore

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Package tokenstore persists the API access token between runs. The request
// client reads it before every call and clears it when the backend answers 401.

// Store is the persisted key-value surface for the access token.
type Store interface {
	Close() error
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Options controls retention and backend settings for concrete stores.
type Options struct {
	TokenTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

const defaultTokenTTL = 12 * time.Hour

// NewStore creates the configured token store backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "memory":
		return newMemoryStore(opts), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt token store requires a path")
		}
		return openBolt(path, opts)
	case "redis":
		if strings.TrimSpace(opts.RedisAddr) == "" {
			return nil, fmt.Errorf("redis token store requires an address")
		}
		return newRedisStore(opts), nil
	default:
		return nil, fmt.Errorf("unsupported token store type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                          { return nil }
func (noopStore) Token(context.Context) (string, error) { return "", nil }
func (noopStore) SetToken(context.Context, string) error {
	return nil
}
func (noopStore) Clear(context.Context) error { return nil }
