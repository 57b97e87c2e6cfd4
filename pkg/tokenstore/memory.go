package tokenstore

import (
	"context"
	"sync"
	"time"
)

// memoryStore keeps the token in process memory; suitable for tests and
// short-lived CLI runs.
type memoryStore struct {
	mu     sync.RWMutex
	token  string
	expiry time.Time
	ttl    time.Duration
}

func newMemoryStore(opts Options) *memoryStore {
	return &memoryStore{ttl: opts.TokenTTL}
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) Token(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" || !m.expiry.After(time.Now()) {
		return "", nil
	}
	return m.token, nil
}

func (m *memoryStore) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.expiry = time.Now().Add(m.ttl)
	return nil
}

func (m *memoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.expiry = time.Time{}
	return nil
}
