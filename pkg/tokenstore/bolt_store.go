package tokenstore

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	authBucket       = "auth"
	tokenKey         = "access_token"
	expiryValueBytes = 8
)

// boltStore implements a Store backed by BoltDB. The token survives process
// restarts and carries its own expiry, encoded in the value's first 8 bytes.
type boltStore struct {
	db  *bolt.DB
	ttl time.Duration
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create token store directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(authBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db, ttl: opts.TokenTTL}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Token returns the stored token, deleting and ignoring it once expired.
func (b *boltStore) Token(context.Context) (string, error) {
	if b == nil || b.db == nil {
		return "", nil
	}

	var token string
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(authBucket))
		if bucket == nil {
			return fmt.Errorf("auth bucket missing")
		}

		value := bucket.Get([]byte(tokenKey))
		if value == nil {
			return nil
		}

		expiry, raw, ok := decodeToken(value)
		if !ok || !expiry.After(time.Now()) {
			return bucket.Delete([]byte(tokenKey))
		}

		token = raw
		return nil
	})
	return token, err
}

// SetToken stores the token with a fresh expiry.
func (b *boltStore) SetToken(_ context.Context, token string) error {
	if b == nil || b.db == nil {
		return nil
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(authBucket))
		if bucket == nil {
			return fmt.Errorf("auth bucket missing")
		}
		return bucket.Put([]byte(tokenKey), encodeToken(token, time.Now().Add(b.ttl)))
	})
}

// Clear removes the stored token.
func (b *boltStore) Clear(context.Context) error {
	if b == nil || b.db == nil {
		return nil
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(authBucket))
		if bucket == nil {
			return fmt.Errorf("auth bucket missing")
		}
		return bucket.Delete([]byte(tokenKey))
	})
}

// encodeToken prefixes the token bytes with a big-endian expiry timestamp.
func encodeToken(token string, expiry time.Time) []byte {
	buf := make([]byte, expiryValueBytes+len(token))
	binary.BigEndian.PutUint64(buf, uint64(expiry.Unix()))
	copy(buf[expiryValueBytes:], token)
	return buf
}

// decodeToken splits a stored value into expiry and token.
func decodeToken(value []byte) (time.Time, string, bool) {
	if len(value) < expiryValueBytes {
		return time.Time{}, "", false
	}
	unix := int64(binary.BigEndian.Uint64(value))
	if unix <= 0 {
		return time.Time{}, "", false
	}
	return time.Unix(unix, 0), string(value[expiryValueBytes:]), true
}
