package tokenstore

import (
	"context"
	"testing"
	"time"
)

func TestNewStoreSupportsNoop(t *testing.T) {
	for _, typ := range []string{"", "none", "disabled"} {
		store, err := NewStore(typ, "", Options{})
		if err != nil {
			t.Fatalf("NewStore(%q): %v", typ, err)
		}
		if err := store.SetToken(context.Background(), "x"); err != nil {
			t.Fatalf("noop SetToken: %v", err)
		}
		token, err := store.Token(context.Background())
		if err != nil || token != "" {
			t.Fatalf("noop store should never return a token, got %q err=%v", token, err)
		}
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("punchcard", "", Options{}); err == nil {
		t.Fatalf("expected error for unknown store type")
	}
}

func TestNewStoreRequiresBoltPath(t *testing.T) {
	if _, err := NewStore("bbolt", "  ", Options{}); err == nil {
		t.Fatalf("expected error for missing bbolt path")
	}
}

func TestNewStoreRequiresRedisAddr(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for missing redis address")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := newMemoryStore(Options{TokenTTL: time.Hour})
	ctx := context.Background()

	if err := store.SetToken(ctx, "tok"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	token, err := store.Token(ctx)
	if err != nil || token != "tok" {
		t.Fatalf("Token = %q err=%v", token, err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	token, _ = store.Token(ctx)
	if token != "" {
		t.Fatalf("expected cleared token, got %q", token)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := newMemoryStore(Options{TokenTTL: 50 * time.Millisecond})
	ctx := context.Background()

	if err := store.SetToken(ctx, "tok"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	time.Sleep(80 * time.Millisecond)

	token, err := store.Token(ctx)
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "" {
		t.Fatalf("expected expired token, got %q", token)
	}
}
