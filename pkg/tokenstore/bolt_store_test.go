package tokenstore

import (
	"context"
	"testing"
	"time"
)

func TestBoltStoreSetGetClear(t *testing.T) {
	dir := t.TempDir()
	store, err := openBolt(dir+"/tokens.db", Options{TokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	token, err := store.Token(ctx)
	if err != nil || token != "" {
		t.Fatalf("expected empty store, got token=%q err=%v", token, err)
	}

	if err := store.SetToken(ctx, "tok-abc"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	token, err = store.Token(ctx)
	if err != nil || token != "tok-abc" {
		t.Fatalf("Token = %q err=%v", token, err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	token, err = store.Token(ctx)
	if err != nil || token != "" {
		t.Fatalf("expected cleared store, got token=%q err=%v", token, err)
	}
}

func TestBoltStoreExpiresToken(t *testing.T) {
	dir := t.TempDir()
	store, err := openBolt(dir+"/tokens.db", Options{TokenTTL: time.Second})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.SetToken(ctx, "short-lived"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)

	token, err := store.Token(ctx)
	if err != nil {
		t.Fatalf("Token after expiry: %v", err)
	}
	if token != "" {
		t.Fatalf("expected expired token to be dropped, got %q", token)
	}
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/tokens.db"

	store, err := openBolt(path, Options{TokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	if err := store.SetToken(context.Background(), "persisted"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := openBolt(path, Options{TokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	token, err := reopened.Token(context.Background())
	if err != nil || token != "persisted" {
		t.Fatalf("Token after reopen = %q err=%v", token, err)
	}
}
