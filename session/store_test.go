package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newStoreTest(t *testing.T) (*RedisStore, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(rdb), func() {
		rdb.Close()
		mr.Close()
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	tok := sampleToken()
	encoded, err := Encode(tok)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	key := Key("session", tok.Username)
	if err := store.Set(ctx, key, encoded, time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	data, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SessionID() != tok.SessionID() || got.ExpiresAt != tok.ExpiresAt {
		t.Errorf("stored token mismatch: %+v vs %+v", got, tok)
	}
}

func TestStoreGetMiss(t *testing.T) {
	store, done := newStoreTest(t)
	defer done()

	_, err := store.Get(context.Background(), "session.nobody")
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("get miss = %v, want ErrNoSession", err)
	}
}

func TestStoreDeleteIdempotent(t *testing.T) {
	store, done := newStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := store.Set(ctx, "session.alice", []byte{1}, time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Delete(ctx, "session.alice"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := store.Delete(ctx, "session.alice"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, err := store.Get(ctx, "session.alice"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("get after delete = %v, want ErrNoSession", err)
	}
}

func TestKeyLayout(t *testing.T) {
	tests := []struct {
		username string
		want     string
	}{
		{"alice", "session.alice"},
		{"Alice", "session.alice"},
		{"  @Bob.Smith_99  ", "session.bob.smith_99"},
		{"we!rd/chars", "session.werdchars"},
		{"", "session"},
		{"@", "session"},
	}
	for _, tt := range tests {
		if got := Key("session", tt.username); got != tt.want {
			t.Errorf("Key(session, %q) = %q, want %q", tt.username, got, tt.want)
		}
	}
}
