package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_Success(t *testing.T) {
	s := miniredis.RunT(t)

	c, err := OpenRedis(s.Addr(), 2)
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if got := c.Options().DB; got != 2 {
		t.Fatalf("client DB = %d, want 2", got)
	}
}

func TestOpenRedis_Failure(t *testing.T) {
	if _, err := OpenRedis("127.0.0.1:1", 0); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRedisStore(t *testing.T) {
	s := miniredis.RunT(t)
	client, err := OpenRedis(s.Addr(), 0)
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	store := NewRedisStore(client, time.Minute)
	if store.Name() != "redis" {
		t.Errorf("Name() = %q, want redis", store.Name())
	}

	if _, ok, err := store.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set err: %v", err)
	}
	got, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("Get = %q, %v, %v", got, ok, err)
	}
	if ttl := s.TTL("k"); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}

	s.FastForward(2 * time.Minute)
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Error("expected key to expire")
	}
}

func TestRedisStore_ServerDown(t *testing.T) {
	s := miniredis.RunT(t)
	client, err := OpenRedis(s.Addr(), 0)
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	s.Close()

	store := NewRedisStore(client, time.Minute)
	if _, _, err := store.Get(context.Background(), "k"); err == nil {
		t.Error("expected error from stopped server")
	}
}
