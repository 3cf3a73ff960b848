package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://not-redis", nil); err == nil {
		t.Error("expected an error for a non-redis URL")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := NewRedisCache(ctx, "redis://127.0.0.1:1/0", nil)
	if !errors.Is(err, ErrBackend) {
		t.Errorf("NewRedisCache() = %v, want ErrBackend", err)
	}
}

// TestRedisCache runs against a live server named by NETEMBED_TEST_REDIS,
// for example redis://localhost:6379/15.
func TestRedisCache(t *testing.T) {
	url := os.Getenv("NETEMBED_TEST_REDIS")
	if url == "" {
		t.Skip("NETEMBED_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url, nil)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	key := Key("test", t.Name(), time.Now().UnixNano())
	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get on fresh key = (%v, %v)", hit, err)
	}
	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get = (%q, %v, %v)", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry survived Delete")
	}
}
