//go:build unit

package cache

import (
	"testing"
	"time"

	"senateur-site/internal/config"
)

func newTestCache(t *testing.T) (*Cache, func()) {
	t.Helper()
	c, err := New(config.CacheConfig{FilePath: "file::memory:"})
	if err != nil {
		t.Fatalf("failed to create test cache: %v", err)
	}
	return c, func() { c.Close() }
}

func TestCache_SetGet(t *testing.T) {
	c, teardown := newTestCache(t)
	defer teardown()

	if err := c.Set("snapshot", []byte(`{"news":[]}`), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := c.Get("snapshot")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"news":[]}` {
		t.Errorf("unexpected value: %s", got)
	}
}

func TestCache_MissAndExpiry(t *testing.T) {
	c, teardown := newTestCache(t)
	defer teardown()

	got, err := c.Get("absent")
	if err != nil || got != nil {
		t.Errorf("cache miss must be (nil, nil), got (%v, %v)", got, err)
	}

	if err := c.Set("stale", []byte("x"), -time.Minute); err != nil {
		t.Fatal(err)
	}
	got, err = c.Get("stale")
	if err != nil || got != nil {
		t.Errorf("expired entry must read as a miss, got (%v, %v)", got, err)
	}
}

func TestCache_Delete(t *testing.T) {
	c, teardown := newTestCache(t)
	defer teardown()

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if got, _ := c.Get("k"); got != nil {
		t.Errorf("expected delete to remove the entry, got %s", got)
	}
}
