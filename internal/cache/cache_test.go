package cache

import (
	"context"
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New[string](1 * time.Second)

	c.Set("key1", "value1")

	val, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1")
	}
	if val != "value1" {
		t.Errorf("Expected value1, got %v", val)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New[int](time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("key1", 42)

	if _, found := c.Get("key1"); !found {
		t.Error("Expected to find key1 immediately")
	}

	now = now.Add(2 * time.Minute)

	if _, found := c.Get("key1"); found {
		t.Error("Expected key1 to be expired")
	}
}

func TestCache_SetWithTTL(t *testing.T) {
	c := New[string](time.Hour)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.SetWithTTL("short", "v", time.Second)
	now = now.Add(2 * time.Second)

	if _, found := c.Get("short"); found {
		t.Error("Expected custom TTL to override the default")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New[string](1 * time.Second)

	c.Set("key1", "value1")
	c.Clear("key1")

	if _, found := c.Get("key1"); found {
		t.Error("Expected key1 to be cleared")
	}
}

func TestCache_ClearAll(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	c.ClearAll()

	for _, k := range []string{"a", "b"} {
		if _, found := c.Get(k); found {
			t.Errorf("Expected %s to be cleared", k)
		}
	}
}

func TestCache_Sweep(t *testing.T) {
	c := New[string](time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("old", "x")
	now = now.Add(2 * time.Minute)
	c.Set("fresh", "y")

	c.sweep()

	if _, ok := c.store.Load("old"); ok {
		t.Error("Expected sweep to drop expired entry")
	}
	if _, ok := c.store.Load("fresh"); !ok {
		t.Error("Expected sweep to keep live entry")
	}
}

func TestCache_StartCleanupStopsWithContext(t *testing.T) {
	c := New[string](time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	c.StartCleanup(ctx, 5*time.Millisecond)
	cancel()
}
