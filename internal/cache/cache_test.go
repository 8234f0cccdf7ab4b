package cache

import (
	"context"
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := New(true)
	defer c.Close()
	ctx := context.Background()

	etag := c.Set(ctx, "career:2544", []byte(`{"a":1}`), time.Minute)

	data, got, ok := c.Get(ctx, "career:2544")
	if !ok {
		t.Fatal("Get: want hit")
	}
	if string(data) != `{"a":1}` {
		t.Errorf("data = %s", data)
	}
	if got != etag {
		t.Errorf("etag = %q; want %q", got, etag)
	}
}

func TestCache_Expired(t *testing.T) {
	c := New(true)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), -time.Second)

	if _, _, ok := c.Get(ctx, "k"); ok {
		t.Error("Get expired entry: want miss")
	}
	c.evict()
	if n := c.Stats()["total_keys"]; n != 0 {
		t.Errorf("total_keys after evict = %v; want 0", n)
	}
}

func TestCache_Disabled(t *testing.T) {
	c := New(false)
	ctx := context.Background()

	etag := c.Set(ctx, "k", []byte("v"), time.Minute)
	if etag != ComputeETag([]byte("v")) {
		t.Errorf("disabled Set etag = %q", etag)
	}
	if _, _, ok := c.Get(ctx, "k"); ok {
		t.Error("disabled cache returned a hit")
	}
}

func TestCache_Delete(t *testing.T) {
	c := New(true)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "profile:1", []byte("v"), time.Minute)
	c.Delete(ctx, "profile:1")

	if _, _, ok := c.Get(ctx, "profile:1"); ok {
		t.Error("Get after Delete: want miss")
	}
}

func TestComputeETag_Stable(t *testing.T) {
	a := ComputeETag([]byte("same"))
	b := ComputeETag([]byte("same"))
	if a != b {
		t.Errorf("ETag not stable: %q vs %q", a, b)
	}
	if a == ComputeETag([]byte("different")) {
		t.Error("different payloads share an ETag")
	}
}
