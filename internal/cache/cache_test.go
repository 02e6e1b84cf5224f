package cache

import (
	"testing"
	"time"
)

func TestTTL_SetGetDelete(t *testing.T) {
	c := NewTTL[string](time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Fatal("empty cache returned a value")
	}

	c.Set("k", "v1")
	if v, ok := c.Get("k"); !ok || v != "v1" {
		t.Fatalf("Get = %q ok=%v", v, ok)
	}

	c.Set("k", "v2")
	if v, _ := c.Get("k"); v != "v2" {
		t.Fatalf("overwrite Get = %q", v)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("value survived Delete")
	}
}

func TestTTL_Expiry(t *testing.T) {
	c := NewTTL[int](50 * time.Millisecond)
	clock := time.Now()
	c.now = func() time.Time { return clock }

	c.Set("k", 7)
	if v, ok := c.Get("k"); !ok || v != 7 {
		t.Fatalf("Get = %d ok=%v", v, ok)
	}

	clock = clock.Add(100 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry still returned")
	}
	if c.Size() != 0 {
		t.Fatalf("Size = %d after lazy collection, want 0", c.Size())
	}
}
