package cache

import (
	"testing"
	"time"

	"github.com/scmmishra/subly/internal/models"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New(10, time.Minute)

	link := &models.Link{Subdomain: "abc", Domain: "d.co", TargetURL: "https://example.com"}
	c.Set(link)

	got, found := c.Get("abc")
	if !found {
		t.Fatal("expected cache hit")
	}
	if got.TargetURL != "https://example.com" {
		t.Errorf("TargetURL = %q, want %q", got.TargetURL, "https://example.com")
	}
}

func TestCache_KeyIsCaseInsensitive(t *testing.T) {
	c := New(10, time.Minute)
	c.Set(&models.Link{Subdomain: "promo"})

	if _, found := c.Get("PROMO"); !found {
		t.Error("expected hit for upper-cased subdomain")
	}
}

func TestCache_GetMiss(t *testing.T) {
	c := New(10, time.Minute)

	_, found := c.Get("nonexistent")
	if found {
		t.Error("expected cache miss")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := New(10, time.Minute)

	c.Set(&models.Link{Subdomain: "abc", Domain: "d.co"})
	c.Invalidate("abc")

	_, found := c.Get("abc")
	if found {
		t.Error("expected cache miss after invalidate")
	}
}

func TestCache_EvictsLRU(t *testing.T) {
	c := New(2, time.Minute)

	c.Set(&models.Link{Subdomain: "a"})
	c.Set(&models.Link{Subdomain: "b"})
	// Access "a" to make "b" the LRU
	c.Get("a")
	c.Set(&models.Link{Subdomain: "c"})

	if _, found := c.Get("b"); found {
		t.Error("expected 'b' to be evicted")
	}
	if _, found := c.Get("a"); !found {
		t.Error("expected 'a' to still be cached")
	}
	if _, found := c.Get("c"); !found {
		t.Error("expected 'c' to be cached")
	}
}

func TestCache_Expires(t *testing.T) {
	c := New(10, 20*time.Millisecond)
	c.Set(&models.Link{Subdomain: "brief"})

	time.Sleep(60 * time.Millisecond)

	if _, found := c.Get("brief"); found {
		t.Error("expected entry to expire")
	}
}
