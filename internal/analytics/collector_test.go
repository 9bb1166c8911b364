package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/scmmishra/subly/internal/geo"
	"github.com/scmmishra/subly/internal/registry"
)

type fakeRecorder struct {
	mu     sync.Mutex
	clicks map[string]int64
	calls  int
	visits map[string][]registry.Visit
	err    error
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{clicks: map[string]int64{}, visits: map[string][]registry.Visit{}}
}

func (f *fakeRecorder) RecordClick(_ context.Context, sub string, n int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.clicks[sub] += n
	return nil
}

func (f *fakeRecorder) RecordVisits(_ context.Context, sub string, visits []registry.Visit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visits[sub] = append(f.visits[sub], visits...)
	return nil
}

func (f *fakeRecorder) total(sub string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clicks[sub]
}

func noGeo() *geo.Reader {
	r, _ := geo.Open("")
	return r
}

func TestCollector_FlushOnShutdown(t *testing.T) {
	rec := newFakeRecorder()
	c := NewCollector(rec, noGeo(), 1000, time.Hour)

	for range 5 {
		c.Push(Visit{Subdomain: "a", At: time.Now()})
	}
	c.Shutdown()

	if n := rec.total("a"); n != 5 {
		t.Fatalf("clicks = %d, want 5", n)
	}
}

func TestCollector_CoalescesPerSubdomain(t *testing.T) {
	rec := newFakeRecorder()
	c := NewCollector(rec, noGeo(), 1000, time.Hour)

	for _, sub := range []string{"a", "b", "a", "a", "b"} {
		c.Push(Visit{Subdomain: sub, At: time.Now()})
	}
	c.Shutdown()

	if rec.calls != 2 {
		t.Errorf("RecordClick calls = %d, want 2", rec.calls)
	}
	if n := rec.total("a"); n != 3 {
		t.Errorf("clicks[a] = %d, want 3", n)
	}
	if n := rec.total("b"); n != 2 {
		t.Errorf("clicks[b] = %d, want 2", n)
	}
}

func TestCollector_PushNonBlockingWhenFull(t *testing.T) {
	rec := newFakeRecorder()
	c := NewCollector(rec, noGeo(), 1, time.Hour)

	// Push 5 events; only 1 fits, the rest are dropped without blocking
	for range 5 {
		c.Push(Visit{Subdomain: "a", At: time.Now()})
	}
	c.Shutdown()

	if n := rec.total("a"); n > 1 {
		t.Fatalf("clicks = %d, want at most 1", n)
	}
}

func TestCollector_FlushOnTicker(t *testing.T) {
	rec := newFakeRecorder()
	c := NewCollector(rec, noGeo(), 1000, 50*time.Millisecond)

	for range 3 {
		c.Push(Visit{Subdomain: "a", At: time.Now()})
	}

	// Wait for at least one tick to flush
	time.Sleep(200 * time.Millisecond)

	if rec.total("a") == 0 {
		t.Fatal("expected clicks to be flushed by ticker, got 0")
	}
	c.Shutdown()
}

func TestCollector_EnrichesVisits(t *testing.T) {
	rec := newFakeRecorder()
	c := NewCollector(rec, noGeo(), 1000, time.Hour)

	c.Push(Visit{
		Subdomain: "a",
		At:        time.Now(),
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	})
	c.Push(Visit{
		Subdomain: "a",
		At:        time.Now(),
		UserAgent: "facebookexternalhit/1.1",
		Preview:   true,
	})
	c.Shutdown()

	visits := rec.visits["a"]
	if len(visits) != 2 {
		t.Fatalf("len(visits) = %d, want 2", len(visits))
	}
	if visits[0].Device != "desktop" || visits[0].Crawler {
		t.Errorf("browser visit = %+v, want desktop non-crawler", visits[0])
	}
	if visits[1].Device != "bot" || !visits[1].Crawler {
		t.Errorf("crawler visit = %+v, want bot crawler", visits[1])
	}
}

func TestCollector_RecorderErrorIsSwallowed(t *testing.T) {
	rec := newFakeRecorder()
	rec.err = errors.New("store down")
	c := NewCollector(rec, noGeo(), 1000, time.Hour)

	c.Push(Visit{Subdomain: "a", At: time.Now()})
	c.Shutdown()

	if len(rec.visits["a"]) != 0 {
		t.Error("visit summary should be skipped when the click update fails")
	}
}
