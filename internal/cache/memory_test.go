package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestMemoryGetSet(t *testing.T) {
	m := NewMemoryTier(10, clock.NewMock())

	if _, ok := m.Get("a"); ok {
		t.Fatal("expected miss on empty tier")
	}

	m.Set("a", []byte("value-a"), time.Minute)
	got, ok := m.Get("a")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if string(got) != "value-a" {
		t.Errorf("got %q, want %q", got, "value-a")
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	clk := clock.NewMock()
	m := NewMemoryTier(10, clk)

	m.Set("a", []byte("x"), time.Minute)
	clk.Add(59 * time.Second)
	if _, ok := m.Get("a"); !ok {
		t.Fatal("entry expired before its TTL")
	}
	clk.Add(2 * time.Second)
	if _, ok := m.Get("a"); ok {
		t.Fatal("entry readable past its TTL")
	}
	if m.Size() != 0 {
		t.Errorf("expired entry not removed on read, size = %d", m.Size())
	}
}

func TestMemoryPermanentEntryNeverExpires(t *testing.T) {
	clk := clock.NewMock()
	m := NewMemoryTier(10, clk)

	m.Set("a", []byte("x"), Permanent)
	clk.Add(1000 * time.Hour)
	if _, ok := m.Get("a"); !ok {
		t.Fatal("permanent entry expired")
	}
}

func TestMemoryEvictsExactlyOneOldest(t *testing.T) {
	m := NewMemoryTier(3, clock.NewMock())

	m.Set("first", []byte("1"), Permanent)
	m.Set("second", []byte("2"), Permanent)
	m.Set("third", []byte("3"), Permanent)
	m.Set("fourth", []byte("4"), Permanent)

	if m.Size() != 3 {
		t.Fatalf("size = %d, want 3", m.Size())
	}
	if _, ok := m.Get("first"); ok {
		t.Error("oldest entry survived eviction")
	}
	for _, key := range []string{"second", "third", "fourth"} {
		if _, ok := m.Get(key); !ok {
			t.Errorf("entry %q evicted, only the oldest should have been", key)
		}
	}
}

func TestMemoryEvictionPrefersExpiredEntries(t *testing.T) {
	clk := clock.NewMock()
	m := NewMemoryTier(3, clk)

	m.Set("live", []byte("1"), Permanent)
	m.Set("dying", []byte("2"), time.Second)
	m.Set("live2", []byte("3"), Permanent)
	clk.Add(2 * time.Second)

	// At capacity with one expired entry: the purge frees room, so no live
	// entry is evicted.
	m.Set("new", []byte("4"), Permanent)

	if _, ok := m.Get("live"); !ok {
		t.Error("live entry evicted while an expired one was reclaimable")
	}
	if _, ok := m.Get("dying"); ok {
		t.Error("expired entry survived the purge")
	}
	if _, ok := m.Get("new"); !ok {
		t.Error("new entry missing after insert")
	}
}

func TestMemoryOverwriteKeepsInsertionPosition(t *testing.T) {
	m := NewMemoryTier(2, clock.NewMock())

	m.Set("a", []byte("1"), Permanent)
	m.Set("b", []byte("2"), Permanent)
	// Overwriting does not refresh a's position: it stays the oldest.
	m.Set("a", []byte("1-bis"), Permanent)
	m.Set("c", []byte("3"), Permanent)

	if _, ok := m.Get("a"); ok {
		t.Error("overwritten entry should still have been the eviction victim")
	}
	if _, ok := m.Get("b"); !ok {
		t.Error("entry b evicted unexpectedly")
	}
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemoryTier(10, clock.NewMock())
	m.Set("a", []byte("x"), Permanent)

	if !m.Delete("a") {
		t.Error("Delete returned false for existing entry")
	}
	if m.Delete("a") {
		t.Error("Delete returned true for absent entry")
	}
}

func TestMemoryDeletePrefix(t *testing.T) {
	m := NewMemoryTier(10, clock.NewMock())
	m.Set("search:q=a", []byte("1"), Permanent)
	m.Set("search:q=b", []byte("2"), Permanent)
	m.Set("lyrics:v1", []byte("3"), Permanent)

	if removed := m.DeletePrefix("search:"); removed != 2 {
		t.Errorf("DeletePrefix removed %d, want 2", removed)
	}
	if _, ok := m.Get("lyrics:v1"); !ok {
		t.Error("entry outside the prefix was removed")
	}
}

func TestMemoryClear(t *testing.T) {
	m := NewMemoryTier(10, clock.NewMock())
	for i := 0; i < 5; i++ {
		m.Set(fmt.Sprintf("k%d", i), []byte("x"), Permanent)
	}
	m.Clear()
	if m.Size() != 0 {
		t.Errorf("size after Clear = %d, want 0", m.Size())
	}
}

func TestMemoryBackgroundSweep(t *testing.T) {
	clk := clock.NewMock()
	m := NewMemoryTier(10, clk)
	defer m.Stop()

	m.Set("short", []byte("x"), time.Second)
	m.Set("long", []byte("y"), time.Hour)
	m.StartSweep(10 * time.Second)

	clk.Add(30 * time.Second)

	// Sweep runs on the mock clock's goroutine schedule; size settles
	// without any Get touching the expired key.
	deadline := time.Now().Add(time.Second)
	for m.Size() != 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if m.Size() != 1 {
		t.Errorf("size after sweep = %d, want 1", m.Size())
	}
}

func TestMemoryStats(t *testing.T) {
	m := NewMemoryTier(10, clock.NewMock())
	m.Set("a", []byte("x"), Permanent)
	m.Get("a")
	m.Get("a")
	m.Get("missing")

	s := m.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Sets != 1 {
		t.Errorf("stats = %+v, want hits=2 misses=1 sets=1", s)
	}
	if s.HitRate < 0.66 || s.HitRate > 0.67 {
		t.Errorf("hit rate = %v, want ~0.667", s.HitRate)
	}
}
