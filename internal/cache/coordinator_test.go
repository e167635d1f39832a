package cache

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func newTestCoordinator(t *testing.T, clk clock.Clock) *Coordinator {
	t.Helper()
	memory := NewMemoryTier(100, clk)
	disk, err := NewDiskTier(t.TempDir(), clk)
	if err != nil {
		t.Fatalf("NewDiskTier: %v", err)
	}
	return NewCoordinator(memory, disk)
}

// waitForDisk polls until the disk tier holds n files, bounding the wait for
// the coordinator's asynchronous disk writes.
func waitForDisk(t *testing.T, d *DiskTier, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for d.Size() != n && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if d.Size() != n {
		t.Fatalf("disk size = %d, want %d", d.Size(), n)
	}
}

func TestCoordinatorReadThrough(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t, clock.NewMock())

	if _, ok := c.Get(ctx, ClassVideo.Key("abc")); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set(ctx, ClassVideo.Key("abc"), []byte("payload"))
	got, ok := c.Get(ctx, ClassVideo.Key("abc"))
	if !ok || string(got) != "payload" {
		t.Fatalf("got %q/%v, want payload hit", got, ok)
	}

	s := c.Stats()
	if s.FastHits != 1 || s.Misses != 1 {
		t.Errorf("stats = %+v, want fastHits=1 misses=1", s)
	}
}

func TestCoordinatorDurableClassWritesDisk(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t, clock.NewMock())

	c.Set(ctx, ClassVideo.Key("abc"), []byte("x"))
	waitForDisk(t, c.Disk(), 1)
}

func TestCoordinatorMemoryOnlyClassSkipsDisk(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t, clock.NewMock())

	c.Set(ctx, ClassSearch.Key("q=cats"), []byte("x"))

	// Give a hypothetical stray async write a moment to land.
	time.Sleep(20 * time.Millisecond)
	if c.Disk().Size() != 0 {
		t.Errorf("search entries must not touch the disk tier, size = %d", c.Disk().Size())
	}
}

func TestCoordinatorBackfillAfterMemoryLoss(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t, clock.NewMock())

	key := ClassLyrics.Key("abc")
	c.Set(ctx, key, []byte("verse one"))
	waitForDisk(t, c.Disk(), 1)

	// Simulates a restart: memory is gone, disk survives.
	c.Memory().Clear()

	got, ok := c.Get(ctx, key)
	if !ok || string(got) != "verse one" {
		t.Fatalf("got %q/%v, want disk hit", got, ok)
	}
	if c.Stats().SlowHits != 1 {
		t.Errorf("slowHits = %d, want 1", c.Stats().SlowHits)
	}

	// The backfill lands in memory, so the next read is a fast hit.
	if _, ok := c.Memory().Get(key); !ok {
		t.Error("disk hit was not backfilled into memory")
	}
}

func TestCoordinatorTTLOverride(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock()
	c := newTestCoordinator(t, clk)

	key := ClassVideo.Key("short-lived")
	c.SetTTL(ctx, key, []byte("x"), time.Second)
	waitForDisk(t, c.Disk(), 1)
	clk.Add(2 * time.Second)

	if _, ok := c.Get(ctx, key); ok {
		t.Fatal("override TTL ignored, entry outlived one second")
	}
}

func TestCoordinatorDeleteRemovesBothTiers(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t, clock.NewMock())

	key := ClassChannel.Key("UC1")
	c.Set(ctx, key, []byte("x"))
	waitForDisk(t, c.Disk(), 1)

	c.Delete(ctx, key)
	if _, ok := c.Memory().Get(key); ok {
		t.Error("entry survived in memory")
	}
	if _, ok := c.Disk().Get(key); ok {
		t.Error("entry survived on disk")
	}
}

func TestCoordinatorClearClass(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t, clock.NewMock())

	c.Set(ctx, ClassSearch.Key("q=a"), []byte("1"))
	c.Set(ctx, ClassSearch.Key("q=b"), []byte("2"))
	c.Set(ctx, ClassVideo.Key("v"), []byte("3"))

	if removed := c.ClearClass(ClassSearch); removed != 2 {
		t.Errorf("ClearClass removed %d, want 2", removed)
	}
	if _, ok := c.Get(ctx, ClassVideo.Key("v")); !ok {
		t.Error("entry of another class was cleared")
	}
}
