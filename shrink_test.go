package extents

import (
	"testing"

	"github.com/npillmayer/extents/storage"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func extentCount(t *testing.T, f *File) int {
	t.Helper()
	count := 0
	_ = f.EachExtent(func(int, storage.Interval) error { count++; return nil })
	return count
}

func TestShrinkCoalescesAdjacentExtents(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, alloc := mkFile(t, 4, 128)
	// sequential allocation makes appended extents physically adjacent
	appendChunked(t, f, alloc, "abcdefghijkl", 2)
	if extentCount(t, f) != 6 {
		t.Fatalf("expected 6 extents before shrinking, got %d", extentCount(t, f))
	}
	f.Shrink()
	if err := f.Check(); err != nil {
		t.Fatalf("tree invalid after shrink: %v", err)
	}
	if got := extentCount(t, f); got != 1 {
		t.Fatalf("expected 1 extent after shrinking a root leaf, got %d", got)
	}
	if got := content(t, f); got != "abcdefghijkl" {
		t.Fatalf("shrink changed the content to %q", got)
	}
	if f.Size() != 12 {
		t.Fatalf("shrink changed the size to %d", f.Size())
	}
}

func TestShrinkLeavesGapsAlone(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, alloc := mkFile(t, 4, 128)
	insertString(t, f, alloc, 0, "aaaa")
	if _, err := alloc.Alloc(1); err != nil { // physical gap
		t.Fatalf("cannot allocate gap: %v", err)
	}
	insertString(t, f, alloc, f.Size(), "bbbb")
	f.Shrink()
	if err := f.Check(); err != nil {
		t.Fatalf("tree invalid after shrink: %v", err)
	}
	if got := extentCount(t, f); got != 2 {
		t.Fatalf("expected the gap to prevent coalescing, got %d extents", got)
	}
	if got := content(t, f); got != "aaaabbbb" {
		t.Fatalf("shrink changed the content to %q", got)
	}
}

func TestShrinkRespectsOccupancyFloor(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, alloc := mkFile(t, 2, 256)
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	appendChunked(t, f, alloc, alphabet, 1)
	f.Shrink()
	if err := f.Check(); err != nil {
		t.Fatalf("tree invalid after shrink: %v", err)
	}
	if got := content(t, f); got != alphabet {
		t.Fatalf("shrink changed the content to %q", got)
	}
	if got := extentCount(t, f); got >= 26 {
		t.Fatalf("shrink coalesced nothing, still %d extents", got)
	}
}
