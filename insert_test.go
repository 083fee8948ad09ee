package extents

import (
	"errors"
	"testing"

	"github.com/npillmayer/extents/storage"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestInsertValidation(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, alloc := mkFile(t, 2, 64)
	iv, _ := alloc.Alloc(4)
	if err := f.Insert(1, []storage.Interval{iv}, []byte("abcd")); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected ErrIndexOutOfBounds for insert past the end, got %v", err)
	}
	if err := f.Insert(0, []storage.Interval{iv}, []byte("abc")); !errors.Is(err, ErrIllegalArguments) {
		t.Fatalf("expected ErrIllegalArguments for length mismatch, got %v", err)
	}
	if f.Size() != 0 {
		t.Fatalf("failed inserts changed the file size to %d", f.Size())
	}
}

func TestAppendGrowsTree(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, alloc := mkFile(t, 2, 128)
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	appendChunked(t, f, alloc, alphabet, 2)
	if f.Size() != 26 {
		t.Fatalf("unexpected file size %d", f.Size())
	}
	if got := content(t, f); got != alphabet {
		t.Fatalf("unexpected content %q", got)
	}
	if f.root.isLeaf() {
		t.Fatalf("13 extents at degree 2 should have split the root")
	}
}

func TestPrepend(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, alloc := mkFile(t, 2, 64)
	insertString(t, f, alloc, 0, "world")
	insertString(t, f, alloc, 0, "hello ")
	if got := content(t, f); got != "hello world" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestInsertAtExtentBoundary(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, alloc := mkFile(t, 2, 64)
	insertString(t, f, alloc, 0, "aaaa")
	insertString(t, f, alloc, f.Size(), "bbbb")
	insertString(t, f, alloc, 4, "XX")
	if got := content(t, f); got != "aaaaXXbbbb" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestInsertStraddlingAnExtent(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, alloc := mkFile(t, 2, 64)
	insertString(t, f, alloc, 0, "aaaa")
	insertString(t, f, alloc, f.Size(), "bbbb")
	// offset 2 is strictly inside the first extent, which has to be cut
	insertString(t, f, alloc, 2, "XX")
	if got := content(t, f); got != "aaXXaabbbb" {
		t.Fatalf("unexpected content %q", got)
	}
	if f.Size() != 10 {
		t.Fatalf("unexpected file size %d", f.Size())
	}
}

func TestInsertManyIntervalsAtOnce(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, alloc := mkFile(t, 2, 64)
	ivs := make([]storage.Interval, 0, 3)
	for range [3]int{} {
		iv, err := alloc.Alloc(2)
		if err != nil {
			t.Fatalf("cannot allocate: %v", err)
		}
		ivs = append(ivs, iv)
	}
	if err := f.Insert(0, ivs, []byte("abcdef")); err != nil {
		t.Fatalf("cannot insert batch: %v", err)
	}
	if err := f.Check(); err != nil {
		t.Fatalf("tree invalid after batch insert: %v", err)
	}
	if got := content(t, f); got != "abcdef" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestZeroLengthIntervalsAreDropped(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, alloc := mkFile(t, 2, 64)
	iv, _ := alloc.Alloc(3)
	empty, _ := storage.NewInterval(0, 0)
	if err := f.Insert(0, []storage.Interval{empty, iv, empty}, []byte("abc")); err != nil {
		t.Fatalf("cannot insert: %v", err)
	}
	if err := f.Check(); err != nil {
		t.Fatalf("tree invalid: %v", err)
	}
	count := 0
	_ = f.EachExtent(func(int, storage.Interval) error { count++; return nil })
	if count != 1 {
		t.Fatalf("expected 1 live extent, found %d", count)
	}
}

func TestInterleavedInsertsMatchModel(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, alloc := mkFile(t, 2, 1024)
	model := ""
	script := []struct {
		at   int
		data string
	}{
		{0, "mmmm"}, {0, "aaaa"}, {8, "zzzz"}, {4, "ee"}, {7, "ii"},
		{0, "11"}, {18, "99"}, {10, "qqq"}, {3, "t"}, {14, "uu"},
	}
	for _, op := range script {
		insertString(t, f, alloc, op.at, op.data)
		model = model[:op.at] + op.data + model[op.at:]
		if got := content(t, f); got != model {
			t.Fatalf("after inserting %q at %d: got %q, want %q", op.data, op.at, got, model)
		}
	}
}
