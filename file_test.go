package extents

import (
	"errors"
	"testing"

	"github.com/npillmayer/extents/storage"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// mkFile creates a file plus its backing storage and allocator.
func mkFile(t *testing.T, degree, capacity int) (*File, *storage.Allocator) {
	t.Helper()
	mem, err := storage.NewMemory(capacity)
	if err != nil {
		t.Fatalf("cannot create storage: %v", err)
	}
	f, err := NewFile("test", mem, degree)
	if err != nil {
		t.Fatalf("cannot create file: %v", err)
	}
	return f, storage.NewAllocator(mem)
}

// insertString allocates one extent for data and inserts it at start,
// validating the tree afterwards.
func insertString(t *testing.T, f *File, alloc *storage.Allocator, start int, data string) {
	t.Helper()
	iv, err := alloc.Alloc(len(data))
	if err != nil {
		t.Fatalf("cannot allocate %d bytes: %v", len(data), err)
	}
	if err := f.Insert(start, []storage.Interval{iv}, []byte(data)); err != nil {
		t.Fatalf("cannot insert %q at %d: %v", data, start, err)
	}
	if err := f.Check(); err != nil {
		t.Fatalf("tree invalid after inserting %q at %d: %v", data, start, err)
	}
}

// appendChunked appends data fragment-wise, one extent per fragment.
func appendChunked(t *testing.T, f *File, alloc *storage.Allocator, data string, fragLen int) {
	t.Helper()
	for from := 0; from < len(data); from += fragLen {
		to := from + fragLen
		if to > len(data) {
			to = len(data)
		}
		insertString(t, f, alloc, f.Size(), data[from:to])
	}
}

func content(t *testing.T, f *File) string {
	t.Helper()
	return string(f.ReadAll().Bytes())
}

func TestNewFileRejectsBadArguments(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	mem, _ := storage.NewMemory(64)
	if _, err := NewFile("x", nil, 2); !errors.Is(err, ErrIllegalArguments) {
		t.Fatalf("expected ErrIllegalArguments for nil storage, got %v", err)
	}
	if _, err := NewFile("x", mem, 1); !errors.Is(err, ErrIllegalArguments) {
		t.Fatalf("expected ErrIllegalArguments for degree 1, got %v", err)
	}
}

func TestEmptyFile(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, _ := mkFile(t, 2, 64)
	if f.Size() != 0 || f.Name() != "test" {
		t.Fatalf("unexpected fresh file state: size=%d name=%q", f.Size(), f.Name())
	}
	if err := f.Check(); err != nil {
		t.Fatalf("fresh file fails validation: %v", err)
	}
	if got := content(t, f); got != "" {
		t.Fatalf("empty file yields content %q", got)
	}
}

func TestEachExtentVisitsInLogicalOrder(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, alloc := mkFile(t, 2, 128)
	appendChunked(t, f, alloc, "abcdefghijklmnopqrstuvwxyz", 2)
	offsets := []int{}
	total := 0
	err := f.EachExtent(func(offset int, iv storage.Interval) error {
		offsets = append(offsets, offset)
		if offset != total {
			t.Fatalf("extent at offset %d, expected %d", offset, total)
		}
		total += iv.Length()
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offsets) != 13 || total != 26 {
		t.Fatalf("visited %d extents covering %d bytes", len(offsets), total)
	}
}

func TestEachExtentStopsOnError(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, alloc := mkFile(t, 2, 128)
	appendChunked(t, f, alloc, "abcdefgh", 2)
	boom := errors.New("boom")
	visits := 0
	err := f.EachExtent(func(offset int, iv storage.Interval) error {
		visits++
		if visits == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) || visits != 2 {
		t.Fatalf("expected iteration to stop at second extent, visits=%d err=%v", visits, err)
	}
}
