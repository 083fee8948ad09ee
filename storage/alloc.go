package storage

import "fmt"

// Allocator hands out unused storage regions.
//
// The allocator is sequential: regions are reserved front to back and never
// reclaimed. This matches the copy-on-write discipline of the file core,
// where freed extents are compacted by rewriting, not by reuse in place.
type Allocator struct {
	m    *Memory
	next int
}

// NewAllocator creates an allocator over the full capacity of m.
func NewAllocator(m *Memory) *Allocator {
	return &Allocator{m: m}
}

// Alloc reserves n bytes and returns the covering interval.
func (a *Allocator) Alloc(n int) (Interval, error) {
	if n < 0 {
		return Interval{}, fmt.Errorf("%w: alloc %d bytes", ErrInvalidInterval, n)
	}
	if a.next+n > a.m.Size() {
		return Interval{}, fmt.Errorf("%w: %d bytes requested, %d free", ErrStorageFull, n, a.Free())
	}
	iv := Interval{start: a.next, length: n}
	a.next += n
	return iv, nil
}

// Free returns the remaining unreserved capacity in bytes.
func (a *Allocator) Free() int {
	return a.m.Size() - a.next
}
