package storage

import "fmt"

// Interval describes a contiguous physical byte range in storage.
//
// Intervals are immutable values: editing operations on files never change an
// interval in place, they replace it. Two intervals are equal iff both fields
// are equal; the storage layer attaches no further meaning to overlap.
type Interval struct {
	start  int
	length int
}

// NewInterval creates an interval for the physical range
// [start, start+length).
//
// Negative start or length is rejected at construction.
func NewInterval(start, length int) (Interval, error) {
	if start < 0 || length < 0 {
		return Interval{}, fmt.Errorf("%w: start=%d length=%d", ErrInvalidInterval, start, length)
	}
	return Interval{start: start, length: length}, nil
}

// Start returns the first physical byte offset of the interval.
func (iv Interval) Start() int {
	return iv.start
}

// Length returns the interval length in bytes.
func (iv Interval) Length() int {
	return iv.length
}

// End returns the physical offset just past the interval.
func (iv Interval) End() int {
	return iv.start + iv.length
}

// IsEmpty reports whether the interval covers no bytes.
func (iv Interval) IsEmpty() bool {
	return iv.length == 0
}

// Slice returns the sub-interval for [from,to) in interval-local offsets.
func (iv Interval) Slice(from, to int) (Interval, error) {
	if from < 0 || to < from || to > iv.length {
		return Interval{}, fmt.Errorf("%w: slice [%d,%d) of length %d", ErrInvalidInterval, from, to, iv.length)
	}
	return Interval{start: iv.start + from, length: to - from}, nil
}

// Cut splits the interval at a local offset into a prefix and a suffix.
func (iv Interval) Cut(at int) (Interval, Interval, error) {
	prefix, err := iv.Slice(0, at)
	if err != nil {
		return Interval{}, Interval{}, err
	}
	suffix, err := iv.Slice(at, iv.length)
	if err != nil {
		return Interval{}, Interval{}, err
	}
	return prefix, suffix, nil
}

// Join returns the concatenation of two physically adjacent intervals.
//
// The boolean is false if other does not start exactly at iv's end; in that
// case iv is returned unchanged.
func (iv Interval) Join(other Interval) (Interval, bool) {
	if iv.End() != other.start {
		return iv, false
	}
	return Interval{start: iv.start, length: iv.length + other.length}, true
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d,%d)", iv.start, iv.End())
}
