package storage

import "fmt"

// Memory is a linear in-memory byte store of fixed capacity.
//
// A Memory is the physical backing of one or more files: files reference
// ranges of it through Intervals and never move bytes once written. Memory
// performs no allocation bookkeeping of its own; callers reserve regions,
// usually through an Allocator.
type Memory struct {
	data []byte
}

// NewMemory creates a storage container holding size bytes.
func NewMemory(size int) (*Memory, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: size=%d", ErrOutOfRange, size)
	}
	return &Memory{data: make([]byte, size)}, nil
}

// Size returns the storage capacity in bytes.
func (m *Memory) Size() int {
	return len(m.data)
}

// Write copies length bytes of data, starting at data offset from, into
// storage at physical offset at.
//
// The caller guarantees that the target range has been reserved; Write only
// checks range validity.
func (m *Memory) Write(at int, data []byte, from, length int) error {
	if length < 0 || at < 0 || at+length > len(m.data) {
		return fmt.Errorf("%w: write [%d,%d) into storage of size %d", ErrOutOfRange, at, at+length, len(m.data))
	}
	if from < 0 || from+length > len(data) {
		return fmt.Errorf("%w: write source [%d,%d) of buffer length %d", ErrOutOfRange, from, from+length, len(data))
	}
	copy(m.data[at:at+length], data[from:from+length])
	return nil
}

// Bytes returns a copy of the bytes covered by iv.
func (m *Memory) Bytes(iv Interval) ([]byte, error) {
	if iv.End() > len(m.data) {
		return nil, fmt.Errorf("%w: read %v from storage of size %d", ErrOutOfRange, iv, len(m.data))
	}
	return append([]byte(nil), m.data[iv.Start():iv.End()]...), nil
}

// View returns a zero-copy handle onto the sub-range covered by iv.
func (m *Memory) View(iv Interval) (View, error) {
	if iv.End() > len(m.data) {
		return View{}, fmt.Errorf("%w: view %v of storage of size %d", ErrOutOfRange, iv, len(m.data))
	}
	if iv.IsEmpty() {
		return m.EmptyView(), nil
	}
	return View{src: m, spans: []Interval{iv}}, nil
}

// EmptyView returns a view over no bytes.
func (m *Memory) EmptyView() View {
	return View{src: m}
}
