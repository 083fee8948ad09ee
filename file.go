package extents

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"

	"github.com/npillmayer/extents/storage"
)

// File maps a logical byte stream onto extents of physical storage.
//
// A file does not own its bytes: it references ranges of a backing storage
// container and keeps them in logical order in a balanced multiway tree.
// Several files may share one storage container.
//
// Methods that take or return positions use logical byte offsets.
//
// Mutating operations (Insert, Remove, Shrink) must be serialized by the
// caller; reads are safe to run concurrently with each other, but not with
// mutations.
type File struct {
	name    string
	storage *storage.Memory
	degree  int
	maxKeys int
	root    *node
	size    int
}

// NewFile creates an empty file of the given tree degree on top of a backing
// storage container. The degree controls node fan-out: nodes hold between
// degree-1 and 2*degree-1 extents (the root is exempt from the lower bound).
func NewFile(name string, store *storage.Memory, degree int) (*File, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: file needs backing storage", ErrIllegalArguments)
	}
	if degree < 2 {
		return nil, fmt.Errorf("%w: tree degree must be at least 2, is %d", ErrIllegalArguments, degree)
	}
	return &File{
		name:    name,
		storage: store,
		degree:  degree,
		maxKeys: 2*degree - 1,
		root:    newNode(degree),
	}, nil
}

// Name returns the file's name.
func (f *File) Name() string {
	return f.name
}

// Size returns the logical length of the file in bytes.
func (f *File) Size() int {
	return f.size
}

// EachExtent visits the file's extents in logical order, handing each extent
// to fn together with its logical start offset. Iteration stops at the first
// callback error and returns that error.
func (f *File) EachExtent(fn func(offset int, iv storage.Interval) error) error {
	offset := 0
	return f.eachExtent(f.root, &offset, fn)
}

func (f *File) eachExtent(n *node, offset *int, fn func(int, storage.Interval) error) error {
	for i := 0; i < n.size; i++ {
		if !n.isLeaf() {
			if err := f.eachExtent(n.children[i], offset, fn); err != nil {
				return err
			}
		}
		if err := fn(*offset, n.keys[i]); err != nil {
			return err
		}
		*offset += n.keys[i].Length()
	}
	if !n.isLeaf() {
		return f.eachExtent(n.children[n.size], offset, fn)
	}
	return nil
}
