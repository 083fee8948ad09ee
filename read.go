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

// Read returns a lazy view of length logical bytes starting at start.
//
// The view references storage sub-ranges in logical order and copies no
// bytes; materialize it with View.Bytes or iterate it with View.Each.
// Reading an empty range or reading at or past the logical end yields the
// empty view; a range running past the end is clamped to the content that
// exists. Read never mutates the tree.
func (f *File) Read(start, length int) (storage.View, error) {
	if start < 0 || length < 0 {
		return f.storage.EmptyView(), fmt.Errorf("%w: read [%d,%d) of file sized %d",
			ErrIndexOutOfBounds, start, start+length, f.size)
	}
	view := f.storage.EmptyView()
	if start >= f.size || length == 0 {
		return view, nil
	}
	if start+length > f.size {
		length = f.size - start
	}
	f.readFrom(f.root, start, start+length, 0, &view)
	return view, nil
}

// ReadAll returns a lazy view of the complete file content.
func (f *File) ReadAll() storage.View {
	view, err := f.Read(0, f.size)
	assert(err == nil, "file.ReadAll: full-range read must not fail")
	return view
}

// readFrom walks the subtree below n, appending to view the parts of the
// logical range [lo,hi) it covers. cum is the logical offset of the
// subtree's first byte. Every child and key position overlapping the range
// is visited through exactly one branch.
func (f *File) readFrom(n *node, lo, hi, cum int, view *storage.View) {
	for i := 0; i < n.size; i++ {
		if cum >= hi {
			return
		}
		if !n.isLeaf() {
			if lo < cum+n.childLengths[i] {
				f.readFrom(n.children[i], lo, hi, cum, view)
			}
			cum += n.childLengths[i]
		}
		if cum >= hi {
			return
		}
		key := n.keys[i]
		if lo < cum+key.Length() {
			// clamp the key's span to the requested range
			from := 0
			if lo > cum {
				from = lo - cum
			}
			to := key.Length()
			if hi < cum+key.Length() {
				to = hi - cum
			}
			part, err := key.Slice(from, to)
			assert(err == nil, "file.Read: cannot slice extent")
			sub, verr := f.storage.View(part)
			assert(verr == nil, "file.Read: extent outside of storage")
			*view = view.Plus(sub)
		}
		cum += key.Length()
	}
	if !n.isLeaf() && cum < hi {
		if lo < cum+n.childLengths[n.size] {
			f.readFrom(n.children[n.size], lo, hi, cum, view)
		}
	}
}
