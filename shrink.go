package extents

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import "github.com/npillmayer/extents/storage"

// Shrink coalesces physically adjacent extents that sit side by side in a
// leaf: when one extent ends exactly where the next one starts, the two
// collapse into one. Logical content and total length are preserved, only
// the extent count drops. Coalescing stops when it would push a leaf below
// minimum occupancy.
//
// Shrink is a best-effort optimization; fragmentation across node
// boundaries is left alone.
func (f *File) Shrink() {
	before := f.countExtents(f.root)
	f.shrinkNode(f.root)
	after := f.countExtents(f.root)
	if before != after {
		T().Debugf("extents: shrink coalesced %d extents into %d", before, after)
	}
}

func (f *File) shrinkNode(n *node) {
	if !n.isLeaf() {
		for i := 0; i <= n.size; i++ {
			f.shrinkNode(n.children[i])
		}
		return
	}
	min := f.degree - 1
	if n == f.root {
		min = 1
	}
	i := 0
	for i+1 < n.size && n.size > min {
		if joined, ok := n.keys[i].Join(n.keys[i+1]); ok {
			n.keys[i] = joined
			copy(n.keys[i+1:n.size-1], n.keys[i+2:n.size])
			n.keys[n.size-1] = storage.Interval{}
			n.size--
		} else {
			i++
		}
	}
}

func (f *File) countExtents(n *node) int {
	count := n.size
	if !n.isLeaf() {
		for i := 0; i <= n.size; i++ {
			count += f.countExtents(n.children[i])
		}
	}
	return count
}
