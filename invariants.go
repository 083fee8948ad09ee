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

// Check validates the structural invariants of the extent tree: occupancy
// bounds, slot clearing, uniform leaf depth, exact cached subtree lengths,
// and agreement between the tree's total and the file size. It returns a
// wrapped ErrInvariantViolated naming the first violation found.
//
// Check is intended for tests and debugging; it visits every node.
func (f *File) Check() error {
	leafLevel := -1
	total, err := f.checkNode(f.root, 0, &leafLevel)
	if err != nil {
		return err
	}
	if total != f.size {
		return fmt.Errorf("%w: tree holds %d bytes, file size is %d",
			ErrInvariantViolated, total, f.size)
	}
	return nil
}

func (f *File) checkNode(n *node, level int, leafLevel *int) (int, error) {
	isRoot := n == f.root
	if n.size > f.maxKeys {
		return 0, fmt.Errorf("%w: node holds %d extents, max is %d",
			ErrInvariantViolated, n.size, f.maxKeys)
	}
	if !isRoot && n.size < f.degree-1 {
		return 0, fmt.Errorf("%w: non-root node holds %d extents, min is %d",
			ErrInvariantViolated, n.size, f.degree-1)
	}
	for i := n.size; i < len(n.keys); i++ {
		if n.keys[i] != (storage.Interval{}) {
			return 0, fmt.Errorf("%w: stale extent in slot %d beyond size %d",
				ErrInvariantViolated, i, n.size)
		}
	}
	for i := n.size + 1; i < len(n.children); i++ {
		if n.children[i] != nil || n.childLengths[i] != 0 {
			return 0, fmt.Errorf("%w: stale child in slot %d beyond size %d",
				ErrInvariantViolated, i, n.size)
		}
	}
	total := 0
	for i := 0; i < n.size; i++ {
		if n.keys[i].Length() <= 0 {
			return 0, fmt.Errorf("%w: empty extent in slot %d", ErrInvariantViolated, i)
		}
		total += n.keys[i].Length()
	}
	if n.isLeaf() {
		if *leafLevel < 0 {
			*leafLevel = level
		} else if *leafLevel != level {
			return 0, fmt.Errorf("%w: leaf on level %d, expected level %d",
				ErrInvariantViolated, level, *leafLevel)
		}
		for i := 0; i <= n.size; i++ {
			if n.children[i] != nil || n.childLengths[i] != 0 {
				return 0, fmt.Errorf("%w: leaf carries child bookkeeping in slot %d",
					ErrInvariantViolated, i)
			}
		}
		return total, nil
	}
	for i := 0; i <= n.size; i++ {
		if n.children[i] == nil {
			return 0, fmt.Errorf("%w: missing child in live slot %d", ErrInvariantViolated, i)
		}
		sub, err := f.checkNode(n.children[i], level+1, leafLevel)
		if err != nil {
			return 0, err
		}
		if sub != n.childLengths[i] {
			return 0, fmt.Errorf("%w: cached subtree length %d, subtree holds %d bytes",
				ErrInvariantViolated, n.childLengths[i], sub)
		}
		total += sub
	}
	return total, nil
}
