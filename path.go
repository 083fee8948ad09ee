package extents

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

// pathEntry is one step of a transient root-to-node traversal path. Entries
// link upwards only; index is the slot currently being worked on within
// node, and for an entry with a live child entry below it, the child's slot
// in node.children. Rebalancing operations repoint entries in place, so a
// path stays valid across splits, rotations and merges.
type pathEntry struct {
	parent *pathEntry
	node   *node
	index  int
}

// chargeUp adjusts the cached subtree lengths of all ancestors by delta.
// The entry's own node is not touched; delta is charged to the child slot
// each ancestor uses to reach it.
func (p *pathEntry) chargeUp(delta int) {
	for e := p.parent; e != nil; e = e.parent {
		e.node.childLengths[e.index] += delta
	}
}
