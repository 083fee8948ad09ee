package extents

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import "github.com/npillmayer/extents/storage"

// node is a fixed-capacity multiway tree node. For a tree of degree d, a node
// holds up to 2d-1 keys (extents in ascending logical order) and up to 2d
// children. childLengths[i] caches the total logical byte length of the
// subtree below children[i]. Slots at or beyond size are always cleared.
type node struct {
	keys         []storage.Interval
	children     []*node
	childLengths []int
	size         int
}

func newNode(degree int) *node {
	return &node{
		keys:         make([]storage.Interval, 2*degree-1),
		children:     make([]*node, 2*degree),
		childLengths: make([]int, 2*degree),
	}
}

func (n *node) isLeaf() bool {
	return n.children[0] == nil
}

func (n *node) isFull() bool {
	return n.size == len(n.keys)
}

// totalLength sums the node's own key lengths and the cached lengths of its
// live subtrees.
func (n *node) totalLength() int {
	total := 0
	for i := 0; i < n.size; i++ {
		total += n.keys[i].Length()
	}
	if !n.isLeaf() {
		for i := 0; i <= n.size; i++ {
			total += n.childLengths[i]
		}
	}
	return total
}

// clear resets a node that has been merged away. Stale pointers in dead
// nodes would keep whole subtrees alive for the garbage collector.
func (n *node) clear() {
	for i := range n.keys {
		n.keys[i] = storage.Interval{}
	}
	for i := range n.children {
		n.children[i] = nil
		n.childLengths[i] = 0
	}
	n.size = 0
}
