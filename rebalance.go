package extents

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import "github.com/npillmayer/extents/storage"

// ensureSize guarantees that p.node holds at least degree extents before a
// deletion visits it. It borrows from a sibling with surplus (right first),
// and otherwise merges with a sibling after recursively repairing the
// parent, which may have to give up a separator. A root emptied by the
// final merge is replaced by its surviving child.
//
// The return value is the number of logical bytes the repair moved into the
// front of p.node's subtree; callers tracking offsets rebase by it.
func (f *File) ensureSize(p *pathEntry) int {
	n := p.node
	if n.size >= f.degree || n == f.root {
		return 0
	}
	pp := p.parent
	if i := pp.index; i < pp.node.size && pp.node.children[i+1].size >= f.degree {
		f.rotateFromRightSibling(p)
		return 0
	} else if i > 0 && pp.node.children[i-1].size >= f.degree {
		return f.rotateFromLeftSibling(p)
	}
	f.ensureSize(pp)
	// the parent repair may have shifted our slot and changed the siblings
	prepended := 0
	if i := pp.index; i < pp.node.size && pp.node.children[i+1].size >= f.degree {
		f.rotateFromRightSibling(p)
	} else if i > 0 && pp.node.children[i-1].size >= f.degree {
		prepended = f.rotateFromLeftSibling(p)
	} else if i < pp.node.size {
		f.mergeWithRightSibling(p)
	} else {
		prepended = f.mergeWithLeftSibling(p)
	}
	if pp.node == f.root && pp.node.size == 0 {
		f.root = p.node
	}
	return prepended
}

// rotateFromRightSibling moves the separator down to the end of p.node and
// the right sibling's first extent up into the separator slot. For inner
// nodes the sibling's first child comes along with the separator.
func (f *File) rotateFromRightSibling(p *pathEntry) {
	pn := p.parent.node
	i := p.parent.index
	n, rs := p.node, pn.children[i+1]
	separator := pn.keys[i]
	movedChildLen := 0
	n.keys[n.size] = separator
	if !n.isLeaf() {
		n.children[n.size+1] = rs.children[0]
		n.childLengths[n.size+1] = rs.childLengths[0]
		movedChildLen = rs.childLengths[0]
	}
	n.size++
	promoted := rs.keys[0]
	pn.keys[i] = promoted
	copy(rs.keys[:rs.size-1], rs.keys[1:rs.size])
	rs.keys[rs.size-1] = storage.Interval{}
	if !rs.isLeaf() {
		copy(rs.children[:rs.size], rs.children[1:rs.size+1])
		copy(rs.childLengths[:rs.size], rs.childLengths[1:rs.size+1])
		rs.children[rs.size] = nil
		rs.childLengths[rs.size] = 0
	}
	rs.size--
	pn.childLengths[i] += separator.Length() + movedChildLen
	pn.childLengths[i+1] -= promoted.Length() + movedChildLen
}

// rotateFromLeftSibling moves the separator down to the front of p.node and
// the left sibling's last extent up into the separator slot. Returns the
// byte count moved into p.node's subtree.
func (f *File) rotateFromLeftSibling(p *pathEntry) int {
	pn := p.parent.node
	i := p.parent.index
	n, ls := p.node, pn.children[i-1]
	separator := pn.keys[i-1]
	movedChildLen := 0
	copy(n.keys[1:n.size+1], n.keys[:n.size])
	if !n.isLeaf() {
		copy(n.children[1:n.size+2], n.children[:n.size+1])
		copy(n.childLengths[1:n.size+2], n.childLengths[:n.size+1])
		n.children[0] = ls.children[ls.size]
		n.childLengths[0] = ls.childLengths[ls.size]
		movedChildLen = ls.childLengths[ls.size]
		ls.children[ls.size] = nil
		ls.childLengths[ls.size] = 0
	}
	n.keys[0] = separator
	n.size++
	promoted := ls.keys[ls.size-1]
	pn.keys[i-1] = promoted
	ls.keys[ls.size-1] = storage.Interval{}
	ls.size--
	pn.childLengths[i] += separator.Length() + movedChildLen
	pn.childLengths[i-1] -= promoted.Length() + movedChildLen
	p.index++
	return separator.Length() + movedChildLen
}

// mergeWithRightSibling folds the separator and the complete right sibling
// into p.node. The parent loses the separator and the sibling's child slot;
// p.node survives, the sibling is cleared.
func (f *File) mergeWithRightSibling(p *pathEntry) {
	pn := p.parent.node
	i := p.parent.index
	n, rs := p.node, pn.children[i+1]
	n.keys[n.size] = pn.keys[i]
	copy(n.keys[n.size+1:n.size+1+rs.size], rs.keys[:rs.size])
	if !n.isLeaf() {
		copy(n.children[n.size+1:n.size+2+rs.size], rs.children[:rs.size+1])
		copy(n.childLengths[n.size+1:n.size+2+rs.size], rs.childLengths[:rs.size+1])
	}
	n.size += 1 + rs.size
	rs.clear()
	copy(pn.keys[i:pn.size-1], pn.keys[i+1:pn.size])
	pn.keys[pn.size-1] = storage.Interval{}
	copy(pn.children[i+1:pn.size], pn.children[i+2:pn.size+1])
	copy(pn.childLengths[i+1:pn.size], pn.childLengths[i+2:pn.size+1])
	pn.children[pn.size] = nil
	pn.childLengths[pn.size] = 0
	pn.size--
	pn.childLengths[i] = n.totalLength()
}

// mergeWithLeftSibling folds the complete left sibling and the separator
// into the front of p.node; the mirror image of mergeWithRightSibling,
// except that p.node's content shifts and path entries repoint. Returns the
// byte count moved into p.node's subtree.
func (f *File) mergeWithLeftSibling(p *pathEntry) int {
	pn := p.parent.node
	i := p.parent.index
	n, ls := p.node, pn.children[i-1]
	separator := pn.keys[i-1]
	prepended := separator.Length() + ls.totalLength()
	shift := ls.size + 1
	copy(n.keys[shift:shift+n.size], n.keys[:n.size])
	copy(n.keys[:ls.size], ls.keys[:ls.size])
	n.keys[ls.size] = separator
	if !n.isLeaf() {
		copy(n.children[shift:shift+n.size+1], n.children[:n.size+1])
		copy(n.childLengths[shift:shift+n.size+1], n.childLengths[:n.size+1])
		copy(n.children[:shift], ls.children[:shift])
		copy(n.childLengths[:shift], ls.childLengths[:shift])
	}
	n.size += shift
	ls.clear()
	copy(pn.keys[i-1:pn.size-1], pn.keys[i:pn.size])
	pn.keys[pn.size-1] = storage.Interval{}
	copy(pn.children[i-1:pn.size], pn.children[i:pn.size+1])
	copy(pn.childLengths[i-1:pn.size], pn.childLengths[i:pn.size+1])
	pn.children[pn.size] = nil
	pn.childLengths[pn.size] = 0
	pn.size--
	p.parent.index--
	pn.childLengths[p.parent.index] = n.totalLength()
	p.index += shift
	return prepended
}
