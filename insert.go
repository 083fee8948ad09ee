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

// Insert writes data into storage at the given extents and records the
// extents at logical offset start. The extents must have been reserved by
// the caller (see storage.Allocator) and their lengths must sum up to
// len(data). Zero-length extents are dropped.
//
// start may be any position in [0, Size()]; 0 prepends, Size() appends.
// On success the file grows by len(data) bytes.
func (f *File) Insert(start int, intervals []storage.Interval, data []byte) error {
	if start < 0 || start > f.size {
		return fmt.Errorf("%w: insert at %d in file sized %d", ErrIndexOutOfBounds, start, f.size)
	}
	total := 0
	live := intervals[:0:0]
	for _, iv := range intervals {
		total += iv.Length()
		if iv.Length() > 0 {
			live = append(live, iv)
		}
	}
	if total != len(data) {
		return fmt.Errorf("%w: extents cover %d bytes, data has %d",
			ErrIllegalArguments, total, len(data))
	}
	if len(live) == 0 {
		return nil
	}
	// payload first, then the index
	from := 0
	for _, iv := range live {
		if err := f.storage.Write(iv.Start(), data, from, iv.Length()); err != nil {
			return err
		}
		from += iv.Length()
	}
	f.insertExtents(start, live)
	f.size += total
	T().Debugf("extents: inserted %d extents (%d bytes) at offset %d", len(live), total, start)
	return nil
}

// insertExtents records already-written extents at logical offset start.
// The file size is not touched; that is the caller's business.
func (f *File) insertExtents(start int, keys []storage.Interval) {
	if f.root.isFull() {
		f.split(&pathEntry{node: f.root})
	}
	p, splitKey, hasSplit := f.findInsertPosition(&pathEntry{node: f.root}, start)
	f.insertIntoLeaf(p, keys...)
	if hasSplit {
		// the right remainder of a truncated extent goes back in after the batch
		f.insertIntoLeaf(p, splitKey)
	}
}

// findInsertPosition descends from p.node to the leaf slot where new extents
// for logical offset start belong. Full nodes on the path are split before
// the descent enters them, so later leaf splits can always promote a key.
//
// An extent strictly straddling start is truncated in place to its left
// part; the right part is returned as splitKey and must be re-inserted
// behind the new extents. The truncated bytes are uncharged from the path,
// re-inserting splitKey charges them back onto it.
func (f *File) findInsertPosition(p *pathEntry, start int) (leaf *pathEntry, splitKey storage.Interval, hasSplit bool) {
	cum := 0
	for {
		n := p.node
		i := 0
		for {
			if !n.isLeaf() {
				if i == n.size || start <= cum+n.childLengths[i] {
					if n.children[i].isFull() {
						p.index = i
						f.split(&pathEntry{parent: p, node: n.children[i]})
						continue // re-evaluate slot i against the split halves
					}
					p.index = i
					p = &pathEntry{parent: p, node: n.children[i]}
					break
				}
				cum += n.childLengths[i]
			} else if i == n.size || start <= cum {
				p.index = i
				return p, splitKey, hasSplit
			}
			keyLen := n.keys[i].Length()
			if start < cum+keyLen {
				// start falls strictly inside extent i: keep the left part,
				// carry the right part down to the insertion leaf
				assert(!hasSplit, "insert: more than one extent straddles the offset")
				prefix, suffix, err := n.keys[i].Cut(start - cum)
				assert(err == nil, "insert: cannot cut straddled extent")
				n.keys[i] = prefix
				splitKey, hasSplit = suffix, true
				p.index = i
				p.chargeUp(-suffix.Length())
				cum = start
				if n.isLeaf() {
					p.index = i + 1
					return p, splitKey, hasSplit
				}
				i++
				continue
			}
			cum += keyLen
			i++
		}
	}
}

// insertIntoLeaf inserts keys in order at the leaf slot p points to,
// splitting the leaf whenever it fills up mid-batch. p tracks the slot
// behind the last inserted key.
func (f *File) insertIntoLeaf(p *pathEntry, keys ...storage.Interval) {
	assert(p.node.isLeaf(), "insert: insertion position is not in a leaf")
	for _, key := range keys {
		if p.node.isFull() {
			f.split(p)
		}
		n := p.node
		copy(n.keys[p.index+1:n.size+1], n.keys[p.index:n.size])
		n.keys[p.index] = key
		n.size++
		p.chargeUp(key.Length())
		p.index++
	}
}

// split divides the full node p.node at the degree boundary: the median key
// moves up into the parent, the upper half moves into a new right sibling.
// A full parent is split first; splitting the root grows the tree by one
// level. p is repointed to whichever half its slot ended up in.
func (f *File) split(p *pathEntry) {
	n := p.node
	assert(n.isFull(), "split: node is not full")
	if p.parent != nil && p.parent.node.isFull() {
		f.split(p.parent)
	}
	d := f.degree
	right := newNode(d)
	median := n.keys[d-1]
	copy(right.keys[:d-1], n.keys[d:])
	if !n.isLeaf() {
		copy(right.children[:d], n.children[d:])
		copy(right.childLengths[:d], n.childLengths[d:])
	}
	right.size = d - 1
	for i := d - 1; i < n.size; i++ {
		n.keys[i] = storage.Interval{}
	}
	for i := d; i < n.size+1; i++ {
		n.children[i] = nil
		n.childLengths[i] = 0
	}
	n.size = d - 1
	leftLen, rightLen := n.totalLength(), right.totalLength()
	if p.parent == nil {
		root := newNode(d)
		root.keys[0] = median
		root.children[0] = n
		root.children[1] = right
		root.childLengths[0] = leftLen
		root.childLengths[1] = rightLen
		root.size = 1
		f.root = root
		p.parent = &pathEntry{node: root}
	} else {
		pn := p.parent.node
		pi := p.parent.index
		copy(pn.keys[pi+1:pn.size+1], pn.keys[pi:pn.size])
		copy(pn.children[pi+2:pn.size+2], pn.children[pi+1:pn.size+1])
		copy(pn.childLengths[pi+2:pn.size+2], pn.childLengths[pi+1:pn.size+1])
		pn.keys[pi] = median
		pn.children[pi+1] = right
		pn.childLengths[pi] = leftLen
		pn.childLengths[pi+1] = rightLen
		pn.size++
	}
	if p.index >= d {
		p.node = right
		p.index -= d
		p.parent.index++
	}
}
