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

// removeContext carries the state of one removal walk. start and length
// describe the logical range to cut out; removed counts the bytes cut so
// far. When the range ends strictly inside a single extent, the extent's
// part behind the range is detached as an orphan and length is inflated by
// its size, so the walk still terminates with removed == length; the orphan
// goes back into the tree after the walk.
type removeContext struct {
	start     int
	length    int
	removed   int
	orphan    storage.Interval
	hasOrphan bool
}

// Remove cuts length logical bytes starting at offset start out of the
// file. Later content moves forward; physical storage is not touched, the
// affected extents are only unlinked or truncated in the index.
//
// A range running past the logical end of the file is rejected before any
// mutation.
func (f *File) Remove(start, length int) error {
	if start < 0 || length < 0 || start+length > f.size {
		return fmt.Errorf("%w: remove [%d,%d) of file sized %d",
			ErrIndexOutOfBounds, start, start+length, f.size)
	}
	if length == 0 {
		return nil
	}
	ctx := &removeContext{start: start, length: length}
	f.removeFrom(&pathEntry{node: f.root}, ctx, 0)
	assert(ctx.removed == ctx.length, "remove: walk did not remove the requested byte count")
	f.size -= length
	if ctx.hasOrphan {
		// tree-only re-insertion, no storage bytes move
		f.insertExtents(start, []storage.Interval{ctx.orphan})
	}
	T().Debugf("extents: removed %d bytes at offset %d", length, start)
	return nil
}

// removeFrom walks the subtree below p.node left to right and cuts out the
// part of the removal range it covers. cum is the logical offset the walk
// has reached; it always points just before the child or extent under
// inspection, and once removal has begun it equals ctx.start, since
// everything between ctx.start and the walk position has been cut.
//
// Nodes are repaired to above-minimum occupancy before a deletion visits
// them, so deleting never underflows. visitNextChild suppresses the child
// visit on iterations that re-inspect a slot after a successor replacement
// or a child merge.
func (f *File) removeFrom(p *pathEntry, ctx *removeContext, cum int) {
	i := 0
	visitNextChild := true
	for ctx.removed < ctx.length {
		n := p.node
		if i > n.size {
			return
		}
		p.index = i
		if !n.isLeaf() && visitNextChild {
			if ctx.start < cum+n.childLengths[i] {
				cp := &pathEntry{parent: p, node: n.children[i]}
				// repairs may move content into the child's front,
				// which rebases the offset of its first byte
				cum -= f.ensureSize(cp)
				f.removeFrom(cp, ctx, cum)
				// repairs below this slot may have refreshed its cache
				// mid-walk and shifted its position, so recompute both
				i = p.index
				n.childLengths[i] = cp.node.totalLength()
				if ctx.removed >= ctx.length {
					return
				}
				// the child held the range start and is exhausted, the
				// walk continues right behind the cut
				cum = ctx.start
			} else {
				cum += n.childLengths[i]
			}
		}
		if i == n.size {
			return
		}
		key := n.keys[i]
		keyLen := key.Length()
		switch {
		case ctx.start >= cum+keyLen:
			// removal begins past this extent
			cum += keyLen
			i++
			visitNextChild = true
		case ctx.start > cum:
			// removal begins strictly inside this extent
			assert(ctx.removed == 0, "remove: walk passed the range start without cutting")
			prefixLen := ctx.start - cum
			tail := keyLen - prefixLen
			if tail > ctx.length {
				// the range also ends inside this extent
				suffix, err := key.Slice(prefixLen+ctx.length, keyLen)
				assert(err == nil, "remove: cannot slice extent")
				ctx.orphan, ctx.hasOrphan = suffix, true
				ctx.length += suffix.Length()
			}
			prefix, err := key.Slice(0, prefixLen)
			assert(err == nil, "remove: cannot slice extent")
			n.keys[i] = prefix
			ctx.removed += tail
			cum += prefixLen
			i++
			visitNextChild = true
		default:
			// removal continues at this extent (ctx.start == cum)
			remaining := ctx.length - ctx.removed
			if remaining < keyLen {
				// only the extent's front part goes
				rest, err := key.Slice(remaining, keyLen)
				assert(err == nil, "remove: cannot slice extent")
				n.keys[i] = rest
				ctx.removed += remaining
				return
			}
			if n.isLeaf() {
				f.ensureSize(p)
				n = p.node
				i = p.index
				copy(n.keys[i:n.size-1], n.keys[i+1:n.size])
				n.keys[n.size-1] = storage.Interval{}
				n.size--
				ctx.removed += keyLen
				// the next extent slides into slot i
				continue
			}
			left, right := n.children[i], n.children[i+1]
			if left.size >= f.degree {
				// replace the extent with its predecessor; the walk
				// continues behind it in the right subtree
				pred := f.removeRightmost(&pathEntry{parent: p, node: left})
				n.keys[i] = pred
				ctx.removed += keyLen
				i++
				visitNextChild = true
			} else if right.size >= f.degree {
				// replace the extent with its successor and re-inspect
				// the slot; the successor is next in line to be cut
				p.index = i + 1
				succ := f.removeLeftmost(&pathEntry{parent: p, node: right})
				p.index = i
				n.keys[i] = succ
				ctx.removed += keyLen
				visitNextChild = false
			} else {
				// both children minimal: fold them around the extent and
				// continue inside the merged child
				f.ensureSize(p)
				n = p.node
				i = p.index
				childStart := cum - n.childLengths[i]
				cp := &pathEntry{parent: p, node: n.children[i]}
				f.mergeWithRightSibling(cp)
				if n == f.root && n.size == 0 {
					f.root = cp.node
				}
				f.removeFrom(cp, ctx, childStart)
				i = p.index
				n.childLengths[i] = cp.node.totalLength()
				cum = ctx.start
				visitNextChild = false
			}
		}
	}
}

// removeRightmost detaches and returns the last extent of the subtree below
// p.node, repairing occupancy on the way down and refreshing the cached
// subtree lengths on the way up.
func (f *File) removeRightmost(p *pathEntry) storage.Interval {
	n := p.node
	var key storage.Interval
	if n.isLeaf() {
		key = n.keys[n.size-1]
		n.keys[n.size-1] = storage.Interval{}
		n.size--
	} else {
		p.index = n.size
		cp := &pathEntry{parent: p, node: n.children[n.size]}
		f.ensureSize(cp)
		key = f.removeRightmost(cp)
	}
	if p.parent != nil {
		p.parent.node.childLengths[p.parent.index] = n.totalLength()
	}
	return key
}

// removeLeftmost detaches and returns the first extent of the subtree below
// p.node; the mirror image of removeRightmost.
func (f *File) removeLeftmost(p *pathEntry) storage.Interval {
	n := p.node
	var key storage.Interval
	if n.isLeaf() {
		key = n.keys[0]
		copy(n.keys[:n.size-1], n.keys[1:n.size])
		n.keys[n.size-1] = storage.Interval{}
		n.size--
	} else {
		p.index = 0
		cp := &pathEntry{parent: p, node: n.children[0]}
		f.ensureSize(cp)
		key = f.removeLeftmost(cp)
	}
	if p.parent != nil {
		p.parent.node.childLengths[p.parent.index] = n.totalLength()
	}
	return key
}
