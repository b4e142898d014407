package bplusmap

import "github.com/sahilb315/bplusmap/internal/assertx"

// Insert stores value for key, returning the value previously stored
// for key (if any). Duplicate-key insertion replaces the value without
// any structural change; a new key increments Len.
func (m *Map[K, V]) Insert(key K, value V) (previous V, replaced bool) {
	// Descend tracking, at each internal level, which child index we
	// routed into — that index is exactly the slot a child split must
	// be joined at when we unwind, so there's no need to re-derive it
	// from the separator on the way back up.
	var path []*node[K, V]
	var idxPath []int
	n := m.root
	for !n.isLeaf() {
		i := n.descendIndex(key)
		path = append(path, n)
		idxPath = append(idxPath, i)
		n = n.children[i]
	}

	split, previous, replaced := m.insertLeaf(n, key, value)
	if !replaced {
		m.length++
	}
	if split == nil {
		return previous, replaced
	}

	sep, right := split.sep, split.right
	fit := false
	for i := len(path) - 1; i >= 0; i-- {
		parent := path[i]
		childIdx := idxPath[i]

		if len(parent.children) < internalChildrenCapacity(m.b) {
			joinNode(parent, childIdx, sep, right)
			fit = true
			break
		}

		r := m.cutRight(parent)
		if childIdx < m.b {
			joinNode(parent, childIdx, sep, right)
		} else {
			joinNode(r.right, childIdx-m.b, sep, right)
		}
		sep, right = r.sep, r.right
	}

	if !fit {
		// Either the root split directly (path is empty, so the loop
		// never ran) or every ancestor on the path also split — either
		// way there's an unabsorbed (sep, right) pair left over that
		// needs a new root grown above the old one.
		newRoot := newInternal[K, V](m.b)
		newRoot.keys = append(newRoot.keys, sep)
		newRoot.children = append(newRoot.children, m.root, right)
		m.root = newRoot
	}
	return previous, replaced
}

// insertLeaf performs the point operation at the leaf: replace in place
// if key already exists, insert in sorted position if there's room, or
// split first and insert into whichever side the new pair belongs on.
//
// A full leaf splits on its pre-insertion contents (b-1 entries left, b
// entries right) rather than growing to b+1 total and splitting evenly
// afterward — splitting first and then placing the new pair means the
// two sides don't always end up the same size, since the new entry only
// grows whichever side it lands in.
func (m *Map[K, V]) insertLeaf(leaf *node[K, V], key K, value V) (*splitResult[K, V], V, bool) {
	assertx.Assert(leaf.isLeaf(), "insertLeaf called on an internal node")

	if idx := leaf.findEqual(key); idx >= 0 {
		old := leaf.vals[idx]
		leaf.vals[idx] = value
		return nil, old, true
	}

	var zero V
	if len(leaf.keys) < capacity(m.b) {
		idx := leaf.findGE(key)
		insertAt(&leaf.keys, idx, key)
		insertAt(&leaf.vals, idx, value)
		return nil, zero, false
	}

	split := m.splitLeaf(leaf)
	if key <= leaf.keys[len(leaf.keys)-1] {
		idx := leaf.findGE(key)
		insertAt(&leaf.keys, idx, key)
		insertAt(&leaf.vals, idx, value)
	} else {
		idx := split.right.findGE(key)
		insertAt(&split.right.keys, idx, key)
		insertAt(&split.right.vals, idx, value)
	}
	split.sep = leaf.keys[len(leaf.keys)-1]
	return &split, zero, false
}

// insertAt inserts v at index i in *s, shifting later elements right.
func insertAt[T any](s *[]T, i int, v T) {
	*s = append(*s, v)
	copy((*s)[i+1:], (*s)[i:len(*s)-1])
	(*s)[i] = v
}
