package bplusmap

// boundKind classifies one endpoint of a Range query.
type boundKind int

const (
	boundUnbounded boundKind = iota
	boundIncluded
	boundExcluded
)

// Bound describes one endpoint of a Range query: included, excluded, or
// open (Unbounded). Construct one with Included, Excluded, or Unbounded.
type Bound[K Ordered] struct {
	kind boundKind
	key  K
}

// Included returns a bound that includes k itself.
func Included[K Ordered](k K) Bound[K] { return Bound[K]{kind: boundIncluded, key: k} }

// Excluded returns a bound that stops short of k.
func Excluded[K Ordered](k K) Bound[K] { return Bound[K]{kind: boundExcluded, key: k} }

// Unbounded returns an open endpoint: no restriction on that side.
func Unbounded[K Ordered]() Bound[K] { return Bound[K]{kind: boundUnbounded} }

// Iterator walks entries in key order and can be driven from either end
// at once (Next from the front, NextBack from the back) until the two
// ends meet, matching a double-ended Rust-style range iterator.
type Iterator[K Ordered, V any] struct {
	frontLeaf *node[K, V]
	frontIdx  int
	backLeaf  *node[K, V]
	backIdx   int
	exhausted bool
}

// Iter returns an iterator over every entry in ascending key order.
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	return m.Range(Unbounded[K](), Unbounded[K]())
}

// Range returns an iterator over entries with key in [lo, hi] per the
// inclusivity each Bound specifies.
func (m *Map[K, V]) Range(lo, hi Bound[K]) *Iterator[K, V] {
	it := &Iterator[K, V]{}

	switch lo.kind {
	case boundUnbounded:
		it.frontLeaf = m.root.frontLeaf()
		it.frontIdx = 0
	case boundIncluded:
		it.frontLeaf, it.frontIdx = m.seekForward(lo.key, false)
	case boundExcluded:
		it.frontLeaf, it.frontIdx = m.seekForward(lo.key, true)
	}
	if it.frontLeaf != nil && len(it.frontLeaf.keys) == 0 {
		it.frontLeaf = nil
	}

	switch hi.kind {
	case boundUnbounded:
		it.backLeaf = m.root.backLeaf()
		it.backIdx = len(it.backLeaf.keys) - 1
	case boundIncluded:
		it.backLeaf, it.backIdx = m.seekBackward(hi.key, false)
	case boundExcluded:
		it.backLeaf, it.backIdx = m.seekBackward(hi.key, true)
	}
	if it.backLeaf != nil && it.backIdx < 0 {
		it.backLeaf = nil
	}

	if it.frontLeaf == nil || it.backLeaf == nil {
		it.exhausted = true
		return it
	}
	if before(it.backLeaf, it.backIdx, it.frontLeaf, it.frontIdx) {
		it.exhausted = true
	}
	return it
}

// seekForward locates the first leaf/index at or past key: strictly past
// when excl is set. Returns a nil leaf when nothing in the tree qualifies.
func (m *Map[K, V]) seekForward(key K, excl bool) (*node[K, V], int) {
	n := m.root
	for !n.isLeaf() {
		n = n.descend(key)
	}
	var idx int
	if excl {
		idx = n.findGT(key)
	} else {
		idx = n.findGE(key)
	}
	for idx >= len(n.keys) {
		if n.next == nil {
			return nil, 0
		}
		n = n.next
		idx = 0
	}
	return n, idx
}

// seekBackward locates the last leaf/index at or before key: strictly
// before when excl is set. Returns a nil leaf when nothing qualifies.
func (m *Map[K, V]) seekBackward(key K, excl bool) (*node[K, V], int) {
	n := m.root
	for !n.isLeaf() {
		n = n.descend(key)
	}
	var idx int
	if excl {
		idx = n.findLT(key)
	} else {
		idx = n.findLE(key)
	}
	for idx < 0 {
		if n.prev == nil {
			return nil, -1
		}
		n = n.prev
		idx = len(n.keys) - 1
	}
	return n, idx
}

// before reports whether (aLeaf, aIdx) precedes (bLeaf, bIdx) in key
// order. Comparing the stored keys directly (rather than leaf-chain
// position) sidesteps needing pointer identity between the two ends.
func before[K Ordered, V any](aLeaf *node[K, V], aIdx int, bLeaf *node[K, V], bIdx int) bool {
	return aLeaf.keys[aIdx] < bLeaf.keys[bIdx]
}

// Next returns the next entry in ascending order, or ok == false once
// the iterator is exhausted (including when it has met NextBack's cursor).
func (it *Iterator[K, V]) Next() (key K, value V, ok bool) {
	if it.exhausted {
		return key, value, false
	}
	key, value = it.frontLeaf.keys[it.frontIdx], it.frontLeaf.vals[it.frontIdx]
	if it.frontLeaf == it.backLeaf && it.frontIdx == it.backIdx {
		it.exhausted = true
		return key, value, true
	}
	it.frontIdx++
	if it.frontIdx >= len(it.frontLeaf.keys) {
		it.frontLeaf = it.frontLeaf.next
		it.frontIdx = 0
	}
	return key, value, true
}

// NextBack returns the next entry in descending order, or ok == false
// once the iterator is exhausted.
func (it *Iterator[K, V]) NextBack() (key K, value V, ok bool) {
	if it.exhausted {
		return key, value, false
	}
	key, value = it.backLeaf.keys[it.backIdx], it.backLeaf.vals[it.backIdx]
	if it.frontLeaf == it.backLeaf && it.frontIdx == it.backIdx {
		it.exhausted = true
		return key, value, true
	}
	it.backIdx--
	if it.backIdx < 0 {
		it.backLeaf = it.backLeaf.prev
		if it.backLeaf != nil {
			it.backIdx = len(it.backLeaf.keys) - 1
		}
	}
	return key, value, true
}

// Keys drains the iterator into a slice of keys in ascending order.
func (it *Iterator[K, V]) Keys() []K {
	var out []K
	for {
		k, _, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, k)
	}
}

// Values drains the iterator into a slice of values in ascending
// key order.
func (it *Iterator[K, V]) Values() []V {
	var out []V
	for {
		_, v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// --- single-ended cursor ---

// Cursor is a single-ended, re-seekable walk over the leaf chain. Unlike
// Iterator it does not track a far end, so Next/Prev can run past each
// other; it exists for callers that just want to seek to a key and walk
// one direction from there.
type Cursor[K Ordered, V any] struct {
	leaf *node[K, V]
	idx  int
}

// SeekFirst returns a cursor positioned at the smallest key.
func (m *Map[K, V]) SeekFirst() *Cursor[K, V] {
	leaf := m.root.frontLeaf()
	return &Cursor[K, V]{leaf: leaf, idx: 0}
}

// SeekLast returns a cursor positioned at the largest key.
func (m *Map[K, V]) SeekLast() *Cursor[K, V] {
	leaf := m.root.backLeaf()
	return &Cursor[K, V]{leaf: leaf, idx: len(leaf.keys) - 1}
}

// Seek returns a cursor positioned at the smallest key >= key.
func (m *Map[K, V]) Seek(key K) *Cursor[K, V] {
	leaf, idx := m.seekForward(key, false)
	return &Cursor[K, V]{leaf: leaf, idx: idx}
}

// Valid reports whether the cursor is positioned on an entry.
func (c *Cursor[K, V]) Valid() bool {
	return c.leaf != nil && c.idx >= 0 && c.idx < len(c.leaf.keys)
}

// Key returns the key at the cursor's current position.
func (c *Cursor[K, V]) Key() K { return c.leaf.keys[c.idx] }

// Value returns the value at the cursor's current position.
func (c *Cursor[K, V]) Value() V { return c.leaf.vals[c.idx] }

// Next advances the cursor to the next key, returning false once there
// is no further entry.
func (c *Cursor[K, V]) Next() bool {
	if !c.Valid() {
		return false
	}
	c.idx++
	if c.idx >= len(c.leaf.keys) {
		c.leaf = c.leaf.next
		c.idx = 0
	}
	return c.Valid()
}

// Prev retreats the cursor to the previous key, returning false once
// there is no earlier entry.
func (c *Cursor[K, V]) Prev() bool {
	if c.leaf == nil {
		return false
	}
	c.idx--
	if c.idx < 0 {
		c.leaf = c.leaf.prev
		if c.leaf == nil {
			return false
		}
		c.idx = len(c.leaf.keys) - 1
	}
	return c.Valid()
}
