// Package bplusmap implements an in-memory ordered key/value map as a
// B+-tree: point lookup, insertion with replacement, deletion, ordered
// and ranged iteration, and bulk loading, all backed by a fixed-fan-out
// node layout with a sibling-linked leaf layer for O(1)-per-step scans.
//
// The container is single-writer and non-persistent: no concurrent
// mutation, no durability, no approximate stats.
package bplusmap

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/sahilb315/bplusmap/internal/assertx"
)

// Ordered is the constraint on key types: anything with a native total
// order. Grounded on golang.org/x/exp/constraints, which
// Fantom-foundation/Carmen (a full production key/value store in the
// same retrieval pack) imports directly for the same purpose.
type Ordered = constraints.Ordered

// Map is an ordered key/value map implemented as a B+-tree.
type Map[K Ordered, V any] struct {
	root   *node[K, V]
	length int
	b      int // fan-out parameter; derived sizes: minLen(b), capacity(b)
}

// New constructs an empty map with fan-out parameter b (b >= 2). A
// fan-out of 12 gives capacity 23; most of this package's tests use
// smaller fan-outs (2 to 5) so that splits and merges occur with few
// entries.
func New[K Ordered, V any](b int) *Map[K, V] {
	assertx.Assert(b >= 2, "fan-out must be >= 2, got %d", b)
	return &Map[K, V]{
		root: newLeaf[K, V](b),
		b:    b,
	}
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int { return m.length }

// IsEmpty reports whether the map holds no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.length == 0 }

// Height returns the number of internal levels above the leaf level (0
// when the root is itself a leaf).
func (m *Map[K, V]) Height() int {
	h := 0
	for n := m.root; !n.isLeaf(); n = n.children[0] {
		h++
	}
	return h
}

// --- structural outcomes propagated during descent ---

// splitResult is returned by a node operation that overflowed: sep is the
// separator to raise (largest key of the left half), right is the newly
// created sibling.
type splitResult[K Ordered, V any] struct {
	sep   K
	right *node[K, V]
}

// --- C2: split / cut-right / join / redistribute / merge ---

// splitLeaf divides a full leaf (length == capacity(b), i.e. it has no
// room left for the pair that's about to be inserted) into left = self
// (truncated to the first b-1 entries) and a newly allocated right
// sibling holding the rest (b entries), re-threading the sibling chain
// around them. The split happens on the pre-insertion array; the caller
// still has to place the new pair into whichever side it sorts into.
func (m *Map[K, V]) splitLeaf(left *node[K, V]) splitResult[K, V] {
	b := m.b
	assertx.Assert(left.isLeaf(), "splitLeaf called on an internal node")
	assertx.Assert(len(left.keys) == capacity(b),
		"splitLeaf called with %d keys, want %d", len(left.keys), capacity(b))

	right := newLeaf[K, V](b)
	right.keys = append(right.keys, left.keys[b-1:]...)
	right.vals = append(right.vals, left.vals[b-1:]...)
	left.keys = left.keys[:b-1]
	left.vals = left.vals[:b-1]

	right.next = left.next
	right.prev = left
	left.next = right
	if right.next != nil {
		right.next.prev = right
	}

	return splitResult[K, V]{sep: left.keys[len(left.keys)-1], right: right}
}

// splitInternal divides a full internal node (capacity(b) keys, b-1 | 1 |
// b-1 split around the raised separator) into left = self (truncated to
// b-1 keys / b children), a raised separator (the key that sat between
// the two halves), and a new right sibling holding the rest (b-1 keys / b
// children).
func (m *Map[K, V]) splitInternal(left *node[K, V]) splitResult[K, V] {
	b := m.b
	assertx.Assert(!left.isLeaf(), "splitInternal called on a leaf")
	assertx.Assert(len(left.keys) == capacity(b),
		"splitInternal called with %d keys, want %d", len(left.keys), capacity(b))

	right := newInternal[K, V](b)
	sep := left.keys[b-1]
	right.keys = append(right.keys, left.keys[b:]...)
	right.children = append(right.children, left.children[b:]...)

	left.keys = left.keys[:b-1]
	left.children = left.children[:b]

	return splitResult[K, V]{sep: sep, right: right}
}

// cutRight is the in-place variant used on Insert's unwind when an
// internal node is full (no room for one more key/child) and a child
// split still has to be joined into it: it moves everything from index b
// onward into a fresh right sibling and leaves keys[b-1] as the key to
// raise, without requiring the caller to have already overflowed the node.
func (m *Map[K, V]) cutRight(left *node[K, V]) splitResult[K, V] {
	b := m.b
	assertx.Assert(!left.isLeaf(), "cutRight called on a leaf")

	right := newInternal[K, V](b)
	raised := left.keys[b-1]
	right.keys = append(right.keys, left.keys[b:]...)
	right.children = append(right.children, left.children[b:]...)

	left.keys = left.keys[:b-1]
	left.children = left.children[:b]

	return splitResult[K, V]{sep: raised, right: right}
}

// joinNode inserts separator k at position i and child c at position
// i+1, shifting everything after them one slot to the right. Precondition:
// n has room (len(n.children) < internalChildrenCapacity(m.b)).
func joinNode[K Ordered, V any](n *node[K, V], i int, k K, c *node[K, V]) {
	n.keys = append(n.keys, k)
	copy(n.keys[i+1:], n.keys[i:len(n.keys)-1])
	n.keys[i] = k

	n.children = append(n.children, nil)
	copy(n.children[i+2:], n.children[i+1:len(n.children)-1])
	n.children[i+1] = c
}

// redistribute rebalances two adjacent siblings (left, right) at the
// same level so both meet the minLen floor, without merging. It returns
// false (and leaves both nodes untouched) when the combined population
// isn't enough to give both sides more than minLen entries, in which
// case the caller must merge instead.
func (m *Map[K, V]) redistribute(left, right *node[K, V]) bool {
	b := m.b

	if left.isLeaf() {
		total := len(left.keys) + len(right.keys)
		if total/2 <= minLen(b) {
			return false
		}
		keys := append(append([]K{}, left.keys...), right.keys...)
		vals := append(append([]V{}, left.vals...), right.vals...)
		lo := total / 2
		left.keys = append(left.keys[:0], keys[:lo]...)
		left.vals = append(left.vals[:0], vals[:lo]...)
		right.keys = append(right.keys[:0], keys[lo:]...)
		right.vals = append(right.vals[:0], vals[lo:]...)
		return true
	}

	// Internal nodes: "length" for the MIN_LEN test is child count, not
	// key count, since a node's key count is always child count - 1 and
	// the floor/ceiling split has to land on a legal child count on both
	// sides. Combine into a temporary key/child array — the parent's
	// separator above `left` (equal to left's largest key) fills the one
	// "virtual" key slot between the two runs of real keys — then
	// re-split the combined run at the halfway child-count mark. The key
	// sitting exactly at that boundary is dropped: it's redundant with
	// whatever the caller recomputes as left's new largest key afterward.
	totalChildren := len(left.children) + len(right.children)
	if totalChildren/2 <= minLen(b) {
		return false
	}
	keys := make([]K, 0, totalChildren-1)
	keys = append(keys, left.keys...)
	keys = append(keys, left.largestKey())
	keys = append(keys, right.keys...)
	children := make([]*node[K, V], 0, totalChildren)
	children = append(children, left.children...)
	children = append(children, right.children...)

	lo := totalChildren / 2
	left.keys = append(left.keys[:0], keys[:lo-1]...)
	left.children = append(left.children[:0], children[:lo]...)
	right.keys = append(right.keys[:0], keys[lo:]...)
	right.children = append(right.children[:0], children[lo:]...)
	return true
}

// merge appends right's contents onto left. For internal nodes the
// parent's separator between them (passed in) is materialized as left's
// new last key first, since that separator was "largest key of left"
// and is otherwise lost once right's children are appended. For leaves,
// the sibling chain is re-threaded around the absorbed node.
func (m *Map[K, V]) merge(left, right *node[K, V], parentSep K) {
	if left.isLeaf() {
		left.keys = append(left.keys, right.keys...)
		left.vals = append(left.vals, right.vals...)
		left.next = right.next
		if left.next != nil {
			left.next.prev = left
		}
		return
	}
	left.keys = append(left.keys, parentSep)
	left.keys = append(left.keys, right.keys...)
	left.children = append(left.children, right.children...)
}

// String renders the tree as an indented connector diagram, used by the
// randomized model tests as a diagnostic dump on mismatch.
func (m *Map[K, V]) String() string {
	var b strings.Builder
	if m.length == 0 && m.root.isLeaf() && len(m.root.keys) == 0 {
		b.WriteString("(empty tree)\n")
		return b.String()
	}
	dumpNode(&b, m.root, "", true)
	return b.String()
}

func dumpNode[K Ordered, V any](b *strings.Builder, n *node[K, V], prefix string, last bool) {
	connector := "├── "
	if last {
		connector = "└── "
	}
	label := "INTERNAL"
	if n.isLeaf() {
		label = "LEAF"
	}
	fmt.Fprintf(b, "%s%s%s %v\n", prefix, connector, label, n.keys)

	childPrefix := prefix
	if last {
		childPrefix += "    "
	} else {
		childPrefix += "│   "
	}
	for i, c := range n.children {
		dumpNode(b, c, childPrefix, i == len(n.children)-1)
	}
}
