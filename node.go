package bplusmap

import "github.com/sahilb315/bplusmap/internal/assertx"

// node is the single heap-allocated node shape shared by leaves and
// internal nodes. children == nil marks a leaf: every internal node
// holds at least one child, so the nil slice can never arise on a live
// internal node.
//
// Keys and values live in ordinary Go slices rather than fixed-size
// arrays with a separate length counter: Go slices already give
// bounds-checked, append-friendly storage, so there is nothing for a
// manual length field to buy us here. Capacity is enforced by checks in
// insert.go/tree.go, not by slice length.
type node[K Ordered, V any] struct {
	keys     []K
	vals     []V       // leaf only
	children []*node[K, V]

	// leaf sibling chain — non-owning, built by BulkLoad and maintained
	// by split/merge.
	prev, next *node[K, V]
}

func (n *node[K, V]) isLeaf() bool {
	return n.children == nil
}

func newLeaf[K Ordered, V any](b int) *node[K, V] {
	return &node[K, V]{
		keys: make([]K, 0, capacity(b)),
		vals: make([]V, 0, capacity(b)),
	}
}

func newInternal[K Ordered, V any](b int) *node[K, V] {
	return &node[K, V]{
		keys:     make([]K, 0, capacity(b)),
		children: make([]*node[K, V], 0, internalChildrenCapacity(b)),
	}
}

func minLen(b int) int                   { return b - 1 }
func capacity(b int) int                 { return 2*b - 1 }
func internalChildrenCapacity(b int) int { return capacity(b) + 1 }

// descendIndex applies the separator convention keys[i] is the largest
// key in children[i], so the smallest i with q <= keys[i] is the child to
// descend into; if none matches, the last child owns everything larger
// than every separator.
func (n *node[K, V]) descendIndex(q K) int {
	assertx.Assert(!n.isLeaf(), "descendIndex called on a leaf node")
	for i, k := range n.keys {
		if q <= k {
			return i
		}
	}
	return len(n.children) - 1
}

func (n *node[K, V]) descend(q K) *node[K, V] {
	return n.children[n.descendIndex(q)]
}

// findGE returns the smallest index i with keys[i] >= q, or len(keys).
func (n *node[K, V]) findGE(q K) int {
	for i, k := range n.keys {
		if k >= q {
			return i
		}
	}
	return len(n.keys)
}

// findGT returns the smallest index i with keys[i] > q, or len(keys).
func (n *node[K, V]) findGT(q K) int {
	for i, k := range n.keys {
		if k > q {
			return i
		}
	}
	return len(n.keys)
}

// findLE returns the largest index i with keys[i] <= q, or -1.
func (n *node[K, V]) findLE(q K) int {
	for i := len(n.keys) - 1; i >= 0; i-- {
		if n.keys[i] <= q {
			return i
		}
	}
	return -1
}

// findLT returns the largest index i with keys[i] < q, or -1.
func (n *node[K, V]) findLT(q K) int {
	for i := len(n.keys) - 1; i >= 0; i-- {
		if n.keys[i] < q {
			return i
		}
	}
	return -1
}

// findEqual returns the index of q within the leaf's keys, or -1.
func (n *node[K, V]) findEqual(q K) int {
	assertx.Assert(n.isLeaf(), "findEqual called on an internal node")
	for i, k := range n.keys {
		if k == q {
			return i
		}
	}
	return -1
}

// largestKey is the separator value this subtree contributes to its
// parent: the rightmost key reachable by always following the last
// child.
func (n *node[K, V]) largestKey() K {
	if n.isLeaf() {
		assertx.Assert(len(n.keys) > 0, "largestKey called on an empty leaf")
		return n.keys[len(n.keys)-1]
	}
	return n.children[len(n.children)-1].largestKey()
}

func (n *node[K, V]) frontLeaf() *node[K, V] {
	if n.isLeaf() {
		return n
	}
	return n.children[0].frontLeaf()
}

func (n *node[K, V]) backLeaf() *node[K, V] {
	if n.isLeaf() {
		return n
	}
	return n.children[len(n.children)-1].backLeaf()
}
