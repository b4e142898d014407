package bplusmap

import "github.com/sahilb315/bplusmap/internal/assertx"

// Pair is one entry of a bulk-load input.
type Pair[K Ordered, V any] struct {
	Key   K
	Value V
}

// BulkLoad builds a map from pairs, which must already be sorted in
// strictly ascending key order. It grows a full index bottom-up in the
// same pass so the result is immediately queryable through
// Get/Insert/Remove/Range like any other map, rather than requiring a
// separate one-entry-at-a-time rebuild on top of a bare leaf chain.
func BulkLoad[K Ordered, V any](b int, pairs []Pair[K, V]) *Map[K, V] {
	assertx.Assert(b >= 2, "fan-out must be >= 2, got %d", b)
	for i := 1; i < len(pairs); i++ {
		assertx.Assert(pairs[i-1].Key < pairs[i].Key,
			"BulkLoad input must be strictly ascending, got %v then %v", pairs[i-1].Key, pairs[i].Key)
	}

	if len(pairs) == 0 {
		return New[K, V](b)
	}

	leafSizes := leafChunkSizes(len(pairs), capacity(b))
	leaves := make([]*node[K, V], len(leafSizes))
	pos := 0
	for i, sz := range leafSizes {
		leaf := newLeaf[K, V](b)
		for _, p := range pairs[pos : pos+sz] {
			leaf.keys = append(leaf.keys, p.Key)
			leaf.vals = append(leaf.vals, p.Value)
		}
		leaves[i] = leaf
		pos += sz
	}
	for i, leaf := range leaves {
		if i > 0 {
			leaf.prev = leaves[i-1]
		}
		if i+1 < len(leaves) {
			leaf.next = leaves[i+1]
		}
	}

	current := leaves
	for len(current) > 1 {
		levelSizes := balancedChunkSizes(len(current), internalChildrenCapacity(b))
		next := make([]*node[K, V], len(levelSizes))
		pos := 0
		for i, sz := range levelSizes {
			chunk := current[pos : pos+sz]
			parent := newInternal[K, V](b)
			parent.children = append(parent.children, chunk...)
			for _, c := range chunk[:len(chunk)-1] {
				parent.keys = append(parent.keys, c.largestKey())
			}
			next[i] = parent
			pos += sz
		}
		current = next
	}

	return &Map[K, V]{root: current[0], length: len(pairs), b: b}
}

// leafChunkSizes fills every leaf to maxChunk, leaving only the final
// leaf short: bulk-loading 100 pairs at maxChunk 23 yields 23,23,23,23,8,
// not five evenly-sized leaves of 20.
func leafChunkSizes(total, maxChunk int) []int {
	if total == 0 {
		return nil
	}
	var sizes []int
	remaining := total
	for remaining > maxChunk {
		sizes = append(sizes, maxChunk)
		remaining -= maxChunk
	}
	return append(sizes, remaining)
}

// balancedChunkSizes splits total items into the fewest groups no larger
// than maxChunk, spreading the remainder across the leading groups so
// sizes differ by at most one. Used for the index levels bulk load grows
// above the leaf chain, where an uneven fill-to-max split could leave a
// trailing internal node with too few children; the leaf chain itself
// doesn't have that problem since a short final leaf is explicitly legal.
func balancedChunkSizes(total, maxChunk int) []int {
	if total == 0 {
		return nil
	}
	n := (total + maxChunk - 1) / maxChunk
	base := total / n
	rem := total % n
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes
}
