package bplusmap

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRandomizedOperations performs randomized inserts and deletes while
// maintaining a reference map, checking each operation's result and Len
// against it after every step. At the end it checks every key's value,
// the absence of removed keys, and that Iter() yields the right number
// of keys in ascending order, a property a plain map can't stand in for.
// Change seed to explore different operation sequences.
func TestRandomizedOperations(t *testing.T) {
	seed := int64(42)
	t.Logf("random seed: %d", seed)
	rnd := rand.New(rand.NewSource(seed))

	m := New[string, int](3)
	ref := make(map[string]int)

	poolSize := 300
	pool := make([]string, poolSize)
	for i := range pool {
		pool[i] = fmt.Sprintf("k%04d", i)
	}

	ops := 2000
	for op := 0; op < ops; op++ {
		action := rnd.Intn(3) // 0: insert, 1: delete, 2: insert (update)
		k := pool[rnd.Intn(poolSize)]

		switch action {
		case 1:
			_, exists := ref[k]
			_, ok := m.Remove(k)
			assert.Equal(t, exists, ok, "op %d: delete mismatch for key %s\n%s", op, k, m)
			delete(ref, k)
		default:
			v := rnd.Intn(1_000_000)
			prevWant, existed := ref[k]
			prevGot, replaced := m.Insert(k, v)
			assert.Equal(t, existed, replaced, "op %d: insert-replaced mismatch for key %s", op, k)
			if existed {
				assert.Equal(t, prevWant, prevGot, "op %d: previous-value mismatch for key %s", op, k)
			}
			ref[k] = v
		}

		assert.Equal(t, len(ref), m.Len(), "op %d: length mismatch\n%s", op, m)
	}

	for k, want := range ref {
		got, ok := m.Get(k)
		if assert.True(t, ok, "expected key %s to exist", k) {
			assert.Equal(t, want, got, "value mismatch for key %s", k)
		}
	}

	for _, k := range pool {
		if _, exists := ref[k]; !exists {
			_, ok := m.Get(k)
			assert.False(t, ok, "expected key %s to be missing", k)
		}
	}

	keys := m.Iter().Keys()
	assert.Len(t, keys, len(ref))
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i], "Iter() must yield keys in ascending order")
	}
}

func TestMapEmptyOperations(t *testing.T) {
	m := New[int, int](3)
	assert.True(t, m.IsEmpty())

	_, ok := m.Get(1)
	assert.False(t, ok)

	_, ok = m.Remove(1)
	assert.False(t, ok)

	assert.Equal(t, "(empty tree)\n", m.String())
}
