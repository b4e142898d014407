package bplusmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildSeq(b, n int) *Map[int, int] {
	m := New[int, int](b)
	for i := 0; i < n; i++ {
		m.Insert(i, i*10)
	}
	return m
}

func TestIterAscending(t *testing.T) {
	m := buildSeq(3, 50)
	keys := m.Iter().Keys()

	assert.Len(t, keys, 50)
	for i, k := range keys {
		assert.Equal(t, i, k)
	}
}

func TestIterValues(t *testing.T) {
	m := buildSeq(3, 10)
	values := m.Iter().Values()
	assert.Len(t, values, 10)
	for i, v := range values {
		assert.Equal(t, i*10, v)
	}
}

func TestIterNextBackDescending(t *testing.T) {
	m := buildSeq(3, 20)
	it := m.Iter()

	var got []int
	for {
		k, _, ok := it.NextBack()
		if !ok {
			break
		}
		got = append(got, k)
	}
	assert.Len(t, got, 20)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i-1], got[i])
	}
}

func TestIterMeetingInMiddle(t *testing.T) {
	m := buildSeq(3, 21) // odd count so front/back meet exactly once
	it := m.Iter()

	var front, back []int
	for {
		fk, _, fok := it.Next()
		if !fok {
			break
		}
		front = append(front, fk)

		bk, _, bok := it.NextBack()
		if !bok {
			break
		}
		back = append(back, bk)
	}

	all := append(front, reversed(back)...)
	assert.Len(t, all, 21)
	seen := make(map[int]bool)
	for _, k := range all {
		assert.False(t, seen[k], "key %d yielded twice", k)
		seen[k] = true
	}
	for i := 0; i < 21; i++ {
		assert.True(t, seen[i], "key %d missing from combined front+back walk", i)
	}
}

func reversed(s []int) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func TestRangeIncludedExcluded(t *testing.T) {
	m := buildSeq(3, 30)

	got := m.Range(Included(10), Included(20)).Keys()
	assert.Equal(t, []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, got)

	got = m.Range(Excluded(10), Excluded(20)).Keys()
	assert.Equal(t, []int{11, 12, 13, 14, 15, 16, 17, 18, 19}, got)

	got = m.Range(Included(25), Unbounded[int]()).Keys()
	assert.Equal(t, []int{25, 26, 27, 28, 29}, got)

	got = m.Range(Unbounded[int](), Excluded(3)).Keys()
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestRangeEmpty(t *testing.T) {
	m := buildSeq(3, 10)

	got := m.Range(Included(100), Included(200)).Keys()
	assert.Empty(t, got)

	got = m.Range(Excluded(5), Excluded(6)).Keys()
	assert.Empty(t, got)

	got = m.Range(Included(8), Included(3)).Keys()
	assert.Empty(t, got)
}

func TestCursorSeekAndWalk(t *testing.T) {
	m := buildSeq(4, 40)

	c := m.Seek(17)
	assert.True(t, c.Valid())
	assert.Equal(t, 17, c.Key())

	c = m.SeekFirst()
	assert.Equal(t, 0, c.Key())

	c = m.SeekLast()
	assert.Equal(t, 39, c.Key())

	count := 0
	for c := m.SeekFirst(); c.Valid(); c.Next() {
		count++
	}
	assert.Equal(t, 40, count)
}
