package doubletree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapEmptyOnZeroValue(t *testing.T) {
	var m Map[string, int]
	assert.True(t, m.Empty())
	assert.Equal(t, 0, m.Len())
}

func TestMapInsertThenFindRoundTrip(t *testing.T) {
	var m Map[string, int]
	words := []string{"pear", "apple", "fig", "grape", "kiwi", "date", "banana"}
	for i, w := range words {
		m.Insert(w, i)
	}
	for i, w := range words {
		v, ok := m.Get(w)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestMapInsertThenEraseIsIdempotent(t *testing.T) {
	var m Map[int, int]
	for i := 0; i < 1000; i++ {
		m.Insert(i, i)
	}
	first := m.Delete(500)
	second := m.Delete(500)
	assert.True(t, first)
	assert.False(t, second)
}

func TestMapBulkSortedIteration(t *testing.T) {
	var m Map[int, int]
	r := rand.New(rand.NewSource(1))
	const n = 5000
	keys := r.Perm(n)
	for _, k := range keys {
		m.Insert(k, k)
	}

	prev := -1
	count := 0
	for it := m.Begin(); !it.Equal(m.End()); it = it.Next() {
		assert.Greater(t, it.Key(), prev)
		prev = it.Key()
		count++
	}
	assert.Equal(t, n, count)
}
