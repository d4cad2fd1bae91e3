package doubletree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteratorBeginEndOnEmptyMap(t *testing.T) {
	var m Map[int, int]
	assert.True(t, m.Begin().Equal(m.End()))
}

func TestIteratorFindExactKey(t *testing.T) {
	var m Map[int, string]
	m.Insert(1, "a")
	m.Insert(2, "b")
	m.Insert(3, "c")

	it, ok := m.Find(2)
	require.True(t, ok)
	assert.Equal(t, 2, it.Key())
	assert.Equal(t, "b", it.Value())

	_, ok = m.Find(99)
	assert.False(t, ok)
}

func TestIteratorNextCrossesPageBoundary(t *testing.T) {
	var m Map[int, int]
	const n = 10000
	for i := 0; i < n; i++ {
		m.Insert(i, i)
	}

	it := m.Begin()
	for i := 0; i < n; i++ {
		require.True(t, it.Valid())
		require.Equal(t, i, it.Key())
		it = it.Next()
	}
	assert.True(t, it.Equal(m.End()))
}

func TestIteratorKeyPanicsOnEnd(t *testing.T) {
	var m Map[int, int]
	m.Insert(1, 1)
	assert.Panics(t, func() { m.End().Key() })
}

func TestIteratorNextPastEndIsNoOp(t *testing.T) {
	var m Map[int, int]
	m.Insert(1, 1)
	end := m.End()
	assert.True(t, end.Next().Equal(end))
}
