package doubletree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntPage() *leafPage[int, string] {
	return newPage[int, entry[int, string]]()
}

func TestPageInsertFindRoundTrip(t *testing.T) {
	p := newIntPage()
	const n = 500
	for i := 0; i < n; i++ {
		p.insert(entry[int, string]{k: i, v: "x"})
	}
	for i := 0; i < n; i++ {
		pos := p.find(i)
		got := p.elemAt(pos)
		require.Equal(t, i, got.k)
	}
}

func TestPageInsertSplitsAcrossManyLines(t *testing.T) {
	p := newIntPage()
	for i := 0; i < poolCount*lineMax/2; i++ {
		p.insert(entry[int, string]{k: i, v: "x"})
	}
	assert.Greater(t, int(p.stemLevels), 0)
	assert.Equal(t, 0, p.minKey())
}

func TestPageEraseRemovesExactKey(t *testing.T) {
	p := newIntPage()
	for i := 0; i < 200; i++ {
		p.insert(entry[int, string]{k: i, v: "x"})
	}
	require.True(t, p.erase(100))
	assert.False(t, p.erase(100))

	pos := p.find(100)
	got := p.elemAt(pos)
	assert.NotEqual(t, 100, got.k)
}

func TestPageEraseAllLeavesEmptyPage(t *testing.T) {
	p := newIntPage()
	keys := make([]int, 0, 300)
	for i := 0; i < 300; i++ {
		keys = append(keys, i)
		p.insert(entry[int, string]{k: i, v: "x"})
	}
	for _, k := range keys {
		require.True(t, p.erase(k))
	}
	assert.True(t, p.empty())
	assert.Equal(t, uint8(0), p.stemLevels)
}

func TestPageMinMaxKeyTrackedThroughMutation(t *testing.T) {
	p := newIntPage()
	for _, k := range []int{50, 10, 90, 30, 70} {
		p.insert(entry[int, string]{k: k, v: "x"})
	}
	assert.Equal(t, 10, p.minKey())
	assert.Equal(t, 90, p.maxKey())

	p.erase(10)
	assert.Equal(t, 30, p.minKey())
	p.erase(90)
	assert.Equal(t, 70, p.maxKey())
}

func TestPageSplitOneLeafProducesDisjointRanges(t *testing.T) {
	p := newIntPage()
	for i := 0; i < 40; i++ {
		p.insert(entry[int, string]{k: i, v: "x"})
	}
	np := p.splitOneLeaf()
	assert.Less(t, p.maxKey(), np.minKey())
}

func TestPageBorrowPrevMovesLowestLine(t *testing.T) {
	left := newIntPage()
	for i := 0; i < 40; i++ {
		left.insert(entry[int, string]{k: i, v: "x"})
	}
	right := left.splitOneLeaf()

	rightMinBefore := right.minKey()
	right.borrowPrev(left)
	assert.Less(t, right.minKey(), rightMinBefore)
	assert.Less(t, left.maxKey(), right.minKey())
}
