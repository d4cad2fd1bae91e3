package doubletree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntLine() *lineNode[int, entry[int, string]] {
	l := &lineNode[int, entry[int, string]]{}
	l.init()
	return l
}

func TestLineNodeInsertKeepsSortedOrder(t *testing.T) {
	l := newIntLine()
	for _, k := range []int{5, 1, 9, 3, 7} {
		l.insert(entry[int, string]{k: k, v: "x"})
	}
	require.Equal(t, uint8(5), l.count)
	for i := uint8(1); i < l.count; i++ {
		assert.Less(t, l.key(i-1), l.key(i))
	}
}

func TestLineNodeFindReturnsGreatestLE(t *testing.T) {
	l := newIntLine()
	for _, k := range []int{10, 20, 30, 40} {
		l.insert(entry[int, string]{k: k, v: "x"})
	}
	assert.Equal(t, uint8(0), l.find(5))
	assert.Equal(t, uint8(0), l.find(10))
	assert.Equal(t, uint8(1), l.find(25))
	assert.Equal(t, uint8(3), l.find(999))
}

func TestLineNodeSplitHalvesRoughlyEvenly(t *testing.T) {
	l := newIntLine()
	for i := 0; i < lineMax; i++ {
		l.insert(entry[int, string]{k: i, v: "x"})
	}
	other := newIntLine()
	l.split(other)

	assert.Equal(t, lineMax/2, int(l.count))
	assert.Equal(t, lineMax/2, int(other.count))
	assert.Less(t, l.maxKey(), other.minKey())
}

func TestLineNodeEraseShrinksAndPreservesOrder(t *testing.T) {
	l := newIntLine()
	for _, k := range []int{1, 2, 3, 4, 5} {
		l.insert(entry[int, string]{k: k, v: "x"})
	}
	l.erase(l.find(3))
	require.Equal(t, uint8(4), l.count)
	assert.Equal(t, []int{1, 2, 4, 5}, collectLineKeys(l))
}

func TestLineNodeMergePrevErase(t *testing.T) {
	left := newIntLine()
	for _, k := range []int{1, 2, 3} {
		left.insert(entry[int, string]{k: k, v: "x"})
	}
	right := newIntLine()
	for _, k := range []int{4, 5, 6} {
		right.insert(entry[int, string]{k: k, v: "x"})
	}
	right.mergePrevErase(right.find(5), left)

	assert.True(t, right.empty())
	assert.Equal(t, []int{1, 2, 3, 4, 6}, collectLineKeys(left))
}

func TestLineNodeBorrowPrevErase(t *testing.T) {
	left := newIntLine()
	for _, k := range []int{1, 2, 3, 4} {
		left.insert(entry[int, string]{k: k, v: "x"})
	}
	right := newIntLine()
	for _, k := range []int{10, 11} {
		right.insert(entry[int, string]{k: k, v: "x"})
	}
	right.borrowPrevErase(right.find(10), left)

	assert.Equal(t, []int{1, 2, 3}, collectLineKeys(left))
	assert.Equal(t, []int{4, 11}, collectLineKeys(right))
}

func collectLineKeys(l *lineNode[int, entry[int, string]]) []int {
	keys := make([]int, 0, l.count)
	for i := uint8(0); i < l.count; i++ {
		keys = append(keys, l.key(i))
	}
	return keys
}
