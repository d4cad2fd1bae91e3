package doubletree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRandomOpsAgainstMapOracle drives Insert/Delete/Get through a large
// number of random operations alongside a plain Go map oracle, comparing
// every Delete result, checking a Get every 5000 operations, and comparing
// the final length and key order.
func TestRandomOpsAgainstMapOracle(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	var m Map[int, int]
	oracle := make(map[int]int)

	const ops = 200000
	const keySpace = 4000

	for i := 0; i < ops; i++ {
		key := r.Intn(keySpace)
		switch r.Intn(3) {
		case 0, 1:
			val := r.Int()
			m.Insert(key, val)
			oracle[key] = val
		case 2:
			_, wantOK := oracle[key]
			gotOK := m.Delete(key)
			delete(oracle, key)
			assert.Equal(t, wantOK, gotOK, "delete(%d) at op %d", key, i)
		}

		if i%5000 == 0 {
			v, ok := m.Get(key)
			wantV, wantOK := oracle[key]
			require.Equal(t, wantOK, ok, "get(%d) at op %d", key, i)
			if wantOK {
				assert.Equal(t, wantV, v)
			}
		}
	}

	require.Equal(t, len(oracle), m.Len())

	wantKeys := make([]int, 0, len(oracle))
	for k := range oracle {
		wantKeys = append(wantKeys, k)
	}
	sort.Ints(wantKeys)

	gotKeys := make([]int, 0, m.Len())
	for it := m.Begin(); !it.Equal(m.End()); it = it.Next() {
		gotKeys = append(gotKeys, it.Key())
	}
	assert.Equal(t, wantKeys, gotKeys)
}
