package doubletree

import "cmp"

// Map is the double-tree ordered map: a B+-tree whose own nodes are
// page-sized B+-trees of cache-line-sized lines. The zero value is an
// empty, ready-to-use map.
type Map[K cmp.Ordered, V any] struct {
	stemRoot *stemPage[K, V]
	leafRoot *leafPage[K, V]

	stemLevels uint8
	minLeaf    *leafPage[K, V]
	maxLeaf    *leafPage[K, V]

	length int
}

// ensureRoot lazily creates the single root leaf page on first use: a
// brand new empty Map defers page creation until the first Insert.
func (m *Map[K, V]) ensureRoot() {
	if m.stemLevels == 0 && m.leafRoot == nil {
		m.leafRoot = newPage[K, entry[K, V]]()
		m.minLeaf = m.leafRoot
		m.maxLeaf = m.leafRoot
	}
}

// Empty reports whether the map holds no entries.
func (m *Map[K, V]) Empty() bool {
	return m.length == 0
}

// Len returns the number of entries currently in the map. Maintained
// incrementally by Insert/Delete rather than computed by walking the
// tree.
func (m *Map[K, V]) Len() int {
	return m.length
}

// find descends stemLevels times through stem pages, comparing key
// against each child's minimum key, then performs one final find inside
// the terminal leaf page.
func (m *Map[K, V]) find(key K) (*leafPage[K, V], pagePosition) {
	if m.stemLevels == 0 {
		if m.leafRoot == nil {
			return nil, pagePosition{}
		}
		return m.leafRoot, m.leafRoot.find(key)
	}

	cur := m.stemRoot
	lvl := m.stemLevels
	for lvl > 1 {
		pos := cur.find(key)
		cur = cur.elemAt(pos).stem
		lvl--
	}
	pos := cur.find(key)
	leaf := cur.elemAt(pos).leaf
	return leaf, leaf.find(key)
}

// findPath is find's path-recording counterpart, used by Insert/Delete
// to bubble structural changes back up one outer-tree level at a time.
// The path is empty when stemLevels is 0; otherwise its last entry is the
// level-1 stem page and the position of the terminal leaf page's routing
// entry in it. The leaf page itself is returned alongside the path.
type outerPathEntry[K cmp.Ordered, V any] struct {
	stem *stemPage[K, V]
	pos  pagePosition
}

func (m *Map[K, V]) findPath(key K) ([]outerPathEntry[K, V], *leafPage[K, V]) {
	path := make([]outerPathEntry[K, V], 0, m.stemLevels)
	if m.stemLevels == 0 {
		return path, m.leafRoot
	}
	cur := m.stemRoot
	lvl := m.stemLevels
	for lvl > 1 {
		pos := cur.find(key)
		path = append(path, outerPathEntry[K, V]{stem: cur, pos: pos})
		cur = cur.elemAt(pos).stem
		lvl--
	}
	pos := cur.find(key)
	path = append(path, outerPathEntry[K, V]{stem: cur, pos: pos})
	leaf := cur.elemAt(pos).leaf
	return path, leaf
}

// Min returns the smallest key and its value, and false if the map is
// empty.
func (m *Map[K, V]) Min() (K, V, bool) {
	if m.length == 0 {
		var zk K
		var zv V
		return zk, zv, false
	}
	e := m.minLeaf.elemAt(m.minLeaf.minPosition())
	return e.k, e.v, true
}

// Max returns the largest key and its value, and false if the map is
// empty.
func (m *Map[K, V]) Max() (K, V, bool) {
	if m.length == 0 {
		var zk K
		var zv V
		return zk, zv, false
	}
	last := m.maxLeaf.leafPool[m.maxLeaf.maxLeaf].maxIndex()
	e := m.maxLeaf.elemAt(pagePosition{line: m.maxLeaf.maxLeaf, elem: last})
	return e.k, e.v, true
}
