package doubletree

import "cmp"

// Delete removes key from the map if present, returning whether anything
// was removed. findPath lands on the greatest key <= an absent key, so
// the page-level erase (and this method) must confirm an exact match
// rather than deleting whatever that lookup happens to return.
func (m *Map[K, V]) Delete(key K) bool {
	defer m.checkInvariants()

	if m.stemLevels == 0 {
		if m.leafRoot == nil || !m.leafRoot.erase(key) {
			return false
		}
		m.length--
		return true
	}

	path, leaf := m.findPath(key)
	parent := path[len(path)-1].stem
	oldLeafMin := leaf.minKey()
	parentWasLarge := parent.state() == stateLarge

	if !leaf.erase(key) {
		return false
	}
	m.length--

	m.settleLeaf(path, leaf, oldLeafMin)
	m.settleStem(path, len(path)-1, parentWasLarge)
	m.collapseOuterRoot()
	return true
}

// settleLeaf propagates a leaf page's state after a deletion: if leaf is
// now empty, discard it and remove its routing entry from parent;
// otherwise, if it is small, try to restore it by borrowing from a small
// left neighbor then a small right neighbor, discarding either if that
// leaves it empty, until leaf is no longer small or neither neighbor can
// help. The leaf's state before the deletion is not tracked: a leaf that
// was already small before the deletion borrows as well.
func (m *Map[K, V]) settleLeaf(path []outerPathEntry[K, V], leaf *leafPage[K, V], oldMin K) {
	level := len(path) - 1
	parent := path[level].stem

	if leaf.empty() {
		m.unlinkLeafPage(leaf)
		parent.erase(oldMin)
		return
	}

	if newMin := leaf.minKey(); newMin != oldMin {
		parent.updateMinKey(oldMin, newMin)
	}

	if leaf.state() != stateSmall {
		return
	}

	for leaf.state() == stateSmall {
		leafMinBefore := leaf.minKey()
		pos := parent.find(leafMinBefore)
		borrowed := false

		if prevPos, ok := parent.prevPosition(pos); ok {
			left := parent.elemAt(prevPos).leaf
			if left.small() {
				leftOldMin := left.minKey()
				leaf.borrowPrev(left)
				borrowed = true
				if left.empty() {
					m.unlinkLeafPage(left)
					parent.erase(leftOldMin)
				}
				if newLeafMin := leaf.minKey(); newLeafMin != leafMinBefore {
					parent.updateMinKey(leafMinBefore, newLeafMin)
				}
			}
		}

		if !borrowed {
			pos = parent.find(leafMinBefore)
			if parent.hasNext(pos) {
				right := parent.elemAt(parent.nextPosition(pos)).leaf
				if right.small() {
					rightOldMin := right.minKey()
					leaf.borrowNext(right)
					borrowed = true
					if right.empty() {
						m.unlinkLeafPage(right)
						parent.erase(rightOldMin)
					} else if rm := right.minKey(); rm != rightOldMin {
						parent.updateMinKey(rightOldMin, rm)
					}
				}
			}
		}

		if !borrowed {
			break
		}
	}
}

// settleStem is settleLeaf's counterpart for an ancestor stem page:
// path[level].stem is the page being checked, path[level-1].stem is its
// parent. wasLarge reports the checked page's state before whatever
// change at the level below triggered this call. level == 0 means the
// outer root, which has no minimum fill and is instead handled by
// collapseOuterRoot.
func (m *Map[K, V]) settleStem(path []outerPathEntry[K, V], level int, wasLarge bool) {
	if level == 0 {
		return
	}
	node := path[level].stem
	parent := path[level-1].stem
	oldMin := node.minKey()

	if node.empty() {
		parentWasLarge := parent.state() == stateLarge
		parent.erase(oldMin)
		m.settleStem(path, level-1, parentWasLarge)
		return
	}

	if !wasLarge || node.state() != stateSmall {
		return
	}

	parentWasLarge := parent.state() == stateLarge
	parentChanged := false

	for node.state() == stateSmall {
		nodeMinBefore := node.minKey()
		pos := parent.find(nodeMinBefore)
		borrowed := false

		if prevPos, ok := parent.prevPosition(pos); ok {
			left := parent.elemAt(prevPos).stem
			if left.small() {
				leftOldMin := left.minKey()
				node.borrowPrev(left)
				borrowed = true
				if left.empty() {
					parent.erase(leftOldMin)
					parentChanged = true
				}
				if newMin := node.minKey(); newMin != nodeMinBefore {
					parent.updateMinKey(nodeMinBefore, newMin)
				}
			}
		}

		if !borrowed {
			pos = parent.find(nodeMinBefore)
			if parent.hasNext(pos) {
				right := parent.elemAt(parent.nextPosition(pos)).stem
				if right.small() {
					rightOldMin := right.minKey()
					node.borrowNext(right)
					borrowed = true
					if right.empty() {
						parent.erase(rightOldMin)
						parentChanged = true
					} else if rm := right.minKey(); rm != rightOldMin {
						parent.updateMinKey(rightOldMin, rm)
					}
				}
			}
		}

		if !borrowed {
			break
		}
	}

	if parentChanged {
		m.settleStem(path, level-1, parentWasLarge)
	}
}

// collapseOuterRoot: while the outer root page holds exactly one routing
// entry, replace the root with that single child and decrement
// stemLevels.
func (m *Map[K, V]) collapseOuterRoot() {
	for m.stemLevels > 1 && pageHasSingleEntry(m.stemRoot) {
		only := m.stemRoot.elemAt(m.stemRoot.minPosition())
		m.stemRoot = only.stem
		m.stemLevels--
	}
	if m.stemLevels == 1 && pageHasSingleEntry(m.stemRoot) {
		only := m.stemRoot.elemAt(m.stemRoot.minPosition())
		m.leafRoot = only.leaf
		m.stemRoot = nil
		m.stemLevels = 0
	}
}

// pageHasSingleEntry reports whether p holds exactly one element total:
// no intra-page stem levels and a sole leaf line with one entry.
func pageHasSingleEntry[K cmp.Ordered, E keyer[K, E]](p *page[K, E]) bool {
	return p.stemLevels == 0 && p.leafPool[p.root].count == 1
}

// unlinkLeafPage removes p from the outer tree's leaf-page doubly-linked
// list, patching neighbor pointers and minLeaf/maxLeaf if p was an
// endpoint.
func (m *Map[K, V]) unlinkLeafPage(p *leafPage[K, V]) {
	if p.prevPage != nil {
		p.prevPage.nextPage = p.nextPage
	} else {
		m.minLeaf = p.nextPage
	}
	if p.nextPage != nil {
		p.nextPage.prevPage = p.prevPage
	} else {
		m.maxLeaf = p.prevPage
	}
}
