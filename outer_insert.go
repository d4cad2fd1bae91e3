package doubletree

// Insert adds (key, value) to the map, or overwrites the existing value
// if key is already present, matching ordinary Go map (m[k]=v) semantics.
func (m *Map[K, V]) Insert(key K, value V) {
	defer m.checkInvariants()

	m.ensureRoot()
	m.splitRootOuter()

	if m.stemLevels == 0 {
		m.insertIntoLeaf(m.leafRoot, key, value)
		return
	}

	cur := m.stemRoot
	lvl := m.stemLevels
	for {
		pos := cur.find(key)
		ref := cur.elemAt(pos)

		if lvl == 1 {
			if ref.leaf.oversized() {
				m.remedyLeafLevel(cur, pos, ref.leaf)
				pos = cur.find(key)
				ref = cur.elemAt(pos)
			}
			if key < ref.key() {
				cur.updateMinKey(ref.key(), key)
			}
			m.insertIntoLeaf(ref.leaf, key, value)
			return
		}

		if ref.stem.oversized() {
			m.remedyStemLevel(cur, pos, ref.stem)
			pos = cur.find(key)
			ref = cur.elemAt(pos)
		}
		if key < ref.key() {
			cur.updateMinKey(ref.key(), key)
		}
		cur = ref.stem
		lvl--
	}
}

// insertIntoLeaf inserts (key, value) into target, overwriting in place
// if key is already present.
func (m *Map[K, V]) insertIntoLeaf(target *leafPage[K, V], key K, value V) {
	if !target.empty() {
		pos := target.find(key)
		existing := target.elemAt(pos)
		if existing.k == key {
			target.leafPool[pos.line].setElem(pos.elem, entry[K, V]{k: key, v: value})
			return
		}
	}
	target.insert(entry[K, V]{k: key, v: value})
	m.length++
}

// splitRootOuter performs the outer-tree root split: if the current
// outer-tree root page is oversized, pop its maximum leaf line out into
// a brand new sibling page, drain the old root into that sibling until
// it is no longer oversized, then wrap both under a fresh
// one-level-higher stem root.
func (m *Map[K, V]) splitRootOuter() {
	if m.stemLevels == 0 {
		if m.leafRoot == nil || !m.leafRoot.oversized() {
			return
		}
		oldRoot := m.leafRoot
		newSibling := oldRoot.splitOneLeaf()
		m.linkLeafPageAfter(oldRoot, newSibling)

		for oldRoot.oversized() {
			newSibling.borrowPrev(oldRoot)
		}

		newRoot := newPage[K, childRef[K, V]]()
		newRoot.insert(childRef[K, V]{k: oldRoot.minKey(), leaf: oldRoot})
		newRoot.insert(childRef[K, V]{k: newSibling.minKey(), leaf: newSibling})

		m.stemRoot = newRoot
		m.leafRoot = nil
		m.stemLevels = 1
		return
	}

	if !m.stemRoot.oversized() {
		return
	}
	oldRoot := m.stemRoot
	newSibling := oldRoot.splitOneLeaf()
	for oldRoot.oversized() {
		newSibling.borrowPrev(oldRoot)
	}

	newRoot := newPage[K, childRef[K, V]]()
	newRoot.insert(childRef[K, V]{k: oldRoot.minKey(), stem: oldRoot})
	newRoot.insert(childRef[K, V]{k: newSibling.minKey(), stem: newSibling})

	m.stemRoot = newRoot
	m.stemLevels++
}

// linkLeafPageAfter splices newPage into the outer-tree leaf-page linked
// list immediately after oldPage, updating maxLeaf if oldPage was
// previously the last leaf page.
func (m *Map[K, V]) linkLeafPageAfter(oldPage, newPage *leafPage[K, V]) {
	newPage.prevPage = oldPage
	newPage.nextPage = oldPage.nextPage
	if oldPage.nextPage != nil {
		oldPage.nextPage.prevPage = newPage
	} else {
		m.maxLeaf = newPage
	}
	oldPage.nextPage = newPage
}

// remedyLeafLevel resolves an oversized leaf-page child of cur at pos via
// a three-way offload-left/offload-right/split remedy at the terminal
// outer-tree level. The caller must re-find key's position in cur
// afterward: a remedy can change which child the key now routes to.
func (m *Map[K, V]) remedyLeafLevel(cur *stemPage[K, V], pos pagePosition, target *leafPage[K, V]) {
	if prevPos, ok := cur.prevPosition(pos); ok {
		left := cur.elemAt(prevPos).leaf
		if left.small() {
			oldMin := target.minKey()
			for target.oversized() {
				left.borrowNext(target)
			}
			if newMin := target.minKey(); newMin != oldMin {
				cur.updateMinKey(oldMin, newMin)
			}
			return
		}
	}

	if cur.hasNext(pos) {
		right := cur.elemAt(cur.nextPosition(pos)).leaf
		if right.small() {
			oldRightMin := right.minKey()
			for target.oversized() {
				right.borrowPrev(target)
			}
			if newRightMin := right.minKey(); newRightMin != oldRightMin {
				cur.updateMinKey(oldRightMin, newRightMin)
			}
			return
		}
	}

	newSibling := target.splitOneLeaf()
	m.linkLeafPageAfter(target, newSibling)
	for target.oversized() {
		newSibling.borrowPrev(target)
	}
	cur.insert(childRef[K, V]{k: newSibling.minKey(), leaf: newSibling})
}

// remedyStemLevel is remedyLeafLevel's counterpart one or more levels
// above the terminal outer-tree level: target and its siblings are stem
// pages rather than leaf pages, and no outer leaf-page linked list needs
// updating.
func (m *Map[K, V]) remedyStemLevel(cur *stemPage[K, V], pos pagePosition, target *stemPage[K, V]) {
	if prevPos, ok := cur.prevPosition(pos); ok {
		left := cur.elemAt(prevPos).stem
		if left.small() {
			oldMin := target.minKey()
			for target.oversized() {
				left.borrowNext(target)
			}
			if newMin := target.minKey(); newMin != oldMin {
				cur.updateMinKey(oldMin, newMin)
			}
			return
		}
	}

	if cur.hasNext(pos) {
		right := cur.elemAt(cur.nextPosition(pos)).stem
		if right.small() {
			oldRightMin := right.minKey()
			for target.oversized() {
				right.borrowPrev(target)
			}
			if newRightMin := right.minKey(); newRightMin != oldRightMin {
				cur.updateMinKey(oldRightMin, newRightMin)
			}
			return
		}
	}

	newSibling := target.splitOneLeaf()
	for target.oversized() {
		newSibling.borrowPrev(target)
	}
	cur.insert(childRef[K, V]{k: newSibling.minKey(), stem: newSibling})
}
