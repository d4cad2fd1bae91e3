package doubletree

// erase removes key from the page if present, rebalancing as needed.
// Returns false (no mutation) if key is absent: findPath lands on the
// greatest key <= key, so the caller must confirm an exact match before
// erasing anything.
func (p *page[K, E]) erase(key K) bool {
	path := p.findPath(key)
	leafEntry := path[len(path)-1]
	leafLine := &p.leafPool[leafEntry.slot]
	if leafEntry.index >= leafLine.count || leafLine.key(leafEntry.index) != key {
		return false
	}

	p.eraseLeafAt(path, leafEntry.index)
	p.collapseRoot()
	return true
}

// eraseLeafAt removes the element at index from the deepest line in path.
// If removing it would leave the line thin and it is not the intra-page
// root, the line instead rebalances with a same-parent sibling: merges if
// the combined count fits in one line, otherwise borrows a single
// element. A merge discards one sibling slot and removes its routing
// entry from the parent, which may in turn leave the parent thin —
// handled by rebalanceStemAfterRemoval bubbling one level at a time.
func (p *page[K, E]) eraseLeafAt(path []pagePathEntry, index uint8) {
	level := len(path) - 1
	entry := path[level]
	line := &p.leafPool[entry.slot]

	if level == 0 {
		// The leaf line is the intra-page root: no minimum fill applies.
		line.erase(index)
		return
	}

	if line.count > lineMin {
		line.erase(index)
		if index == 0 && !line.empty() {
			p.fixRoutingKeysUp(path[:level], line.minKey())
		}
		return
	}

	parentEntry := path[level-1]
	parentLine := &p.stemPool[parentEntry.slot]
	idx := parentEntry.index

	if idx > parentLine.minIndex() {
		prevSlot := parentLine.elem(idx - 1).idx
		prevLine := &p.leafPool[prevSlot]
		if int(prevLine.count)+int(line.count)-1 <= lineMax {
			line.mergePrevErase(index, prevLine)
			p.unlinkLeaf(entry.slot)
			p.pool.free(entry.slot)
			parentLine.erase(idx)
			p.rebalanceStemAfterRemoval(path, level-1)
			return
		}
		line.borrowPrevErase(index, prevLine)
		parentLine.setKey(idx, line.minKey())
		return
	}

	// idx is the parent's own minimum entry: borrow/merge with the right
	// sibling instead, since there is no left sibling under this parent.
	nextSlot := parentLine.elem(idx + 1).idx
	nextLine := &p.leafPool[nextSlot]
	if int(nextLine.count)+int(line.count)-1 <= lineMax {
		line.mergeNextErase(index, nextLine)
		if index == 0 {
			p.fixRoutingKeysUp(path[:level], line.minKey())
		}
		p.unlinkLeaf(nextSlot)
		p.pool.free(nextSlot)
		parentLine.erase(idx + 1)
		p.rebalanceStemAfterRemoval(path, level-1)
		return
	}
	line.borrowNextErase(index, nextLine)
	if index == 0 {
		p.fixRoutingKeysUp(path[:level], line.minKey())
	}
	parentLine.setKey(idx+1, nextLine.minKey())
}

// rebalanceStemAfterRemoval checks the stem line named by path[level] for
// thinness after one of its routing entries was just removed (by a merge
// one level down), rebalancing with a same-parent sibling and recursing
// upward exactly as eraseLeafAt does at the leaf level. level == 0 means
// the intra-page root, which has no minimum fill and is instead handled
// by collapseRoot after the whole erase unwinds.
func (p *page[K, E]) rebalanceStemAfterRemoval(path []pagePathEntry, level int) {
	if level == 0 {
		return
	}
	entry := path[level]
	line := &p.stemPool[entry.slot]
	if !line.thin() {
		return
	}

	parentEntry := path[level-1]
	parentLine := &p.stemPool[parentEntry.slot]
	idx := parentEntry.index

	if idx > parentLine.minIndex() {
		prevSlot := parentLine.elem(idx - 1).idx
		prevLine := &p.stemPool[prevSlot]
		if int(prevLine.count)+int(line.count) <= lineMax {
			for i := line.minIndex(); i < line.endIndex(); i++ {
				prevLine.insert(line.elem(i))
			}
			line.reset()
			p.pool.free(entry.slot)
			parentLine.erase(idx)
			p.rebalanceStemAfterRemoval(path, level-1)
			return
		}
		last := prevLine.maxElem()
		prevLine.erase(prevLine.maxIndex())
		line.insert(last)
		parentLine.setKey(idx, line.minKey())
		return
	}

	nextSlot := parentLine.elem(idx + 1).idx
	nextLine := &p.stemPool[nextSlot]
	if int(nextLine.count)+int(line.count) <= lineMax {
		for i := nextLine.minIndex(); i < nextLine.endIndex(); i++ {
			line.insert(nextLine.elem(i))
		}
		nextLine.reset()
		p.pool.free(nextSlot)
		parentLine.erase(idx + 1)
		p.rebalanceStemAfterRemoval(path, level-1)
		return
	}
	first := nextLine.minElem()
	nextLine.erase(nextLine.minIndex())
	line.insert(first)
	parentLine.setKey(idx+1, nextLine.minKey())
}

// collapseRoot repeatedly replaces a single-child stem root with that
// child, decrementing stemLevels.
func (p *page[K, E]) collapseRoot() {
	for p.stemLevels > 0 {
		rootLine := &p.stemPool[p.root]
		if rootLine.count != 1 {
			break
		}
		child := rootLine.elem(0).idx
		p.pool.free(p.root)
		p.root = child
		p.stemLevels--
	}
}

// unlinkLeaf removes slot from the intra-page leaf-line doubly-linked
// list, patching neighbor pointers and minLeaf/maxLeaf if slot was an
// endpoint.
func (p *page[K, E]) unlinkLeaf(slot uint8) {
	line := &p.leafPool[slot]
	prev, next := line.prev, line.next
	if prev != lineNilIndex {
		p.leafPool[prev].next = next
	} else {
		p.minLeaf = next
	}
	if next != lineNilIndex {
		p.leafPool[next].prev = prev
	} else {
		p.maxLeaf = prev
	}
}

// fixRoutingKeysUp writes a child's new minimum key into its routing entry
// in the parent stem line, then keeps propagating it to every further
// ancestor for which the changed subtree was the ancestor's own minimum
// entry (index 0), stopping as soon as an ancestor's own minimum key is
// unaffected. path excludes the line whose minimum just changed.
func (p *page[K, E]) fixRoutingKeysUp(path []pagePathEntry, newMin K) {
	for l := len(path) - 1; l >= 0; l-- {
		p.stemPool[path[l].slot].setKey(path[l].index, newMin)
		if path[l].index != 0 {
			return
		}
	}
}
