package doubletree

// extremePath walks straight down the minimum (atMin) or maximum
// (!atMin) child at every intra-page level, recording the same
// pagePathEntry shape findPath does. Used when the target line is known
// by position (the page's own minLeaf/maxLeaf) rather than by key.
func (p *page[K, E]) extremePath(atMin bool) []pagePathEntry {
	path := make([]pagePathEntry, 0, p.stemLevels+1)
	cur := p.root
	lvl := p.stemLevels
	for lvl > 0 {
		stemLine := &p.stemPool[cur]
		var i uint8
		if atMin {
			i = stemLine.minIndex()
		} else {
			i = stemLine.maxIndex()
		}
		path = append(path, pagePathEntry{slot: cur, index: i})
		cur = stemLine.elem(i).idx
		lvl--
	}
	path = append(path, pagePathEntry{slot: cur, index: 0, isLeaf: true})
	return path
}

// removeExtremeLeafLine discards the page's current max (atMax) or min
// (!atMax) leaf line wholesale: unlinks it from the leaf-line list, frees
// its slot, and removes/rebalances its routing entry in the stem exactly
// as eraseLeafAt's merge path does, then collapses the root if that
// leaves a single-child stem. If the discarded line was the page's sole
// leaf line, a fresh empty one is installed as the new root so the page
// remains well-formed (possibly now page.empty()) — the caller (borrowPrev
// /borrowNext, or the outer tree observing an emptied page) is
// responsible for what that emptiness means one level up.
func (p *page[K, E]) removeExtremeLeafLine(atMax bool) {
	path := p.extremePath(!atMax)
	level := len(path) - 1
	slot := path[level].slot

	p.unlinkLeaf(slot)
	p.pool.free(slot)

	if level == 0 {
		newRoot := p.pool.allocate(slotLeaf)
		p.leafPool[newRoot].init()
		p.root = newRoot
		p.minLeaf = newRoot
		p.maxLeaf = newRoot
		return
	}

	parentEntry := path[level-1]
	parentLine := &p.stemPool[parentEntry.slot]
	parentLine.erase(parentEntry.index)
	if parentEntry.index == 0 && !parentLine.empty() {
		p.fixRoutingKeysUp(path[:level-1], parentLine.minKey())
	}
	p.rebalanceStemAfterRemoval(path, level-1)
	p.collapseRoot()
}

// donateElementwise transfers every element of the donor's extreme leaf
// line into the receiver one at a time via ordinary insert/erase, used
// in place of a wholesale line move when that line is under lineMin: the
// donor's extreme line can fall below the usual minimum because the
// intra-page root line is exempt from it.
func (p *page[K, E]) donateElementwise(donor *page[K, E], fromMin bool) {
	slot := donor.maxLeaf
	if fromMin {
		slot = donor.minLeaf
	}
	line := &donor.leafPool[slot]
	keys := make([]K, line.count)
	for i := uint8(0); i < line.count; i++ {
		keys[i] = line.key(i)
	}
	for _, k := range keys {
		pos := donor.find(k)
		elem := donor.elemAt(pos)
		p.insert(elem)
		donor.erase(k)
	}
}

// borrowPrev moves one leaf line's worth of data from donor, which
// immediately precedes p in leaf order, into p's minimum position.
// Called on the recipient: the right sibling calls borrowPrev on itself
// with the left sibling as donor.
func (p *page[K, E]) borrowPrev(donor *page[K, E]) {
	donorLine := &donor.leafPool[donor.maxLeaf]
	if donorLine.count < lineMin {
		p.donateElementwise(donor, false)
		return
	}

	newSlot := p.pool.allocate(slotLeaf)
	newLine := &p.leafPool[newSlot]
	newLine.init()
	newLine.initFrom(donorLine)
	key := newLine.minKey()

	donor.removeExtremeLeafLine(true)
	p.insertMinLeaf(key, newSlot)
}

// borrowNext moves one leaf line's worth of data from donor, which
// immediately follows p in leaf order, into p's maximum position.
// Called on the recipient: the left sibling calls borrowNext on itself
// with the right sibling as donor.
func (p *page[K, E]) borrowNext(donor *page[K, E]) {
	donorLine := &donor.leafPool[donor.minLeaf]
	if donorLine.count < lineMin {
		p.donateElementwise(donor, true)
		return
	}

	newSlot := p.pool.allocate(slotLeaf)
	newLine := &p.leafPool[newSlot]
	newLine.init()
	newLine.initFrom(donorLine)
	key := newLine.minKey()

	donor.removeExtremeLeafLine(false)
	p.insertMaxLeaf(key, newSlot)
}

// splitOneLeaf pops the page's maximum leaf line out wholesale and
// returns a brand new page containing only that line as its sole
// root-leaf, used by the outer tree when neither sibling page can absorb
// an oversized page via borrowing.
func (p *page[K, E]) splitOneLeaf() *page[K, E] {
	path := p.extremePath(false)
	slot := path[len(path)-1].slot
	line := &p.leafPool[slot]

	np := &page[K, E]{}
	np.pool.init()
	newRoot := np.pool.allocate(slotLeaf)
	np.leafPool[newRoot].init()
	np.leafPool[newRoot].initFrom(line)
	np.leafPool[newRoot].prev = lineNilIndex
	np.leafPool[newRoot].next = lineNilIndex
	np.root = newRoot
	np.minLeaf = newRoot
	np.maxLeaf = newRoot
	np.stemLevels = 0

	p.removeExtremeLeafLine(true)
	return np
}
