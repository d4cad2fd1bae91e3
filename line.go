package doubletree

import "cmp"

// lineMax and lineMin bound the element count of a single lineNode. They
// are fixed for every element type, so a line only approximates a
// 256-byte cache line: its actual size depends on the size of E.
const (
	lineMax = 16
	lineMin = lineMax / 2
)

// lineNilIndex is the sentinel meaning "no such slot".
const lineNilIndex = 0xFF

// keyer is satisfied by anything a lineNode can hold: entry and stemSlot at
// the page level, childRef at the outer-tree level. withKey returns a copy
// of the element with its routing key replaced, since Go has no generic
// way to reach into an arbitrary E's key field by reference.
type keyer[K cmp.Ordered, E any] interface {
	key() K
	withKey(K) E
}

// lineNode is a fixed-capacity sorted array that fits in one cache line's
// worth of elements. prev/next thread the leaf-role linked list within the
// owning page; they are unused (left at lineNilIndex) for stem-role lines.
type lineNode[K cmp.Ordered, E keyer[K, E]] struct {
	elems [lineMax]E
	count uint8
	prev  uint8
	next  uint8
}

func (l *lineNode[K, E]) init() {
	l.count = 0
	l.prev = lineNilIndex
	l.next = lineNilIndex
}

func (l *lineNode[K, E]) reset() {
	l.count = 0
}

func (l *lineNode[K, E]) empty() bool { return l.count == 0 }
func (l *lineNode[K, E]) full() bool  { return int(l.count) == lineMax }
func (l *lineNode[K, E]) thin() bool  { return int(l.count) < lineMin }

func (l *lineNode[K, E]) minIndex() uint8 { return 0 }
func (l *lineNode[K, E]) maxIndex() uint8 {
	if l.count == 0 {
		return 0
	}
	return l.count - 1
}
func (l *lineNode[K, E]) endIndex() uint8 { return l.count }

func (l *lineNode[K, E]) elem(i uint8) E       { return l.elems[i] }
func (l *lineNode[K, E]) setElem(i uint8, e E) { l.elems[i] = e }
func (l *lineNode[K, E]) key(i uint8) K        { return l.elems[i].key() }

func (l *lineNode[K, E]) setKey(i uint8, newKey K) {
	l.elems[i] = l.elems[i].withKey(newKey)
}

func (l *lineNode[K, E]) minKey() K  { return l.key(l.minIndex()) }
func (l *lineNode[K, E]) minElem() E { return l.elem(l.minIndex()) }
func (l *lineNode[K, E]) maxKey() K  { return l.key(l.maxIndex()) }
func (l *lineNode[K, E]) maxElem() E { return l.elem(l.maxIndex()) }

// find returns the index of the greatest key less than or equal to findKey,
// or the minimum index if every key is greater than findKey.
func (l *lineNode[K, E]) find(findKey K) uint8 {
	if l.minKey() > findKey {
		return l.minIndex()
	}
	for i := l.minIndex() + 1; i < l.endIndex(); i++ {
		if l.key(i) > findKey {
			return i - 1
		}
	}
	return l.count - 1
}

func (l *lineNode[K, E]) moveOneBack(begin, end uint8) {
	for i := end; i > begin; i-- {
		l.elems[i] = l.elems[i-1]
	}
}

func (l *lineNode[K, E]) moveOneForward(begin, end uint8) {
	for i := begin; i < end; i++ {
		l.elems[i-1] = l.elems[i]
	}
}

func (l *lineNode[K, E]) moveTo(begin, end uint8, dest *lineNode[K, E], destStart uint8) {
	for i := begin; i < end; i++ {
		dest.elems[destStart+(i-begin)] = l.elems[i]
	}
}

// initFrom copies another line node's contents wholesale, used when lifting
// a leaf line out into a freshly allocated page.
func (l *lineNode[K, E]) initFrom(other *lineNode[K, E]) {
	l.moveToFromOther(other)
	l.count = other.count
}

func (l *lineNode[K, E]) moveToFromOther(other *lineNode[K, E]) {
	for i := uint8(0); i < other.count; i++ {
		l.elems[i] = other.elems[i]
	}
}

// insert adds a new element. The caller must ensure the line is not full.
func (l *lineNode[K, E]) insert(newElem E) {
	insertIndex := l.endIndex()
	nk := newElem.key()
	for i := l.minIndex(); i < l.endIndex(); i++ {
		if l.key(i) > nk {
			insertIndex = i
			break
		}
	}
	l.moveOneBack(insertIndex, l.endIndex())
	l.setElem(insertIndex, newElem)
	l.count++
}

// split moves roughly half of this line's tail into splitNode, leaving the
// odd element (if any) in this node.
func (l *lineNode[K, E]) split(splitNode *lineNode[K, E]) {
	newCount := l.count/2 + l.count%2
	splitNode.count = l.count / 2
	l.moveTo(newCount, l.endIndex(), splitNode, splitNode.minIndex())
	l.count = newCount
}

// erase removes the element at eraseIndex, which may leave the line thin.
func (l *lineNode[K, E]) erase(eraseIndex uint8) {
	if eraseIndex < l.endIndex() {
		l.moveOneForward(eraseIndex+1, l.endIndex())
	}
	l.count--
}

// mergePrevErase erases eraseIndex while folding the remaining elements into
// prevNode, leaving this line empty.
func (l *lineNode[K, E]) mergePrevErase(eraseIndex uint8, prevNode *lineNode[K, E]) {
	l.moveTo(0, eraseIndex, prevNode, prevNode.endIndex())
	l.moveTo(eraseIndex+1, l.endIndex(), prevNode, prevNode.endIndex()+eraseIndex)
	prevNode.count += l.count - 1
	l.count = 0
}

// mergeNextErase erases eraseIndex while folding nextNode's elements into
// this line, leaving nextNode empty.
func (l *lineNode[K, E]) mergeNextErase(eraseIndex uint8, nextNode *lineNode[K, E]) {
	l.moveOneForward(eraseIndex+1, l.endIndex())
	nextNode.moveTo(nextNode.minIndex(), nextNode.endIndex(), l, l.endIndex()-1)
	l.count += nextNode.count - 1
	nextNode.count = 0
}

// borrowPrevErase erases eraseIndex while pulling one element in from
// prevNode to keep this line above the minimum fill.
func (l *lineNode[K, E]) borrowPrevErase(eraseIndex uint8, prevNode *lineNode[K, E]) {
	l.moveOneBack(l.minIndex(), eraseIndex)
	prevNode.moveTo(prevNode.endIndex()-1, prevNode.endIndex(), l, l.minIndex())
	prevNode.count--
}

// borrowNextErase erases eraseIndex while pulling one element in from
// nextNode to keep this line above the minimum fill.
func (l *lineNode[K, E]) borrowNextErase(eraseIndex uint8, nextNode *lineNode[K, E]) {
	l.moveOneForward(eraseIndex+1, l.endIndex())
	nextNode.moveTo(nextNode.minIndex(), nextNode.minIndex()+1, l, l.endIndex()-1)
	nextNode.moveOneForward(nextNode.minIndex()+1, nextNode.endIndex())
	nextNode.count--
}
