package doubletree

import "cmp"

// entry is the leaf-role element: one user key/value pair.
type entry[K cmp.Ordered, V any] struct {
	k K
	v V
}

func (e entry[K, V]) key() K                  { return e.k }
func (e entry[K, V]) withKey(k K) entry[K, V] { e.k = k; return e }

// childRef is the outer-tree stem-role element: a routing key paired with a
// pointer to the child page it routes to. Exactly one of stem/leaf is set,
// the caller knowing from stemLevels whether the next level down is itself
// a stem page or a leaf page.
type childRef[K cmp.Ordered, V any] struct {
	k    K
	stem *page[K, childRef[K, V]]
	leaf *page[K, entry[K, V]]
}

func (c childRef[K, V]) key() K                     { return c.k }
func (c childRef[K, V]) withKey(k K) childRef[K, V] { c.k = k; return c }

// stemSlot is the intra-page stem-role element: a routing key paired with
// the 8-bit index of the sibling slot, within the same page's pool, that it
// routes to. This is the page-local analogue of childRef.
type stemSlot[K cmp.Ordered] struct {
	k   K
	idx uint8
}

func (s stemSlot[K]) key() K                  { return s.k }
func (s stemSlot[K]) withKey(k K) stemSlot[K] { s.k = k; return s }

// pagePosition locates an element within a page: which pool slot, and which
// index within that slot's line.
type pagePosition struct {
	line uint8
	elem uint8
}

func (p pagePosition) equal(o pagePosition) bool {
	return p.line == o.line && p.elem == o.elem
}
