//go:build doubletreedebug

package doubletree

import (
	"cmp"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// debugLogger is created once and reused across every checkInvariants
// call rather than constructing one per call site.
var debugLogger = func() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return l
}()

// checkInvariants walks the whole map and panics on the first structural
// violation it finds, logging the violation first: key order across the
// leaf-page list, the tracked length, each page's routing keys, line
// fill, load state, and slot-pool accounting. Called after every public
// mutation when built with the doubletreedebug tag.
func (m *Map[K, V]) checkInvariants() {
	if m.stemLevels == 0 {
		if m.leafRoot == nil {
			return
		}
		checkPage[K, entry[K, V]](m.leafRoot, "leafRoot")
		return
	}

	checkOuterStem[K, V](m.stemRoot, m.stemLevels, "stemRoot")

	for leaf := m.minLeaf; leaf != nil; leaf = leaf.nextPage {
		checkPage[K, entry[K, V]](leaf, "leafPage")
	}

	count := 0
	prevKeySet := false
	var prevKey K
	for it := m.Begin(); it.Valid(); it = it.Next() {
		k := it.Key()
		if prevKeySet && k <= prevKey {
			debugLogger.Error("keys out of order across leaf-page list",
				zap.Any("prev", prevKey), zap.Any("next", k))
			panicPrecondition("checkInvariants: leaf-page order")
		}
		prevKey, prevKeySet = k, true
		count++
	}
	if count != m.length {
		debugLogger.Error("length mismatch", zap.Int("tracked", m.length), zap.Int("counted", count))
		panicPrecondition("checkInvariants: length")
	}
}

func checkOuterStem[K cmp.Ordered, V any](stem *stemPage[K, V], levels uint8, label string) {
	checkPage[K, childRef[K, V]](stem, label)
	for pos := stem.minPosition(); ; pos = stem.nextPosition(pos) {
		ref := stem.elemAt(pos)
		if levels == 1 {
			if ref.leaf == nil {
				debugLogger.Error("nil leaf child at outer stem level 1", zap.String("page", label))
				panicPrecondition("checkInvariants: nil leaf child")
			}
			checkPage[K, entry[K, V]](ref.leaf, "leafChild")
			if ref.leaf.minKey() != ref.k {
				debugLogger.Error("outer routing key disagrees with child minimum",
					zap.String("page", label), zap.Any("routing", ref.k))
				panicPrecondition("checkInvariants: outer routing key")
			}
		} else {
			if ref.stem == nil {
				debugLogger.Error("nil stem child above outer stem level 1", zap.String("page", label))
				panicPrecondition("checkInvariants: nil stem child")
			}
			checkOuterStem[K, V](ref.stem, levels-1, "stemChild")
			if ref.stem.minKey() != ref.k {
				debugLogger.Error("outer routing key disagrees with child minimum",
					zap.String("page", label), zap.Any("routing", ref.k))
				panicPrecondition("checkInvariants: outer routing key")
			}
		}
		if !stem.hasNext(pos) {
			break
		}
	}
}

// dumpTo writes a human-readable tree dump of the map to w: one line per
// page, indented by outer-tree depth, showing every key the page's root
// line (or leaf-line list) carries. Not part of the public surface, only
// reachable under doubletreedebug.
func (m *Map[K, V]) dumpTo(w io.Writer) {
	if m.stemLevels == 0 {
		if m.leafRoot != nil {
			dumpPage(w, m.leafRoot, 0)
		}
		return
	}
	dumpOuterStem(w, m.stemRoot, m.stemLevels, 0)
}

func dumpOuterStem[K cmp.Ordered, V any](w io.Writer, stem *stemPage[K, V], levels uint8, depth int) {
	dumpPage(w, stem, depth)
	for pos := stem.minPosition(); ; pos = stem.nextPosition(pos) {
		ref := stem.elemAt(pos)
		if levels == 1 {
			dumpPage(w, ref.leaf, depth+1)
		} else {
			dumpOuterStem(w, ref.stem, levels-1, depth+1)
		}
		if !stem.hasNext(pos) {
			break
		}
	}
}

func dumpPage[K cmp.Ordered, E keyer[K, E]](w io.Writer, p *page[K, E], depth int) {
	indent := strings.Repeat("  ", depth)
	var keys []K
	for slot := p.minLeaf; slot != lineNilIndex; slot = p.leafPool[slot].next {
		line := &p.leafPool[slot]
		for i := uint8(0); i < line.count; i++ {
			keys = append(keys, line.key(i))
		}
	}
	fmt.Fprintf(w, "%spage(stemLevels=%d): %v\n", indent, p.stemLevels, keys)
}

// checkPage validates a single page's invariants: it is not oversized at
// rest, every stem line's routing keys agree with its children's minimum
// keys, every non-root, non-extreme line respects the minimum fill, the
// leaf-line list is acyclic, and every slot is either reachable from the
// intra-page root or sitting on the free list (no lost or double-owned
// slots).
func checkPage[K cmp.Ordered, E keyer[K, E]](p *page[K, E], label string) {
	if p.pool.freeCount > poolCount {
		debugLogger.Error("pool free count exceeds pool size", zap.String("page", label))
		panicPrecondition("checkInvariants: pool accounting")
	}
	if p.oversized() {
		debugLogger.Error("page oversized at rest", zap.String("page", label))
		panicPrecondition("checkInvariants: page oversized")
	}
	if p.empty() {
		return
	}

	seen := uint8(0)
	for slot := p.minLeaf; slot != lineNilIndex; slot = p.leafPool[slot].next {
		seen++
		if seen > poolCount {
			debugLogger.Error("leaf-line list cycle detected", zap.String("page", label))
			panicPrecondition("checkInvariants: leaf-line cycle")
		}
	}

	reachable := make(map[uint8]bool, poolCount)
	checkIntraPageLine(p, p.root, p.stemLevels, true, reachable, label)

	freeSeen := make(map[uint8]bool, poolCount)
	for idx := p.pool.head; idx != slotNil; idx = p.pool.freeLink[idx] {
		if freeSeen[idx] {
			debugLogger.Error("slot free list cycle detected", zap.String("page", label))
			panicPrecondition("checkInvariants: free list cycle")
		}
		freeSeen[idx] = true
	}
	if uint8(len(reachable)+len(freeSeen)) != p.pool.back {
		debugLogger.Error("slot pool has lost or double-owned slots",
			zap.String("page", label), zap.Int("reachable", len(reachable)),
			zap.Int("free", len(freeSeen)), zap.Uint8("back", p.pool.back))
		panicPrecondition("checkInvariants: slot accounting")
	}
}

// checkIntraPageLine walks one line of the intra-page tree rooted at
// slot, recording every visited slot in reachable and checking line fill
// and routing-key agreement along the way. Returns the line's minimum
// key so the caller (one level up) can check it against its own routing
// entry.
func checkIntraPageLine[K cmp.Ordered, E keyer[K, E]](p *page[K, E], slot uint8, levels uint8, isRoot bool, reachable map[uint8]bool, label string) K {
	reachable[slot] = true

	if levels == 0 {
		line := &p.leafPool[slot]
		if !isRoot && line.thin() && slot != p.minLeaf && slot != p.maxLeaf {
			debugLogger.Error("leaf line underflowed minimum fill",
				zap.String("page", label), zap.Uint8("slot", slot))
			panicPrecondition("checkInvariants: line fill")
		}
		return line.minKey()
	}

	line := &p.stemPool[slot]
	if !isRoot && line.thin() {
		debugLogger.Error("stem line underflowed minimum fill",
			zap.String("page", label), zap.Uint8("slot", slot))
		panicPrecondition("checkInvariants: line fill")
	}
	for i := line.minIndex(); i < line.endIndex(); i++ {
		childSlot := line.elem(i).idx
		childMin := checkIntraPageLine(p, childSlot, levels-1, false, reachable, label)
		if childMin != line.key(i) {
			debugLogger.Error("intra-page routing key disagrees with child minimum",
				zap.String("page", label), zap.Uint8("slot", slot))
			panicPrecondition("checkInvariants: intra-page routing key")
		}
	}
	return line.minKey()
}
