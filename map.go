package doubletree

// Get returns the value stored under key and true, or the zero value and
// false if key is absent. The non-panicking escape hatch alongside At.
func (m *Map[K, V]) Get(key K) (V, bool) {
	leaf, pos := m.find(key)
	if leaf == nil {
		var z V
		return z, false
	}
	line := &leaf.leafPool[pos.line]
	if pos.elem >= line.count || line.key(pos.elem) != key {
		var z V
		return z, false
	}
	return line.elem(pos.elem).v, true
}

// At returns the value stored under key, panicking with a PreconditionError
// if key is absent. Get is the corresponding soft lookup.
func (m *Map[K, V]) At(key K) V {
	v, ok := m.Get(key)
	if !ok {
		panicPrecondition("Map.At")
	}
	return v
}

// Range walks every entry with key in [start, end) in ascending order,
// stopping early if visit returns false. Built on the internal find lookup
// and Iterator.Next rather than a dedicated range scan.
func (m *Map[K, V]) Range(start, end K, visit func(K, V) bool) {
	if m.Empty() || !(start < end) {
		return
	}
	leaf, pos := m.find(start)
	it := Iterator[K, V]{page: leaf, pos: pos}
	if !it.Valid() || it.Key() < start {
		it = it.Next()
	}
	for it.Valid() && it.Key() < end {
		if !visit(it.Key(), it.Value()) {
			return
		}
		it = it.Next()
	}
}
