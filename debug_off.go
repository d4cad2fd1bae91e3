//go:build !doubletreedebug

package doubletree

// checkInvariants is a no-op in ordinary builds; see debug.go for the
// doubletreedebug-tagged implementation.
func (m *Map[K, V]) checkInvariants() {}
