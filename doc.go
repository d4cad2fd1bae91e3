// Package doubletree implements an ordered associative container built as a
// B+-tree of B+-trees.
//
// Outer nodes are page-sized B+-trees (the page level) whose own nodes are
// cache-line-sized B+-trees (the line level). The nesting gives simultaneous
// locality at both a DRAM-page granularity and an L1-cache-line granularity:
// walking from one element to the next usually only touches cache lines
// already resident from the walk into the enclosing page.
//
// Usage:
//
//	var m doubletree.Map[string, int]
//	m.Insert("a", 1)
//	m.Insert("b", 2)
//	if v, ok := m.Get("a"); ok {
//		fmt.Println(v)
//	}
//	for it := m.Begin(); it != m.End(); it = it.Next() {
//		fmt.Println(it.Key(), it.Value())
//	}
//
// The map is not safe for concurrent use, does not persist or serialize its
// contents, and does not support custom comparators, bulk loading, duplicate
// keys, or range erase.
package doubletree
