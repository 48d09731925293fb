// SPDX-License-Identifier: MIT
// File: methods_clone.go
// Role: Independent per-step copies of a Model.
// Determinism:
//   - Collections and index maps are copied entry by entry; insertion order is kept.
// Concurrency:
//   - Read lock on the source only; the clone shares no mutable state with it.

package core

// Clone returns a deep copy of m. Entity structs hold no references, so
// copying the slices is sufficient for isolation; maps are rebuilt.
func (m *Model) Clone() *Model {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := &Model{
		nodes:      append([]Node(nil), m.nodes...),
		lines:      append([]Line(nil), m.lines...),
		links:      append([]Link(nil), m.links...),
		loads:      append([]Load(nil), m.loads...),
		sources:    append([]Source(nil), m.sources...),
		shunts:     append([]Shunt(nil), m.shunts...),
		ids:        make(map[ID]struct{}, len(m.ids)),
		nodeIndex:  make(map[ID]int, len(m.nodeIndex)),
		nameIndex:  make(map[string]ID, len(m.nameIndex)),
		lineIndex:  make(map[ID]int, len(m.lineIndex)),
		loadByName: make(map[string]int, len(m.loadByName)),
		adjacency:  make(map[ID][]ID, len(m.adjacency)),
	}
	for id := range m.ids {
		c.ids[id] = struct{}{}
	}
	for id, i := range m.nodeIndex {
		c.nodeIndex[id] = i
	}
	for name, id := range m.nameIndex {
		c.nameIndex[name] = id
	}
	for id, i := range m.lineIndex {
		c.lineIndex[id] = i
	}
	for name, i := range m.loadByName {
		c.loadByName[name] = i
	}
	for id, nbrs := range m.adjacency {
		c.adjacency[id] = append([]ID(nil), nbrs...)
	}

	return c
}
