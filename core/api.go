// SPDX-License-Identifier: MIT
// File: api.go
// Role: Read-only accessors over a Model.
// Policy:
//   - Slices returned here are copies; mutating them never affects the Model.
//   - Order is insertion order, which the builder keeps deterministic.

package core

import (
	"fmt"
	"sort"
)

// Nodes returns a copy of the node collection.
func (m *Model) Nodes() []Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Node(nil), m.nodes...)
}

// Lines returns a copy of the line collection.
func (m *Model) Lines() []Line {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Line(nil), m.lines...)
}

// Links returns a copy of the link collection.
func (m *Model) Links() []Link {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Link(nil), m.links...)
}

// Loads returns a copy of the load collection.
func (m *Model) Loads() []Load {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Load(nil), m.loads...)
}

// Sources returns a copy of the source collection.
func (m *Model) Sources() []Source {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Source(nil), m.sources...)
}

// Shunts returns a copy of the shunt collection.
func (m *Model) Shunts() []Shunt {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Shunt(nil), m.shunts...)
}

// Node returns the node with the given id.
func (m *Model) Node(id ID) (Node, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return m.nodes[i], true
}

// NodeByName resolves a node through the name index.
func (m *Model) NodeByName(name string) (Node, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.nameIndex[name]
	if !ok {
		return Node{}, false
	}
	return m.nodes[m.nodeIndex[id]], true
}

// Line returns the line with the given id.
func (m *Model) Line(id ID) (Line, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.lineIndex[id]
	if !ok {
		return Line{}, fmt.Errorf("%w: %d", ErrLineNotFound, id)
	}
	return m.lines[i], nil
}

// HasID reports whether id is allocated to any entity.
func (m *Model) HasID(id ID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.ids[id]
	return ok
}

// Neighbors returns the nodes connected to id by a line or a link, ascending.
func (m *Model) Neighbors(id ID) ([]ID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.nodeIndex[id]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	out := append([]ID(nil), m.adjacency[id]...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out, nil
}

// Stats is a point-in-time count of every collection.
type Stats struct {
	Nodes   int
	Lines   int
	Links   int
	Loads   int
	Sources int
	Shunts  int
}

// Entities is the total number of allocated ids.
func (s Stats) Entities() int {
	return s.Nodes + s.Lines + s.Links + s.Loads + s.Sources + s.Shunts
}

// Stats returns collection sizes.
func (m *Model) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		Nodes:   len(m.nodes),
		Lines:   len(m.lines),
		Links:   len(m.links),
		Loads:   len(m.loads),
		Sources: len(m.sources),
		Shunts:  len(m.shunts),
	}
}
