// SPDX-License-Identifier: MIT
// File: methods_add.go
// Role: Insertion of entities with id, name and reference checks.
// Concurrency:
//   - Every Add* holds the write lock for its whole duration.

package core

import "fmt"

// AddNode inserts n, classifying its name with naming. Class is cached on
// the stored copy; callers do not need to set it.
func (m *Model) AddNode(n Node, naming Naming) error {
	if n.Name == "" {
		return ErrEmptyName
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.nameIndex[n.Name]; dup {
		return fmt.Errorf("AddNode %q: %w", n.Name, ErrDuplicateName)
	}
	if err := m.claim(n.ID); err != nil {
		return fmt.Errorf("AddNode %q: %w", n.Name, err)
	}
	n.Class = naming.Classify(n.Name)
	m.nodeIndex[n.ID] = len(m.nodes)
	m.nameIndex[n.Name] = n.ID
	m.nodes = append(m.nodes, n)

	return nil
}

// AddLine inserts l. Both endpoints must exist.
func (m *Model) AddLine(l Line) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireNodes(l.From, l.To); err != nil {
		return fmt.Errorf("AddLine %q: %w", l.Name, err)
	}
	if err := m.claim(l.ID); err != nil {
		return fmt.Errorf("AddLine %q: %w", l.Name, err)
	}
	m.lineIndex[l.ID] = len(m.lines)
	m.lines = append(m.lines, l)
	m.connect(l.From, l.To)

	return nil
}

// AddLink inserts k. Both endpoints must exist.
func (m *Model) AddLink(k Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireNodes(k.From, k.To); err != nil {
		return fmt.Errorf("AddLink %q: %w", k.Name, err)
	}
	if err := m.claim(k.ID); err != nil {
		return fmt.Errorf("AddLink %q: %w", k.Name, err)
	}
	m.links = append(m.links, k)
	m.connect(k.From, k.To)

	return nil
}

// AddLoad inserts ld and binds it to its node name for ApplyLoads.
func (m *Model) AddLoad(ld Load) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireNodes(ld.Node); err != nil {
		return fmt.Errorf("AddLoad %d: %w", ld.ID, err)
	}
	if err := m.claim(ld.ID); err != nil {
		return fmt.Errorf("AddLoad %d: %w", ld.ID, err)
	}
	name := m.nodes[m.nodeIndex[ld.Node]].Name
	if _, bound := m.loadByName[name]; !bound {
		m.loadByName[name] = len(m.loads)
	}
	m.loads = append(m.loads, ld)

	return nil
}

// AddSource inserts s.
func (m *Model) AddSource(s Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireNodes(s.Node); err != nil {
		return fmt.Errorf("AddSource %d: %w", s.ID, err)
	}
	if err := m.claim(s.ID); err != nil {
		return fmt.Errorf("AddSource %d: %w", s.ID, err)
	}
	m.sources = append(m.sources, s)

	return nil
}

// AddShunt inserts sh.
func (m *Model) AddShunt(sh Shunt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireNodes(sh.Node); err != nil {
		return fmt.Errorf("AddShunt %d: %w", sh.ID, err)
	}
	if err := m.claim(sh.ID); err != nil {
		return fmt.Errorf("AddShunt %d: %w", sh.ID, err)
	}
	m.shunts = append(m.shunts, sh)

	return nil
}

// claim reserves id in the shared id space. Caller holds m.mu.
func (m *Model) claim(id ID) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	if _, used := m.ids[id]; used {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	m.ids[id] = struct{}{}

	return nil
}

// requireNodes checks that every id names a node. Caller holds m.mu.
func (m *Model) requireNodes(ids ...ID) error {
	for _, id := range ids {
		if _, ok := m.nodeIndex[id]; !ok {
			return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
		}
	}

	return nil
}

// connect records an undirected adjacency. Caller holds m.mu.
func (m *Model) connect(a, b ID) {
	m.adjacency[a] = append(m.adjacency[a], b)
	if a != b {
		m.adjacency[b] = append(m.adjacency[b], a)
	}
}
