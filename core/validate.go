// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"fmt"
)

// Validate re-checks id uniqueness, name uniqueness and that every
// reference names an existing node. All violations are joined.
func (m *Model) Validate() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var errs []error
	seen := make(map[ID]struct{}, len(m.ids))
	use := func(kind string, id ID) {
		if _, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("%s %d: %w", kind, id, ErrDuplicateID))
		}
		seen[id] = struct{}{}
	}
	ref := func(kind string, id, node ID) {
		if _, ok := m.nodeIndex[node]; !ok {
			errs = append(errs, fmt.Errorf("%s %d -> node %d: %w", kind, id, node, ErrNodeNotFound))
		}
	}

	names := make(map[string]struct{}, len(m.nodes))
	for _, n := range m.nodes {
		use("node", n.ID)
		if _, dup := names[n.Name]; dup {
			errs = append(errs, fmt.Errorf("node %q: %w", n.Name, ErrDuplicateName))
		}
		names[n.Name] = struct{}{}
	}
	for _, l := range m.lines {
		use("line", l.ID)
		ref("line", l.ID, l.From)
		ref("line", l.ID, l.To)
	}
	for _, k := range m.links {
		use("link", k.ID)
		ref("link", k.ID, k.From)
		ref("link", k.ID, k.To)
	}
	for _, ld := range m.loads {
		use("load", ld.ID)
		ref("load", ld.ID, ld.Node)
	}
	for _, s := range m.sources {
		use("source", s.ID)
		ref("source", s.ID, s.Node)
	}
	for _, sh := range m.shunts {
		use("shunt", sh.ID)
		ref("shunt", sh.ID, sh.Node)
	}

	return errors.Join(errs...)
}
