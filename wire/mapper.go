// SPDX-License-Identifier: MIT
// Package: gridflow/wire
//
// mapper.go - Model to solver input. Pure: no I/O, no retained state.

package wire

import "github.com/katalvlaran/gridflow/core"

// WattsPerKW converts model power (kW) to solver power (W).
const WattsPerKW = 1000.0

// ToSolverInput maps every collection of m into solver input, preserving
// collection order.
func ToSolverInput(m *core.Model) *Input {
	return build(m, m.Loads())
}

// ToSolverInputOverlay maps the overlay's base topology with the overlay's
// load powers.
func ToSolverInputOverlay(o *core.Overlay) *Input {
	return build(o.Base(), o.Loads())
}

func build(m *core.Model, loads []core.Load) *Input {
	nodes, lines, links := m.Nodes(), m.Lines(), m.Links()
	sources, shunts := m.Sources(), m.Shunts()

	in := &Input{
		Node:    make([]Node, 0, len(nodes)),
		Line:    make([]Line, 0, len(lines)),
		Link:    make([]Link, 0, len(links)),
		Source:  make([]Source, 0, len(sources)),
		SymLoad: make([]SymLoad, 0, len(loads)),
		Shunt:   make([]Shunt, 0, len(shunts)),
	}
	for _, n := range nodes {
		in.Node = append(in.Node, Node{ID: n.ID, RatedVoltage: n.RatedVoltage, DisplayName: n.Name})
	}
	for _, l := range lines {
		in.Line = append(in.Line, Line{
			ID:            l.ID,
			From:          l.From,
			To:            l.To,
			Resistance:    l.Resistance,
			Reactance:     l.Reactance,
			CurrentRating: l.CurrentRating,
		})
	}
	for _, k := range links {
		in.Link = append(in.Link, Link{ID: k.ID, From: k.From, To: k.To})
	}
	for _, s := range sources {
		in.Source = append(in.Source, Source{ID: s.ID, Node: s.Node, Status: s.Status, ReferenceVoltage: s.ReferenceVoltage})
	}
	for _, ld := range loads {
		in.SymLoad = append(in.SymLoad, SymLoad{
			ID:             ld.ID,
			Node:           ld.Node,
			Status:         ld.Status,
			Type:           ld.Type,
			SpecifiedPower: ld.PowerKW * WattsPerKW,
		})
	}
	for _, sh := range shunts {
		in.Shunt = append(in.Shunt, Shunt{ID: sh.ID, Node: sh.Node, Status: sh.Status, Conductance: sh.Conductance})
	}

	return in
}
