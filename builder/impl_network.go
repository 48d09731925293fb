// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// impl_network.go - the construction stages.

package builder

import (
	"fmt"

	"github.com/katalvlaran/gridflow/core"
)

// endpointNodes creates one MV node per distinct line endpoint name,
// in order of first appearance. Coordinates come from the location
// lookup when present, else (0,0).
func endpointNodes(st *buildState) error {
	for _, l := range st.in.Lines {
		for _, name := range [2]string{l.From, l.To} {
			if _, exists := st.model.NodeByName(name); exists {
				continue
			}
			loc := st.in.Locations[name]
			n := core.Node{
				ID:           st.cfg.ids.Next(),
				Name:         name,
				RatedVoltage: st.cfg.voltages.MV,
				Lat:          loc.Lat,
				Lon:          loc.Lon,
			}
			if err := st.model.AddNode(n, st.cfg.naming); err != nil {
				return fmt.Errorf("endpoint of line %q: %w", l.ID, err)
			}
		}
	}

	return nil
}

// lines creates every line with the parameters of its voltage level.
// An unknown level is built as LV unless the policy is strict.
func lines(st *buildState) error {
	for _, l := range st.in.Lines {
		level := core.VoltageLevel(l.VoltageLevel)
		params, ok := st.cfg.lineParams[level]
		if !ok {
			err := st.strictOr(ErrUnknownVoltageLevel, IssueUnknownVoltageLevel, l.ID,
				fmt.Sprintf("level %q built as LV", l.VoltageLevel))
			if err != nil {
				return err
			}
			level = core.LevelLV
			params = st.cfg.lineParams[level]
		}
		from, _ := st.model.NodeByName(l.From)
		to, _ := st.model.NodeByName(l.To)
		line := core.Line{
			ID:            st.cfg.ids.Next(),
			Name:          l.ID,
			From:          from.ID,
			To:            to.ID,
			Resistance:    params.Resistance,
			Reactance:     params.Reactance,
			CurrentRating: params.CurrentRating,
			LengthKm:      l.LengthKm,
			Level:         level,
		}
		if err := st.model.AddLine(line); err != nil {
			return fmt.Errorf("line %q: %w", l.ID, err)
		}
		st.lines[l.ID] = line
	}

	return nil
}

// buildings creates an LV node and a load per building. The load starts at
// the building's peak load.
func buildings(st *buildState) error {
	for _, b := range st.in.Buildings {
		if _, exists := st.model.NodeByName(b.ID); exists {
			if err := st.strictOr(ErrDuplicateName, IssueDuplicateName, b.ID, "node name already in use"); err != nil {
				return err
			}
			continue
		}
		n := core.Node{
			ID:           st.cfg.ids.Next(),
			Name:         b.ID,
			RatedVoltage: st.cfg.voltages.LV,
			Lat:          b.Lat,
			Lon:          b.Lon,
			PeakLoadKW:   b.PeakLoadKW,
		}
		if err := st.model.AddNode(n, st.cfg.naming); err != nil {
			return fmt.Errorf("building %q: %w", b.ID, err)
		}
		ld := core.Load{
			ID:      st.cfg.ids.Next(),
			Node:    n.ID,
			Status:  st.cfg.loadStatus,
			Type:    st.cfg.loadType,
			PowerKW: b.PeakLoadKW,
		}
		if err := st.model.AddLoad(ld); err != nil {
			return fmt.Errorf("load of %q: %w", b.ID, err)
		}
		st.buildings[b.ID] = n.ID
	}

	return nil
}

// links attaches each assigned building to the to-node of its line.
func links(st *buildState) error {
	for _, a := range st.in.Assignments {
		bid, ok := st.buildings[a.BuildingID]
		if !ok {
			err := st.strictOr(ErrUnresolvedReference, IssueUnresolvedBuilding, a.BuildingID,
				fmt.Sprintf("assignment to line %q names an unknown building", a.LineID))
			if err != nil {
				return err
			}
			continue
		}
		line, ok := st.lines[a.LineID]
		if !ok {
			err := st.strictOr(ErrUnresolvedReference, IssueUnresolvedLine, a.LineID,
				fmt.Sprintf("assignment of building %q names an unknown line", a.BuildingID))
			if err != nil {
				return err
			}
			continue
		}
		k := core.Link{
			ID:         st.cfg.ids.Next(),
			Name:       fmt.Sprintf("Link_%s_to_%s", a.BuildingID, a.LineID),
			From:       bid,
			To:         line.To,
			DistanceKm: a.DistanceKm,
		}
		if err := st.model.AddLink(k); err != nil {
			return fmt.Errorf("link %q: %w", k.Name, err)
		}
	}

	return nil
}

// source places the slack at the root node. A missing root is reported,
// never an error: the solver decides what a network without slack means.
func source(st *buildState) error {
	root, ok := st.model.NodeByName(st.cfg.naming.RootName)
	if !ok {
		st.issue(IssueNoSource, st.cfg.naming.RootName, "no root node; model has no source")
		return nil
	}
	s := core.Source{
		ID:               st.cfg.ids.Next(),
		Node:             root.ID,
		Status:           DefaultSourceStatus,
		ReferenceVoltage: st.cfg.slackPU,
	}
	if err := st.model.AddSource(s); err != nil {
		return fmt.Errorf("source: %w", err)
	}

	return nil
}
