// SPDX-License-Identifier: MIT

package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/core"
)

// smallModel is MainSubstation -L3- Feeder1 <-link6- B0001 (load 5), source 7.
func smallModel(t testing.TB) *core.Model {
	t.Helper()
	m := core.NewModel()
	naming := core.DefaultNaming()
	require.NoError(t, m.AddNode(core.Node{ID: 1, Name: "MainSubstation", RatedVoltage: 20000}, naming))
	require.NoError(t, m.AddNode(core.Node{ID: 2, Name: "Feeder1", RatedVoltage: 20000}, naming))
	require.NoError(t, m.AddLine(core.Line{ID: 3, Name: "L1", From: 1, To: 2, Resistance: 1, Reactance: 5, CurrentRating: 300, Level: core.LevelMV}))
	require.NoError(t, m.AddNode(core.Node{ID: 4, Name: "B0001", RatedVoltage: 400}, naming))
	require.NoError(t, m.AddLoad(core.Load{ID: 5, Node: 4, Status: 1, Type: 1, PowerKW: 10}))
	require.NoError(t, m.AddLink(core.Link{ID: 6, Name: "Link_B0001_to_L1", From: 4, To: 2}))
	require.NoError(t, m.AddSource(core.Source{ID: 7, Node: 1, Status: 1, ReferenceVoltage: 1}))

	return m
}
