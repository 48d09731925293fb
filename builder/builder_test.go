// SPDX-License-Identifier: MIT

package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/gridflow/builder"
	"github.com/katalvlaran/gridflow/core"
	"github.com/katalvlaran/gridflow/table"
)

func scenario() builder.Tables {
	return builder.Tables{
		Lines:       []table.Line{{ID: "L1", From: "MainSubstation", To: "Feeder1", LengthKm: 1, VoltageLevel: "MV"}},
		Buildings:   []table.Building{{ID: "B0001", Lat: 1, Lon: 2, PeakLoadKW: 5}},
		Assignments: []table.Assignment{{BuildingID: "B0001", LineID: "L1", DistanceKm: 0.01}},
	}
}

func TestBuild_Scenario(t *testing.T) {
	m, rep, err := builder.Build(scenario())
	require.NoError(t, err)
	assert.True(t, rep.Empty(), "issues: %+v", rep.Issues)
	require.NoError(t, m.Validate())

	nodes := m.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, core.Node{ID: 1, Name: "MainSubstation", RatedVoltage: 20000, Class: core.ClassStation}, nodes[0])
	assert.Equal(t, core.Node{ID: 2, Name: "Feeder1", RatedVoltage: 20000, Class: core.ClassFeeder}, nodes[1])
	assert.Equal(t, core.Node{ID: 4, Name: "B0001", RatedVoltage: 400, Lat: 1, Lon: 2, PeakLoadKW: 5, Class: core.ClassBuilding}, nodes[2])

	assert.Equal(t, []core.Line{{
		ID: 3, Name: "L1", From: 1, To: 2, Resistance: 1, Reactance: 5, CurrentRating: 300, LengthKm: 1, Level: core.LevelMV,
	}}, m.Lines())
	assert.Equal(t, []core.Load{{ID: 5, Node: 4, Status: 1, Type: 1, PowerKW: 5}}, m.Loads())
	assert.Equal(t, []core.Link{{ID: 6, Name: "Link_B0001_to_L1", From: 4, To: 2, DistanceKm: 0.01}}, m.Links())
	assert.Equal(t, []core.Source{{ID: 7, Node: 1, Status: 1, ReferenceVoltage: 1}}, m.Sources())
	assert.Empty(t, m.Shunts())
}

func TestBuild_IDsAreGloballyUnique(t *testing.T) {
	in := builder.Tables{
		Lines: []table.Line{
			{ID: "L1", From: "MainSubstation", To: "Feeder1", VoltageLevel: "MV"},
			{ID: "L2", From: "Feeder1", To: "Feeder2", VoltageLevel: "MV"},
			{ID: "L3", From: "Feeder2", To: "Feeder3", VoltageLevel: "LV"},
		},
	}
	for i, name := range []string{"B1", "B2", "B3", "B4", "B5"} {
		in.Buildings = append(in.Buildings, table.Building{ID: name, PeakLoadKW: float64(i)})
		in.Assignments = append(in.Assignments, table.Assignment{BuildingID: name, LineID: []string{"L1", "L2", "L3"}[i%3]})
	}

	m, rep, err := builder.Build(in)
	require.NoError(t, err)
	assert.True(t, rep.Empty())

	seen := map[core.ID]bool{}
	mark := func(id core.ID) {
		assert.False(t, seen[id], "id %d reused", id)
		seen[id] = true
	}
	for _, n := range m.Nodes() {
		mark(n.ID)
	}
	for _, l := range m.Lines() {
		mark(l.ID)
	}
	for _, k := range m.Links() {
		mark(k.ID)
	}
	for _, ld := range m.Loads() {
		mark(ld.ID)
	}
	for _, s := range m.Sources() {
		mark(s.ID)
	}
	assert.Len(t, seen, m.Stats().Entities())
	assert.NoError(t, m.Validate())

	l3, err := m.Line(m.Lines()[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 0.5, l3.Resistance)
	assert.Equal(t, 1.0, l3.Reactance)
}

func TestBuild_UnresolvedReferences(t *testing.T) {
	in := scenario()
	in.Assignments = append(in.Assignments,
		table.Assignment{BuildingID: "B9999", LineID: "L1"},
		table.Assignment{BuildingID: "B0001", LineID: "L404"},
	)

	t.Run("lenient skips and reports", func(t *testing.T) {
		m, rep, err := builder.Build(in)
		require.NoError(t, err)
		assert.Len(t, m.Links(), 1)
		assert.Equal(t, 1, rep.Count(builder.IssueUnresolvedBuilding))
		assert.Equal(t, 1, rep.Count(builder.IssueUnresolvedLine))
		assert.Equal(t, 2, rep.Skipped())
		assert.Equal(t, "B9999", rep.Issues[0].Record)
		assert.NoError(t, m.Validate())
	})

	t.Run("strict rejects", func(t *testing.T) {
		m, rep, err := builder.Build(in, builder.WithStrictReferences())
		assert.ErrorIs(t, err, builder.ErrUnresolvedReference)
		assert.Nil(t, m)
		assert.True(t, rep.Empty())
	})
}

func TestBuild_DuplicateBuildingName(t *testing.T) {
	in := scenario()
	in.Buildings = append(in.Buildings, table.Building{ID: "B0001", PeakLoadKW: 99})

	m, rep, err := builder.Build(in)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Count(builder.IssueDuplicateName))
	require.Len(t, m.Loads(), 1)
	assert.Equal(t, 5.0, m.Loads()[0].PowerKW, "first building wins")

	_, _, err = builder.Build(in, builder.WithStrictReferences())
	assert.ErrorIs(t, err, builder.ErrDuplicateName)
}

func TestBuild_UnknownVoltageLevel(t *testing.T) {
	in := scenario()
	in.Lines[0].VoltageLevel = "HV"

	m, rep, err := builder.Build(in)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Count(builder.IssueUnknownVoltageLevel))
	assert.Equal(t, core.LevelLV, m.Lines()[0].Level)

	_, _, err = builder.Build(in, builder.WithStrictReferences())
	assert.ErrorIs(t, err, builder.ErrUnknownVoltageLevel)
}

func TestBuild_NoRootMeansNoSource(t *testing.T) {
	in := scenario()
	in.Lines[0].From = "Feeder0"

	m, rep, err := builder.Build(in)
	require.NoError(t, err)
	assert.Empty(t, m.Sources())
	assert.Equal(t, 1, rep.Count(builder.IssueNoSource))
	assert.Zero(t, rep.Count(builder.IssueUnreachable), "reachability needs a source")
}

func TestBuild_NamingAndReachability(t *testing.T) {
	in := scenario()
	in.Lines = append(in.Lines, table.Line{ID: "L2", From: "Junction", To: "Feeder7", VoltageLevel: "LV"})
	in.Buildings = append(in.Buildings, table.Building{ID: "B0002"})

	_, rep, err := builder.Build(in)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Count(builder.IssueNamingConvention))
	assert.Equal(t, 3, rep.Count(builder.IssueUnreachable)) // Junction, Feeder7, B0002

	var unreachable []string
	for _, is := range rep.Issues {
		if is.Kind == builder.IssueUnreachable {
			unreachable = append(unreachable, is.Record)
		}
	}
	assert.Equal(t, []string{"Junction", "Feeder7", "B0002"}, unreachable)
}

func TestBuild_Options(t *testing.T) {
	ids := builder.NewIDAllocator(100)
	in := scenario()
	in.Locations = map[string]table.Location{"Feeder1": {NodeID: "Feeder1", Lat: 10, Lon: 11}}

	m, _, err := builder.Build(in,
		builder.WithIDAllocator(ids),
		builder.WithVoltages(builder.Voltages{MV: 10000, LV: 230}),
		builder.WithSlackVoltage(1.05),
		builder.WithLineParams(core.LevelMV, builder.LineParams{Resistance: 2, Reactance: 3, CurrentRating: 150}),
		builder.WithLoadDefaults(0, 2),
	)
	require.NoError(t, err)
	assert.Equal(t, core.ID(107), ids.Peek())

	f, ok := m.NodeByName("Feeder1")
	require.True(t, ok)
	assert.Equal(t, core.ID(101), f.ID)
	assert.Equal(t, 10000.0, f.RatedVoltage)
	assert.Equal(t, 10.0, f.Lat)

	b, _ := m.NodeByName("B0001")
	assert.Equal(t, 230.0, b.RatedVoltage)
	assert.Equal(t, 150.0, m.Lines()[0].CurrentRating)
	assert.Equal(t, 1.05, m.Sources()[0].ReferenceVoltage)
	assert.Equal(t, 2, m.Loads()[0].Type)
	assert.Equal(t, 0, m.Loads()[0].Status)
}

func TestBuild_CustomNaming(t *testing.T) {
	in := scenario()
	in.Lines[0].From = "Root"
	m, rep, err := builder.Build(in, builder.WithNaming(core.Naming{BuildingPrefix: "B", RootName: "Root", FeederPrefix: "Feeder"}))
	require.NoError(t, err)
	assert.True(t, rep.Empty())
	root, _ := m.NodeByName("Root")
	assert.Equal(t, core.ClassStation, root.Class)
	assert.Equal(t, root.ID, m.Sources()[0].Node)
}

func TestBuild_IssuesAreLogged(t *testing.T) {
	zc, logs := observer.New(zap.WarnLevel)
	in := scenario()
	in.Assignments = append(in.Assignments, table.Assignment{BuildingID: "B0001", LineID: "L404"})

	_, _, err := builder.Build(in, builder.WithLogger(zap.New(zc)))
	require.NoError(t, err)
	entries := logs.FilterField(zap.String("kind", string(builder.IssueUnresolvedLine))).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "L404", entries[0].ContextMap()["record"])
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { builder.WithVoltages(builder.Voltages{}) })
	assert.Panics(t, func() { builder.WithSlackVoltage(0) })
	assert.Panics(t, func() { builder.WithLineParams("HV", builder.LineParams{}) })
	assert.Panics(t, func() { builder.WithLineParams(core.LevelLV, builder.LineParams{Resistance: -1}) })
	assert.Panics(t, func() { builder.WithNaming(core.Naming{}) })
	assert.Panics(t, func() { builder.WithIDAllocator(nil) })
	assert.Panics(t, func() { builder.WithLogger(nil) })
	assert.Panics(t, func() { builder.NewIDAllocator(0) })
}

func TestIDAllocator(t *testing.T) {
	a := builder.NewIDAllocator(5)
	assert.Equal(t, core.ID(5), a.Next())
	assert.Equal(t, core.ID(6), a.Next())
	assert.Equal(t, core.ID(7), a.Peek())
	assert.Equal(t, core.ID(7), a.Next())
}

func TestBuild_LoopsAreReported(t *testing.T) {
	in := scenario()
	in.Lines = append(in.Lines, table.Line{ID: "L2", From: "Feeder1", To: "MainSubstation", VoltageLevel: "MV"})

	_, rep, err := builder.Build(in)
	require.NoError(t, err)
	require.Equal(t, 1, rep.Count(builder.IssueLoop))
	assert.Equal(t, "MainSubstation -> Feeder1 -> MainSubstation", rep.Issues[0].Record)
	assert.Zero(t, rep.Skipped())
}
