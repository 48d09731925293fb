// SPDX-License-Identifier: MIT

package report_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/builder"
	"github.com/katalvlaran/gridflow/core"
	"github.com/katalvlaran/gridflow/report"
	"github.com/katalvlaran/gridflow/simulation"
	"github.com/katalvlaran/gridflow/solver"
	"github.com/katalvlaran/gridflow/table"
	"github.com/katalvlaran/gridflow/wire"
)

// scenario: MainSubstation(1) -L1(3, 300 A)- Feeder1(2) <- B0001(4), load 5.
func scenario(t *testing.T) *core.Model {
	t.Helper()
	m, _, err := builder.Build(builder.Tables{
		Lines:       []table.Line{{ID: "L1", From: "MainSubstation", To: "Feeder1", VoltageLevel: "MV"}},
		Buildings:   []table.Building{{ID: "B0001"}},
		Assignments: []table.Assignment{{BuildingID: "B0001", LineID: "L1"}},
	})
	require.NoError(t, err)
	return m
}

// proportional: voltage 1 - kW/100 everywhere, building power = load, line current = kW.
func proportional(_ context.Context, in *wire.Input) (*wire.Output, error) {
	kw := in.SymLoad[0].SpecifiedPower / 1000
	out := &wire.Output{}
	for _, n := range in.Node {
		r := wire.NodeResult{ID: n.ID, VoltagePU: 1 - kw/100}
		if n.ID == 4 {
			p := kw * 1000
			r.RealPower = &p
		}
		out.Node = append(out.Node, r)
	}
	out.Line = append(out.Line, wire.LineResult{ID: in.Line[0].ID, CurrentFrom: kw})
	return out, nil
}

func TestScenario_RowLawsAndOrder(t *testing.T) {
	m := scenario(t)
	s, err := table.NewSeries([]string{"t0", "t1"}, []string{"B0001"}, [][]float64{{10, 20}})
	require.NoError(t, err)
	res, err := simulation.Run(context.Background(), m, s, solver.Func(proportional))
	require.NoError(t, err)

	acc, err := report.Collect(m, res)
	require.NoError(t, err)

	wide := acc.Wide()
	long := acc.Long()
	require.Len(t, wide, 4, "3 nodes + 1 line")
	require.Len(t, long, 8, "4 entities x 2 steps")

	assert.Equal(t, []string{"station", "feeder", "building", "line"},
		[]string{wide[0].RecordType, wide[1].RecordType, wide[2].RecordType, wide[3].RecordType})
	assert.Equal(t, "MainSubstation", wide[0].EntityID)
	assert.Equal(t, "", wide[3].EntityID)
	assert.Equal(t, "L1", wide[3].LineID)

	for i, row := range long {
		assert.Equal(t, []string{"t0", "t1"}[i/4], row.TimeStep)
		assert.Equal(t, wide[i%4].EntityID, row.EntityID)
		assert.Equal(t, wide[i%4].LineID, row.LineID)
	}

	// cross-format: wide snapshot equals the long row of the last step
	for i, w := range wide {
		assert.Equal(t, w.Quantities, long[4+i].Quantities)
	}

	b := wide[2]
	assert.Equal(t, []report.Value{{V: 0.9, Valid: true}, {V: 0.8, Valid: true}}, b.Series)
	assert.InDelta(t, 20.0, b.PKW.V, 1e-12)
	assert.InDelta(t, 6.0, b.QKVar.V, 1e-12)
	assert.False(t, b.IFromA.Valid)

	line := wide[3]
	assert.Equal(t, []report.Value{{V: 10, Valid: true}, {V: 20, Valid: true}}, line.Series)
	assert.Equal(t, 300.0, line.RatingA.V)
	assert.InDelta(t, 20.0/3, line.Loading.V, 1e-12)
	assert.False(t, line.VoltagePU.Valid)
	assert.False(t, line.IToA.Valid)
}

func TestAccumulator_FirstSeenOrder(t *testing.T) {
	m := scenario(t)
	acc, err := report.NewAccumulator(m, []string{"t0", "t1"})
	require.NoError(t, err)

	require.NoError(t, acc.Add(simulation.StepResult{Index: 0, Label: "t0",
		Nodes: []simulation.NodeResult{{ID: 4, VoltagePU: 1}, {ID: 1, VoltagePU: 1}},
	}))
	require.NoError(t, acc.Add(simulation.StepResult{Index: 1, Label: "t1",
		Nodes: []simulation.NodeResult{{ID: 1, VoltagePU: 1}, {ID: 2, VoltagePU: 1}, {ID: 4, VoltagePU: 1}},
		Lines: []simulation.LineResult{{ID: 3}},
	}))

	var names []string
	for _, r := range acc.Wide() {
		names = append(names, r.EntityID+r.LineID)
	}
	assert.Equal(t, []string{"B0001", "MainSubstation", "Feeder1", "L1"}, names)

	// entities absent from step 0 have blank cells there
	long := acc.Long()
	require.Len(t, long, 8)
	assert.Equal(t, "Feeder1", long[2].EntityID)
	assert.False(t, long[2].VoltagePU.Valid)
	assert.False(t, long[3].IFromA.Valid)
	assert.False(t, long[3].RatingA.Valid)
	assert.True(t, long[7].RatingA.Valid)
}

func TestAccumulator_FailedStepIsBlank(t *testing.T) {
	m := scenario(t)
	acc, err := report.NewAccumulator(m, []string{"t0", "t1"})
	require.NoError(t, err)

	require.NoError(t, acc.Add(simulation.StepResult{Index: 0, Label: "t0",
		Nodes: []simulation.NodeResult{{ID: 1, VoltagePU: 0.99}},
		Lines: []simulation.LineResult{{ID: 3, CurrentFrom: 30}},
	}))
	require.NoError(t, acc.Add(simulation.StepResult{Index: 1, Label: "t1", Err: errors.New("diverged")}))

	wide := acc.Wide()
	require.Len(t, wide, 2)
	assert.Equal(t, []report.Value{{V: 0.99, Valid: true}, {}}, wide[0].Series)
	assert.Equal(t, 0.99, wide[0].VoltagePU.V, "snapshot falls back to the last present step")
	assert.Equal(t, 10.0, wide[1].Loading.V)

	long := acc.Long()
	require.Len(t, long, 4)
	assert.Equal(t, report.Quantities{}, long[2].Quantities)
	assert.Equal(t, report.Quantities{}, long[3].Quantities)
	assert.Equal(t, "t1", long[3].TimeStep)
}

func TestAccumulator_Errors(t *testing.T) {
	m := scenario(t)
	acc, err := report.NewAccumulator(m, []string{"t0"})
	require.NoError(t, err)

	assert.ErrorIs(t, acc.Add(simulation.StepResult{Index: 1}), report.ErrStepOutOfRange)
	assert.ErrorIs(t, acc.Add(simulation.StepResult{Index: -1}), report.ErrStepOutOfRange)

	err = acc.Add(simulation.StepResult{Index: 0, Nodes: []simulation.NodeResult{{ID: 1}, {ID: 99}}})
	assert.ErrorIs(t, err, report.ErrUnknownEntity)
	assert.Zero(t, acc.Len(), "rejected steps record nothing")

	err = acc.Add(simulation.StepResult{Index: 0, Lines: []simulation.LineResult{{ID: 4}}})
	assert.ErrorIs(t, err, report.ErrUnknownEntity)

	require.NoError(t, acc.Add(simulation.StepResult{Index: 0}))
	assert.ErrorIs(t, acc.Add(simulation.StepResult{Index: 0}), report.ErrDuplicateStep)

	_, err = report.NewAccumulator(m, nil, report.WithEpsilon(0))
	assert.Error(t, err)
	_, err = report.NewAccumulator(m, nil, report.WithReactiveRatio(-1))
	assert.Error(t, err)
	_, err = report.NewAccumulator(nil, nil)
	assert.Error(t, err)
}

func TestAccumulator_ReactiveRatioOption(t *testing.T) {
	m := scenario(t)
	acc, err := report.NewAccumulator(m, []string{"t0"}, report.WithReactiveRatio(0.5))
	require.NoError(t, err)
	require.NoError(t, acc.Add(simulation.StepResult{Index: 0, Nodes: []simulation.NodeResult{{ID: 4, RealPowerW: 2000}}}))
	assert.InDelta(t, 1.0, acc.Wide()[0].QKVar.V, 1e-12)
}

func TestCSV(t *testing.T) {
	m := scenario(t)
	acc, err := report.NewAccumulator(m, []string{"t0"})
	require.NoError(t, err)
	require.NoError(t, acc.Add(simulation.StepResult{Index: 0, Label: "t0",
		Nodes: []simulation.NodeResult{
			{ID: 1, VoltagePU: 1},
			{ID: 2, VoltagePU: 0.98765},
			{ID: 4, VoltagePU: 0.95, RealPowerW: 10000},
		},
		Lines: []simulation.LineResult{{ID: 3, CurrentFrom: 150}},
	}))

	var long bytes.Buffer
	require.NoError(t, acc.WriteLong(&long))
	assert.Equal(t, strings.Join([]string{
		"time_step,entity_id,record_type,line_id,voltage_pu,p_injection_kW,q_injection_kvar,pf,i_from_a,i_to_a,line_rating_a,loading_percent",
		"t0,MainSubstation,station,,1,0,0,1,,,,",
		"t0,Feeder1,feeder,,0.988,0,0,1,,,,",
		"t0,B0001,building,,0.95,10,3,0.958,,,,",
		"t0,,line,L1,,,,,150,,300,50",
		"",
	}, "\n"), long.String())

	var wide bytes.Buffer
	require.NoError(t, acc.WriteWide(&wide))
	assert.Equal(t, strings.Join([]string{
		"entity_id,record_type,line_id,voltage_pu,p_injection_kW,q_injection_kvar,pf,i_from_a,i_to_a,line_rating_a,loading_percent,t0",
		"MainSubstation,station,,1,0,0,1,,,,,1",
		"Feeder1,feeder,,0.988,0,0,1,,,,,0.988",
		"B0001,building,,0.95,10,3,0.958,,,,,0.95",
		",line,L1,,,,,150,,300,50,150",
		"",
	}, "\n"), wide.String())
}
