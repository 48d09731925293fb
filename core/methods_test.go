// SPDX-License-Identifier: MIT

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/core"
)

func TestModel_AddErrors(t *testing.T) {
	m := smallModel(t)
	naming := core.DefaultNaming()

	assert.ErrorIs(t, m.AddNode(core.Node{ID: 100}, naming), core.ErrEmptyName)
	assert.ErrorIs(t, m.AddNode(core.Node{ID: 100, Name: "B0001"}, naming), core.ErrDuplicateName)
	assert.ErrorIs(t, m.AddNode(core.Node{ID: 5, Name: "X"}, naming), core.ErrDuplicateID)
	assert.ErrorIs(t, m.AddNode(core.Node{ID: 0, Name: "Y"}, naming), core.ErrInvalidID)
	assert.ErrorIs(t, m.AddLine(core.Line{ID: 101, From: 1, To: 99}), core.ErrNodeNotFound)
	assert.ErrorIs(t, m.AddLink(core.Link{ID: 102, From: 99, To: 1}), core.ErrNodeNotFound)
	assert.ErrorIs(t, m.AddLoad(core.Load{ID: 103, Node: 99}), core.ErrNodeNotFound)
	assert.ErrorIs(t, m.AddSource(core.Source{ID: 104, Node: 99}), core.ErrNodeNotFound)
	assert.ErrorIs(t, m.AddShunt(core.Shunt{ID: 105, Node: 99}), core.ErrNodeNotFound)
	assert.ErrorIs(t, m.AddShunt(core.Shunt{ID: 7, Node: 1}), core.ErrDuplicateID)

	// failed inserts leave the model untouched
	assert.Equal(t, core.Stats{Nodes: 3, Lines: 1, Links: 1, Loads: 1, Sources: 1}, m.Stats())
	assert.NoError(t, m.Validate())
}

func TestModel_ClassIsCached(t *testing.T) {
	m := smallModel(t)
	n, ok := m.NodeByName("Feeder1")
	require.True(t, ok)
	assert.Equal(t, core.ClassFeeder, n.Class)

	n, ok = m.Node(4)
	require.True(t, ok)
	assert.Equal(t, core.ClassBuilding, n.Class)

	_, ok = m.NodeByName("nope")
	assert.False(t, ok)
}

func TestModel_Lookups(t *testing.T) {
	m := smallModel(t)
	l, err := m.Line(3)
	require.NoError(t, err)
	assert.Equal(t, "L1", l.Name)

	_, err = m.Line(4)
	assert.ErrorIs(t, err, core.ErrLineNotFound)

	assert.True(t, m.HasID(6))
	assert.False(t, m.HasID(8))

	nbrs, err := m.Neighbors(2)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{1, 4}, nbrs)

	_, err = m.Neighbors(3)
	assert.ErrorIs(t, err, core.ErrNodeNotFound)
	assert.Equal(t, 7, m.Stats().Entities())
}

func TestModel_ApplyLoads(t *testing.T) {
	m := smallModel(t)
	n := m.ApplyLoads(map[string]float64{"B0001": 42, "B9999": 1, "Feeder1": 3})
	assert.Equal(t, 1, n)

	kw, ok := m.LoadPower("B0001")
	require.True(t, ok)
	assert.Equal(t, 42.0, kw)

	_, ok = m.LoadPower("Feeder1")
	assert.False(t, ok)

	// shape is unchanged
	assert.Equal(t, core.Stats{Nodes: 3, Lines: 1, Links: 1, Loads: 1, Sources: 1}, m.Stats())
}

func TestModel_CloneIsolation(t *testing.T) {
	base := smallModel(t)
	a := base.Clone()
	b := base.Clone()

	a.ApplyLoads(map[string]float64{"B0001": 99})

	kw, _ := b.LoadPower("B0001")
	assert.Equal(t, 10.0, kw, "sibling copy must keep the original value")
	kw, _ = base.LoadPower("B0001")
	assert.Equal(t, 10.0, kw, "base must not change")
	kw, _ = a.LoadPower("B0001")
	assert.Equal(t, 99.0, kw)

	// topology additions on a clone do not leak either
	require.NoError(t, a.AddShunt(core.Shunt{ID: 8, Node: 2}))
	assert.Equal(t, 0, base.Stats().Shunts)
	assert.False(t, base.HasID(8))
}

func TestOverlay_Isolation(t *testing.T) {
	base := smallModel(t)
	o1 := base.NewOverlay()
	o2 := base.NewOverlay()

	assert.Equal(t, 1, o1.Apply(map[string]float64{"B0001": 5}))
	assert.Equal(t, 5.0, o1.Loads()[0].PowerKW)
	assert.Equal(t, 10.0, o2.Loads()[0].PowerKW)
	kw, _ := base.LoadPower("B0001")
	assert.Equal(t, 10.0, kw)
	assert.Same(t, base, o1.Base())
}

func TestModel_ValidateOnEmpty(t *testing.T) {
	assert.NoError(t, core.NewModel().Validate())
}
