// SPDX-License-Identifier: MIT

package bfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/bfs"
	"github.com/katalvlaran/gridflow/core"
)

// radial: 1 - 2 - 3, 2 - 4 via link, 5 isolated.
func radial(t *testing.T) *core.Model {
	t.Helper()
	m := core.NewModel()
	n := core.DefaultNaming()
	for id, name := range map[core.ID]string{1: "MainSubstation", 2: "Feeder1", 3: "Feeder2", 4: "B1", 5: "Island"} {
		require.NoError(t, m.AddNode(core.Node{ID: id, Name: name}, n))
	}
	require.NoError(t, m.AddLine(core.Line{ID: 10, From: 1, To: 2}))
	require.NoError(t, m.AddLine(core.Line{ID: 11, From: 2, To: 3}))
	require.NoError(t, m.AddLink(core.Link{ID: 12, From: 4, To: 2}))
	return m
}

func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, 1)
	assert.ErrorIs(t, err, bfs.ErrModelNil)

	m := radial(t)
	_, err = bfs.BFS(m, 99)
	assert.ErrorIs(t, err, bfs.ErrStartNodeNotFound)

	_, err = bfs.BFS(m, 1, bfs.WithMaxDepth(-1))
	assert.ErrorIs(t, err, bfs.ErrOptionViolation)
}

func TestBFS_OrderAndDepth(t *testing.T) {
	res, err := bfs.BFS(radial(t), 1)
	require.NoError(t, err)

	assert.Equal(t, []core.ID{1, 2, 3, 4}, res.Order)
	assert.Equal(t, map[core.ID]int{1: 0, 2: 1, 3: 2, 4: 2}, res.Depth)
	_, reached := res.Depth[5]
	assert.False(t, reached, "island must stay unreached")

	path, err := res.PathTo(4)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{1, 2, 4}, path)

	_, err = res.PathTo(5)
	assert.Error(t, err)
	assert.Equal(t, []core.ID{3, 4}, res.Children(2))
}

func TestBFS_MaxDepthAndFilter(t *testing.T) {
	m := radial(t)
	res, err := bfs.BFS(m, 1, bfs.WithMaxDepth(1))
	require.NoError(t, err)
	assert.Equal(t, []core.ID{1, 2}, res.Order)

	res, err = bfs.BFS(m, 1, bfs.WithFilterNeighbor(func(_, nbr core.ID) bool { return nbr != 4 }))
	require.NoError(t, err)
	assert.Equal(t, []core.ID{1, 2, 3}, res.Order)
}

func TestBFS_HookAndCancel(t *testing.T) {
	m := radial(t)
	stop := errors.New("stop")
	_, err := bfs.BFS(m, 1, bfs.WithOnVisit(func(id core.ID, _ int) error {
		if id == 2 {
			return stop
		}
		return nil
	}))
	assert.ErrorIs(t, err, stop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bfs.BFS(m, 1, bfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}
