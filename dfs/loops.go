// SPDX-License-Identifier: MIT

package dfs

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/gridflow/core"
)

// Loops returns every independent loop of m found by back edges, each as a
// closed node sequence [v0, ..., v0]. A radial network returns nil.
//
// Loops are canonical: rotated to start at the smallest id and oriented so
// the second element is the smaller neighbor of v0. Two branches between
// the same pair of nodes form a loop [a, b, a]; a branch from a node to
// itself forms [a, a]. The result is sorted.
func Loops(m *core.Model) ([][]core.ID, error) {
	if m == nil {
		return nil, ErrModelNil
	}
	lf := &loopFinder{
		model: m,
		state: make(map[core.ID]int, m.Stats().Nodes),
		seen:  make(map[string]struct{}),
	}
	for _, n := range m.Nodes() {
		if lf.state[n.ID] == White {
			if err := lf.visit(n.ID, 0, false); err != nil {
				return nil, fmt.Errorf("dfs: Loops: %w", err)
			}
		}
	}
	slices.SortFunc(lf.loops, slices.Compare[[]core.ID])

	return lf.loops, nil
}

type loopFinder struct {
	model *core.Model
	state map[core.ID]int
	path  []core.ID
	seen  map[string]struct{}
	loops [][]core.ID
}

func (lf *loopFinder) visit(id, parent core.ID, hasParent bool) error {
	lf.state[id] = Gray
	lf.path = append(lf.path, id)

	nbs, err := lf.model.Neighbors(id)
	if err != nil {
		return err
	}
	treeEdgeSkipped := !hasParent
	for _, nb := range nbs {
		// the first branch back to the parent is the tree edge itself
		if !treeEdgeSkipped && nb == parent {
			treeEdgeSkipped = true
			continue
		}
		switch lf.state[nb] {
		case White:
			if err := lf.visit(nb, id, true); err != nil {
				return err
			}
		case Gray:
			lf.record(nb)
		}
	}

	lf.path = lf.path[:len(lf.path)-1]
	lf.state[id] = Black

	return nil
}

// record stores the loop closed by a back edge to start.
func (lf *loopFinder) record(start core.ID) {
	idx := slices.Index(lf.path, start)
	loop := canonical(lf.path[idx:])
	sig := fmt.Sprint(loop)
	if _, dup := lf.seen[sig]; dup {
		return
	}
	lf.seen[sig] = struct{}{}
	lf.loops = append(lf.loops, loop)
}

// canonical rotates open loop seq to its smallest id, orients it, and
// closes it.
func canonical(seq []core.ID) []core.ID {
	n := len(seq)
	minAt := 0
	for i, v := range seq {
		if v < seq[minAt] {
			minAt = i
		}
	}
	out := make([]core.ID, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, seq[(minAt+i)%n])
	}
	if n > 2 && out[n-1] < out[1] {
		slices.Reverse(out[1:])
	}

	return append(out, out[0])
}
