// SPDX-License-Identifier: MIT

package dfs

import (
	"fmt"

	"github.com/katalvlaran/gridflow/core"
)

// walker encapsulates state during DFS.
type walker struct {
	model *core.Model
	opts  Options
	res   *Result
}

// DFS walks m depth-first from start. Neighbors are explored in ascending
// id order. On a hook error or cancellation the partial Result is returned
// together with the error.
func DFS(m *core.Model, start core.ID, opts ...Option) (*Result, error) {
	if m == nil {
		return nil, ErrModelNil
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if _, ok := m.Node(start); !ok {
		return nil, fmt.Errorf("%w: %d", ErrStartNodeNotFound, start)
	}

	n := m.Stats().Nodes
	w := &walker{
		model: m,
		opts:  o,
		res: &Result{
			Order:  make([]core.ID, 0, n),
			Depth:  make(map[core.ID]int, n),
			Parent: make(map[core.ID]core.ID, n),
		},
	}
	if err := w.traverse(start, 0); err != nil {
		return w.res, err
	}

	return w.res, nil
}

func (w *walker) traverse(id core.ID, depth int) error {
	if err := w.opts.Ctx.Err(); err != nil {
		return err
	}
	w.res.Depth[id] = depth

	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id); err != nil {
			return fmt.Errorf("dfs: OnVisit(%d): %w", id, err)
		}
	}

	nbs, err := w.model.Neighbors(id)
	if err != nil {
		return fmt.Errorf("dfs: Neighbors(%d): %w", id, err)
	}
	deeper := w.opts.MaxDepth < 0 || depth < w.opts.MaxDepth
	for _, nb := range nbs {
		if !deeper || w.res.Visited(nb) {
			continue
		}
		w.res.Parent[nb] = id
		if err := w.traverse(nb, depth+1); err != nil {
			return err
		}
	}

	if w.opts.OnExit != nil {
		if err := w.opts.OnExit(id); err != nil {
			return fmt.Errorf("dfs: OnExit(%d): %w", id, err)
		}
	}
	w.res.Order = append(w.res.Order, id)

	return nil
}
