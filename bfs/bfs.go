// SPDX-License-Identifier: MIT

// Package bfs walks a core.Model breadth-first over lines and links,
// returning hop distances, parent links and visit order. Builders use it
// for reachability from the source; renderers use the BFS tree.
package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/gridflow/core"
)

type queueItem struct {
	id    core.ID
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	model   *core.Model
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[core.ID]bool
	res     *Result
}

// BFS runs breadth-first search on m from start. Neighbors are visited in
// ascending id order, so the result is deterministic.
func BFS(m *core.Model, start core.ID, opts ...Option) (*Result, error) {
	if m == nil {
		return nil, ErrModelNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if _, ok := m.Node(start); !ok {
		return nil, fmt.Errorf("%w: %d", ErrStartNodeNotFound, start)
	}

	n := m.Stats().Nodes
	w := &walker{
		model:   m,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[core.ID]bool, n),
		res: &Result{
			Order:  make([]core.ID, 0, n),
			Depth:  make(map[core.ID]int, n),
			Parent: make(map[core.ID]core.ID, n),
		},
	}
	w.enqueue(start, 0, 0, false)

	return w.res, w.loop()
}

func (w *walker) enqueue(id core.ID, d int, parent core.ID, hasParent bool) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if hasParent {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %d: %w", item.id, err)
		}
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) enqueueNeighbors(item queueItem) error {
	neighbors, err := w.model.Neighbors(item.id)
	if err != nil {
		return fmt.Errorf("bfs: neighbors of %d: %w", item.id, err)
	}
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	for _, nbr := range neighbors {
		if w.visited[nbr] || !w.opts.FilterNeighbor(item.id, nbr) {
			continue
		}
		w.enqueue(nbr, next, item.id, true)
	}
	return nil
}
