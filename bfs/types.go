// SPDX-License-Identifier: MIT

// Package bfs provides tunable options and error definitions
// for breadth-first search over a core.Model.
package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/gridflow/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNodeNotFound is returned when the start id is not a node.
	ErrStartNodeNotFound = errors.New("bfs: start node not found")

	// ErrModelNil is returned if a nil model pointer is passed.
	ErrModelNil = errors.New("bfs: model is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures BFS behavior via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation
// when BFS is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize BFS execution.
type Options struct {
	// Ctx allows cancellation.
	Ctx context.Context

	// OnVisit is called when visiting a node. A returned error aborts BFS.
	OnVisit func(id core.ID, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// FilterNeighbor can skip a connection curr->neighbor by returning false.
	FilterNeighbor func(curr, neighbor core.ID) bool

	err error
}

// DefaultOptions returns Options with a background context, no depth
// limit, no filtering and a no-op visit hook.
func DefaultOptions() Options {
	return Options{
		Ctx:            context.Background(),
		OnVisit:        func(core.ID, int) error { return nil },
		FilterNeighbor: func(_, _ core.ID) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback run on every visit.
func WithOnVisit(fn func(id core.ID, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits the search depth; 0 means unlimited.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterNeighbor skips neighbors when fn returns false.
func WithFilterNeighbor(fn func(curr, neighbor core.ID) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// Result holds the outcome of a traversal:
//   - Order: nodes in visit sequence.
//   - Depth: hops from the start.
//   - Parent: predecessor in the BFS tree.
type Result struct {
	Order  []core.ID
	Depth  map[core.ID]int
	Parent map[core.ID]core.ID
}

// Children returns the tree children of id in visit order.
func (r *Result) Children(id core.ID) []core.ID {
	var out []core.ID
	for _, v := range r.Order {
		if p, ok := r.Parent[v]; ok && p == id {
			out = append(out, v)
		}
	}
	return out
}

// PathTo reconstructs the path from the start node to dest.
func (r *Result) PathTo(dest core.ID) ([]core.ID, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("bfs: no path to %d", dest)
	}
	path := []core.ID{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
