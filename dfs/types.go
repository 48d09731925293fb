// SPDX-License-Identifier: MIT

// Package dfs walks a core.Model depth-first over lines and links and
// finds loops, i.e. places where the network is meshed instead of radial.
package dfs

import (
	"context"
	"errors"

	"github.com/katalvlaran/gridflow/core"
)

// Visitation states.
const (
	White = iota // not visited
	Gray         // on the recursion stack
	Black        // fully explored
)

var (
	// ErrModelNil is returned when a nil model is passed.
	ErrModelNil = errors.New("dfs: model is nil")

	// ErrStartNodeNotFound indicates the start node is not in the model.
	ErrStartNodeNotFound = errors.New("dfs: start node not found")
)

// Option configures DFS.
type Option func(*Options)

// Options holds traversal parameters.
type Options struct {
	// Ctx aborts the walk when done; defaults to context.Background().
	Ctx context.Context

	// OnVisit runs in pre-order; an error aborts the walk.
	OnVisit func(id core.ID) error

	// OnExit runs in post-order, after all descendants; an error aborts.
	OnExit func(id core.ID) error

	// MaxDepth stops descent below this depth; -1 means unlimited.
	MaxDepth int
}

// DefaultOptions returns an unlimited walk with no hooks.
func DefaultOptions() Options {
	return Options{Ctx: context.Background(), MaxDepth: -1}
}

// WithContext sets the cancellation context. nil keeps Background.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs a pre-order hook.
func WithOnVisit(fn func(id core.ID) error) Option {
	return func(o *Options) { o.OnVisit = fn }
}

// WithOnExit installs a post-order hook.
func WithOnExit(fn func(id core.ID) error) Option {
	return func(o *Options) { o.OnExit = fn }
}

// WithMaxDepth limits recursion; 0 visits only the start node.
func WithMaxDepth(limit int) Option {
	return func(o *Options) { o.MaxDepth = limit }
}

// Result is the outcome of DFS.
//   - Order: post-order (finish order).
//   - Depth: discovery depth.
//   - Parent: predecessor in the DFS tree.
type Result struct {
	Order  []core.ID
	Depth  map[core.ID]int
	Parent map[core.ID]core.ID
}

// Visited reports whether id was reached.
func (r *Result) Visited(id core.ID) bool {
	_, ok := r.Depth[id]
	return ok
}
