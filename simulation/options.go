// SPDX-License-Identifier: MIT
// Package: gridflow/simulation
//
// options.go - functional options for Run. Constructors panic on
// meaningless values; Run itself never panics.

package simulation

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Option customizes Run.
type Option func(*config)

type config struct {
	workers     int
	stepTimeout time.Duration
	skipFailed  bool
	overlay     bool
	runID       string
	log         *zap.Logger
	metrics     *Metrics
	progress    func(done, total int)
}

func newConfig(opts ...Option) config {
	cfg := config{workers: 1, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithWorkers solves up to n steps concurrently. 1 (the default) is the
// sequential reference behavior. The solver must be reentrant for n > 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("simulation: WithWorkers(%d): need at least one worker", n))
	}
	return func(c *config) { c.workers = n }
}

// WithStepTimeout bounds each solver call; 0 disables the deadline.
func WithStepTimeout(d time.Duration) Option {
	if d < 0 {
		panic(fmt.Sprintf("simulation: WithStepTimeout(%v): negative", d))
	}
	return func(c *config) { c.stepTimeout = d }
}

// WithSkipFailedSteps keeps running after a step fails. The failed step is
// kept in the Result with its error and no records.
func WithSkipFailedSteps() Option {
	return func(c *config) { c.skipFailed = true }
}

// WithOverlay replaces the per-step deep copy with a load overlay over the
// shared base model.
func WithOverlay() Option {
	return func(c *config) { c.overlay = true }
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	if id == "" {
		panic("simulation: WithRunID(\"\")")
	}
	return func(c *config) { c.runID = id }
}

// WithLogger sets the run logger.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("simulation: WithLogger(nil)")
	}
	return func(c *config) { c.log = l }
}

// WithMetrics records step counts and durations.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("simulation: WithMetrics(nil)")
	}
	return func(c *config) { c.metrics = m }
}

// WithProgress calls fn after every finished step. Calls are serialized.
func WithProgress(fn func(done, total int)) Option {
	if fn == nil {
		panic("simulation: WithProgress(nil)")
	}
	return func(c *config) { c.progress = fn }
}
