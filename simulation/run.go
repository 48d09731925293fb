// SPDX-License-Identifier: MIT
// Package: gridflow/simulation
//
// run.go - the per-step loop: copy, apply loads, map, solve, extract.
//
// Determinism:
//   - Step i is a function of the base model and column i of the series only.
//   - Results are stored at Steps[i], so output order never depends on
//     completion order.
// Concurrency:
//   - The base model is only read. Each step owns its copy (or overlay)
//     and its wire input; neither outlives the step.

package simulation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gridflow/core"
	"github.com/katalvlaran/gridflow/solver"
	"github.com/katalvlaran/gridflow/table"
	"github.com/katalvlaran/gridflow/wire"
)

// runner carries the state of one Run.
type runner struct {
	cfg    config
	base   *core.Model
	series *table.Series
	solver solver.Solver
	labels []string
	log    *zap.Logger

	mu   sync.Mutex
	done int
}

// Run replays every step of series through s against base. By default the
// first failing step aborts the run with a *StepError; see
// WithSkipFailedSteps. Cancelling ctx always aborts.
func Run(ctx context.Context, base *core.Model, series *table.Series, s solver.Solver, opts ...Option) (*Result, error) {
	switch {
	case base == nil:
		return nil, ErrNilModel
	case series == nil:
		return nil, ErrNilSeries
	case s == nil:
		return nil, ErrNilSolver
	}
	cfg := newConfig(opts...)
	runID := cfg.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	r := &runner{
		cfg:    cfg,
		base:   base,
		series: series,
		solver: s,
		labels: series.Labels(),
		log:    cfg.log.With(zap.String("run_id", runID)),
	}
	res := &Result{RunID: runID, Labels: r.labels, Steps: make([]StepResult, len(r.labels))}

	start := time.Now()
	r.log.Info("simulation started",
		zap.Int("steps", len(r.labels)),
		zap.Int("entities", series.Len()),
		zap.Int("workers", cfg.workers),
	)
	cfg.metrics.runStarted()

	var err error
	if cfg.workers <= 1 {
		err = r.sequential(ctx, res.Steps)
	} else {
		err = r.parallel(ctx, res.Steps)
	}
	if err != nil {
		r.log.Error("simulation aborted", zap.Error(err))
		return nil, err
	}

	r.log.Info("simulation finished",
		zap.Int("failed_steps", len(res.Failed())),
		zap.Duration("elapsed", time.Since(start)),
	)

	return res, nil
}

func (r *runner) sequential(ctx context.Context, out []StepResult) error {
	for i := range r.labels {
		sr, err := r.step(ctx, i)
		out[i] = sr
		if err != nil && r.abort(ctx) {
			return err
		}
		r.advance()
	}
	return nil
}

func (r *runner) parallel(ctx context.Context, out []StepResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.workers)
	for i := range r.labels {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			sr, err := r.step(gctx, i)
			out[i] = sr
			if err != nil && r.abort(gctx) {
				return err
			}
			r.advance()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// parent cancelled before any step failed
	return ctx.Err()
}

// abort decides whether a step failure ends the run.
func (r *runner) abort(ctx context.Context) bool {
	return !r.cfg.skipFailed || ctx.Err() != nil
}

func (r *runner) advance() {
	if r.cfg.progress == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
	r.cfg.progress(r.done, len(r.labels))
}

// step runs one time step. The returned error, if any, is a *StepError and
// is also stored in the StepResult.
func (r *runner) step(ctx context.Context, i int) (StepResult, error) {
	label := r.labels[i]
	sr := StepResult{Index: i, Label: label}
	if err := ctx.Err(); err != nil {
		sr.Err = &StepError{Step: i, Label: label, Err: err}
		return sr, sr.Err
	}

	start := time.Now()
	r.cfg.metrics.stepStarted()
	in, applied := r.input(r.series.Step(i))
	out, err := r.solve(ctx, in)
	if err == nil {
		err = extract(&sr, in, out)
	}
	sr.Duration = time.Since(start)
	r.cfg.metrics.stepDone(err != nil, sr.Duration)

	if err != nil {
		sr.Nodes, sr.Lines, sr.Shunts = nil, nil, nil
		sr.Err = &StepError{Step: i, Label: label, Err: err}
		r.log.Warn("step failed", zap.Int("step", i), zap.String("label", label), zap.Error(err))
		return sr, sr.Err
	}
	r.log.Debug("step solved",
		zap.Int("step", i),
		zap.String("label", label),
		zap.Int("loads_applied", applied),
		zap.Duration("duration", sr.Duration),
	)

	return sr, nil
}

// input builds the step's solver input from an isolated copy of the base.
func (r *runner) input(loads map[string]float64) (*wire.Input, int) {
	if r.cfg.overlay {
		o := r.base.NewOverlay()
		n := o.Apply(loads)
		return wire.ToSolverInputOverlay(o), n
	}
	m := r.base.Clone()
	n := m.ApplyLoads(loads)

	return wire.ToSolverInput(m), n
}

type reply struct {
	out *wire.Output
	err error
}

// solve calls the solver under the step deadline. A solver that ignores its
// context is abandoned when the deadline passes.
func (r *runner) solve(ctx context.Context, in *wire.Input) (*wire.Output, error) {
	if r.cfg.stepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.stepTimeout)
		defer cancel()
	}
	ch := make(chan reply, 1)
	go func() {
		out, err := r.solver.Solve(ctx, in)
		ch <- reply{out: out, err: err}
	}()

	select {
	case rep := <-ch:
		if rep.err == nil && rep.out == nil {
			return nil, ErrEmptyOutput
		}
		return rep.out, rep.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// extract copies solver output into sr, rejecting ids the step did not send.
func extract(sr *StepResult, in *wire.Input, out *wire.Output) error {
	nodes := make(map[core.ID]struct{}, len(in.Node))
	for _, n := range in.Node {
		nodes[n.ID] = struct{}{}
	}
	lines := make(map[core.ID]struct{}, len(in.Line))
	for _, l := range in.Line {
		lines[l.ID] = struct{}{}
	}
	shunts := make(map[core.ID]struct{}, len(in.Shunt))
	for _, sh := range in.Shunt {
		shunts[sh.ID] = struct{}{}
	}

	var errs []error
	sr.Nodes = make([]NodeResult, 0, len(out.Node))
	for _, n := range out.Node {
		if _, ok := nodes[n.ID]; !ok {
			errs = append(errs, fmt.Errorf("%w: node %d", ErrUnknownEntity, n.ID))
			continue
		}
		sr.Nodes = append(sr.Nodes, NodeResult{ID: n.ID, VoltagePU: n.VoltagePU, RealPowerW: n.Power()})
	}
	sr.Lines = make([]LineResult, 0, len(out.Line))
	for _, l := range out.Line {
		if _, ok := lines[l.ID]; !ok {
			errs = append(errs, fmt.Errorf("%w: line %d", ErrUnknownEntity, l.ID))
			continue
		}
		sr.Lines = append(sr.Lines, LineResult{ID: l.ID, CurrentFrom: l.CurrentFrom})
	}
	sr.Shunts = make([]ShuntResult, 0, len(out.Shunt))
	for _, sh := range out.Shunt {
		if _, ok := shunts[sh.ID]; !ok {
			errs = append(errs, fmt.Errorf("%w: shunt %d", ErrUnknownEntity, sh.ID))
			continue
		}
		sr.Shunts = append(sr.Shunts, ShuntResult{ID: sh.ID, Current: sh.Current, RealPowerW: sh.RealPower})
	}

	return errors.Join(errs...)
}
