// SPDX-License-Identifier: MIT
// Package: gridflow/simulation
//
// types.go - per-step results, the run result and step-tagged errors.

package simulation

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/gridflow/core"
)

var (
	// ErrNilModel is returned when Run receives no base model.
	ErrNilModel = errors.New("simulation: model is nil")

	// ErrNilSeries is returned when Run receives no load series.
	ErrNilSeries = errors.New("simulation: series is nil")

	// ErrNilSolver is returned when Run receives no solver.
	ErrNilSolver = errors.New("simulation: solver is nil")

	// ErrEmptyOutput indicates the solver returned neither output nor error.
	ErrEmptyOutput = errors.New("simulation: solver returned no output")

	// ErrUnknownEntity indicates solver output naming an id absent from the step's input.
	ErrUnknownEntity = errors.New("simulation: solver reported unknown entity")
)

// NodeResult is one solved node. RealPowerW is zero when the solver omitted it.
type NodeResult struct {
	ID         core.ID
	VoltagePU  float64
	RealPowerW float64
}

// LineResult is one solved line.
type LineResult struct {
	ID          core.ID
	CurrentFrom float64
}

// ShuntResult is one solved shunt.
type ShuntResult struct {
	ID         core.ID
	Current    float64
	RealPowerW float64
}

// StepResult holds the records of one step in solver emission order.
// A failed step (only kept with WithSkipFailedSteps) has Err set and no records.
type StepResult struct {
	Index    int
	Label    string
	Nodes    []NodeResult
	Lines    []LineResult
	Shunts   []ShuntResult
	Duration time.Duration
	Err      error
}

// Failed reports whether the step produced no results.
func (s StepResult) Failed() bool { return s.Err != nil }

// Result is the outcome of a run. Steps[i] is step i.
type Result struct {
	RunID  string
	Labels []string
	Steps  []StepResult
}

// Failed lists the indexes of failed steps.
func (r *Result) Failed() []int {
	var out []int
	for _, s := range r.Steps {
		if s.Failed() {
			out = append(out, s.Index)
		}
	}
	return out
}

// StepError tags a failure with the step that produced it.
type StepError struct {
	Step  int
	Label string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("simulation: step %d (%s): %v", e.Step, e.Label, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
