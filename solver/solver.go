// SPDX-License-Identifier: MIT

// Package solver defines the power-flow solver contract and the stock
// implementations: a seeded stand-in, an external process and a circuit
// breaker wrapper. No numerical method lives here.
package solver

import (
	"context"
	"errors"

	"github.com/katalvlaran/gridflow/wire"
)

var (
	// ErrProcess indicates the external solver process failed.
	ErrProcess = errors.New("solver: process failed")

	// ErrDecode indicates solver output could not be decoded.
	ErrDecode = errors.New("solver: malformed output")

	// ErrCircuitOpen indicates the breaker rejected the call without trying.
	ErrCircuitOpen = errors.New("solver: circuit open")
)

// Solver computes one power flow. Implementations used with parallel
// simulation must be safe for concurrent calls with independent inputs.
type Solver interface {
	Solve(ctx context.Context, in *wire.Input) (*wire.Output, error)
}

// Func adapts a function to Solver.
type Func func(ctx context.Context, in *wire.Input) (*wire.Output, error)

// Solve calls f.
func (f Func) Solve(ctx context.Context, in *wire.Input) (*wire.Output, error) {
	return f(ctx, in)
}
