// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/katalvlaran/gridflow/wire"
)

// BreakerSettings configure Guard.
type BreakerSettings struct {
	Name string
	// MaxConsecutiveFailures opens the breaker; 0 means 5.
	MaxConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open; 0 means 30s.
	OpenTimeout time.Duration
	// OnStateChange observes transitions, e.g. for logging.
	OnStateChange func(name, from, to string)
}

// Guarded wraps a Solver with a circuit breaker so a solver that keeps
// failing is not called again until the open timeout elapses.
type Guarded struct {
	next Solver
	cb   *gobreaker.CircuitBreaker
}

// Guard returns next wrapped in a breaker.
func Guard(next Solver, s BreakerSettings) *Guarded {
	if next == nil {
		panic("solver: Guard(nil)")
	}
	maxFailures := s.MaxConsecutiveFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	timeout := s.OpenTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	name := s.Name
	if name == "" {
		name = "solver"
	}

	st := gobreaker.Settings{
		Name:    name,
		Timeout: timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= maxFailures
		},
	}
	if s.OnStateChange != nil {
		st.OnStateChange = func(name string, from, to gobreaker.State) {
			s.OnStateChange(name, from.String(), to.String())
		}
	}

	return &Guarded{next: next, cb: gobreaker.NewCircuitBreaker(st)}
}

// Solve implements Solver.
func (g *Guarded) Solve(ctx context.Context, in *wire.Input) (*wire.Output, error) {
	res, err := g.cb.Execute(func() (interface{}, error) {
		return g.next.Solve(ctx, in)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	if err != nil {
		return nil, err
	}

	return res.(*wire.Output), nil
}

// State is the breaker state: "closed", "half-open" or "open".
func (g *Guarded) State() string { return g.cb.State().String() }
