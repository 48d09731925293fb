// SPDX-License-Identifier: MIT
// Package: gridflow/report
//
// derive.go - approximate electrical quantities derived from solver output.
// These are a reporting convention, not physics: Q is a fixed share of P.

package report

import (
	"fmt"
	"math"
)

// Policy defaults.
const (
	DefaultReactiveRatio = 0.3
	DefaultEpsilon       = 1e-9
)

// Policy controls derived quantities.
type Policy struct {
	// ReactiveRatio is Q/P.
	ReactiveRatio float64
	// Epsilon floors apparent power.
	Epsilon float64
}

// DefaultPolicy returns Q = 0.3 P with a 1e-9 floor.
func DefaultPolicy() Policy {
	return Policy{ReactiveRatio: DefaultReactiveRatio, Epsilon: DefaultEpsilon}
}

// Derived are the node quantities of one step. P and Q are kW and kvar.
type Derived struct {
	P  float64
	Q  float64
	S  float64
	PF float64
}

// Derive computes Q, S and the power factor from real power in kW.
// S is floored at Epsilon; at the floor the power factor is 1.
func (p Policy) Derive(pKW float64) Derived {
	d := Derived{P: pKW, Q: p.ReactiveRatio * pKW}
	d.S = math.Hypot(d.P, d.Q)
	if d.S <= p.Epsilon {
		d.S = p.Epsilon
		d.PF = 1
		return d
	}
	d.PF = math.Abs(d.P) / d.S

	return d
}

func (p Policy) validate() error {
	if p.ReactiveRatio < 0 || math.IsNaN(p.ReactiveRatio) {
		return fmt.Errorf("report: reactive ratio %v must be >= 0", p.ReactiveRatio)
	}
	if p.Epsilon <= 0 {
		return fmt.Errorf("report: epsilon %v must be > 0", p.Epsilon)
	}
	return nil
}

// LoadingPercent is current/rating*100, or 0 for a non-positive rating.
func LoadingPercent(current, rating float64) float64 {
	if rating <= 0 {
		return 0
	}
	return current / rating * 100
}
