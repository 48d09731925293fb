// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/katalvlaran/gridflow/wire"
)

// Ranges of the stand-in solver.
const (
	dummyMinVoltagePU    = 0.90
	dummyMaxVoltagePU    = 1.06
	dummyPowerChance     = 0.7
	dummyMinPowerW       = -1e6
	dummyMaxPowerW       = 2e6
	dummyMinLineCurrent  = 10.0
	dummyMaxLineCurrent  = 200.0
	dummyMinShuntCurrent = 1.0
	dummyMaxShuntCurrent = 50.0
	dummyShuntWattsPerA  = 14600.0
)

// Dummy returns plausible random results without solving anything. Each
// call draws from a generator seeded with Seed and the input's loads, so
// equal inputs give equal outputs and concurrent calls share no state.
type Dummy struct {
	Seed int64
}

// Solve implements Solver.
func (d Dummy) Solve(ctx context.Context, in *wire.Input) (*wire.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(d.seedFor(in)))
	uniform := func(lo, hi float64) float64 { return lo + (hi-lo)*rng.Float64() }

	out := &wire.Output{
		Node:  make([]wire.NodeResult, 0, len(in.Node)),
		Line:  make([]wire.LineResult, 0, len(in.Line)),
		Shunt: make([]wire.ShuntResult, 0, len(in.Shunt)),
	}
	for _, n := range in.Node {
		r := wire.NodeResult{ID: n.ID, VoltagePU: round(uniform(dummyMinVoltagePU, dummyMaxVoltagePU), 3)}
		if rng.Float64() < dummyPowerChance {
			p := round(uniform(dummyMinPowerW, dummyMaxPowerW), 3)
			r.RealPower = &p
		}
		out.Node = append(out.Node, r)
	}
	for _, l := range in.Line {
		out.Line = append(out.Line, wire.LineResult{ID: l.ID, CurrentFrom: round(uniform(dummyMinLineCurrent, dummyMaxLineCurrent), 3)})
	}
	for _, sh := range in.Shunt {
		i := round(uniform(dummyMinShuntCurrent, dummyMaxShuntCurrent), 3)
		out.Shunt = append(out.Shunt, wire.ShuntResult{ID: sh.ID, Current: i, RealPower: round(i*dummyShuntWattsPerA, 3)})
	}

	return out, nil
}

func (d Dummy) seedFor(in *wire.Input) int64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	put(uint64(d.Seed))
	for _, ld := range in.SymLoad {
		put(uint64(ld.ID))
		put(math.Float64bits(ld.SpecifiedPower))
	}

	return int64(h.Sum64())
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
