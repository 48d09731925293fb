// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// config.go - internal configuration and defaults.
//
// Defaults:
//   • voltages     = MV 20 kV (line endpoints), LV 400 V (buildings)
//   • slack        = 1.0 p.u.
//   • MV line      = R 1.0 Ω, X 5.0 Ω, rating 300 A
//   • LV line      = R 0.5 Ω, X 1.0 Ω, rating 300 A
//   • loads        = status 1, type 1
//   • naming       = core.DefaultNaming()
//   • ids          = fresh allocator starting at 1
//   • references   = lenient (skip + report)

package builder

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/gridflow/core"
)

// LineParams are the per-level electrical defaults applied to every line.
type LineParams struct {
	Resistance    float64
	Reactance     float64
	CurrentRating float64
}

// Voltages are the rated voltages, in volts, by class.
type Voltages struct {
	MV float64
	LV float64
}

// Named defaults.
const (
	DefaultMVVoltage      = 20000.0
	DefaultLVVoltage      = 400.0
	DefaultSlackVoltagePU = 1.0
	DefaultCurrentRating  = 300.0
	DefaultLoadStatus     = 1
	DefaultLoadType       = 1
	DefaultSourceStatus   = 1

	defaultMVResistance = 1.0
	defaultMVReactance  = 5.0
	defaultLVResistance = 0.5
	defaultLVReactance  = 1.0
)

// DefaultLineParams returns the parameter table by voltage level.
func DefaultLineParams() map[core.VoltageLevel]LineParams {
	return map[core.VoltageLevel]LineParams{
		core.LevelMV: {Resistance: defaultMVResistance, Reactance: defaultMVReactance, CurrentRating: DefaultCurrentRating},
		core.LevelLV: {Resistance: defaultLVResistance, Reactance: defaultLVReactance, CurrentRating: DefaultCurrentRating},
	}
}

// builderConfig is the resolved set of knobs for one Build call.
type builderConfig struct {
	voltages   Voltages
	slackPU    float64
	lineParams map[core.VoltageLevel]LineParams
	naming     core.Naming
	loadStatus int
	loadType   int
	strict     bool
	ids        *IDAllocator
	log        *zap.Logger
}

// newBuilderConfig applies opts in order over the defaults.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		voltages:   Voltages{MV: DefaultMVVoltage, LV: DefaultLVVoltage},
		slackPU:    DefaultSlackVoltagePU,
		lineParams: DefaultLineParams(),
		naming:     core.DefaultNaming(),
		loadStatus: DefaultLoadStatus,
		loadType:   DefaultLoadType,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ids == nil {
		cfg.ids = NewIDAllocator(1)
	}
	if cfg.log == nil {
		cfg.log = zap.NewNop()
	}

	return cfg
}
