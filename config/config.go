// SPDX-License-Identifier: MIT
// Package: gridflow/config
//
// config.go - run configuration and its defaults.
//
// Layering (lowest to highest priority):
//   1. Default()
//   2. YAML file, when a path is given
//   3. GRIDFLOW_* environment variables
// The merged result is checked by Validate before use.

package config

import (
	"time"

	"github.com/katalvlaran/gridflow/builder"
	"github.com/katalvlaran/gridflow/core"
	"github.com/katalvlaran/gridflow/report"
	"github.com/katalvlaran/gridflow/table"
)

// Solver kinds.
const (
	SolverDummy = "dummy"
	SolverExec  = "exec"
)

// Config is the complete run configuration.
type Config struct {
	Inputs     Inputs     `yaml:"inputs"`
	Outputs    Outputs    `yaml:"outputs"`
	Network    Network    `yaml:"network"`
	Simulation Simulation `yaml:"simulation"`
	Solver     Solver     `yaml:"solver"`
	Log        Log        `yaml:"log"`
}

// Inputs are the table paths. Locations is optional.
type Inputs struct {
	Buildings   string `yaml:"buildings" validate:"required"`
	Lines       string `yaml:"lines" validate:"required"`
	Assignments string `yaml:"assignments" validate:"required"`
	Loads       string `yaml:"loads" validate:"required"`
	Locations   string `yaml:"locations"`
}

// Outputs are the artifact paths. Empty optional paths are not written.
type Outputs struct {
	Wide    string `yaml:"wide" validate:"required"`
	Long    string `yaml:"long" validate:"required"`
	Network string `yaml:"network"`
	Diagram string `yaml:"diagram"`
	GeoJSON string `yaml:"geojson"`
	Metrics string `yaml:"metrics"`
}

// Line holds per-level electrical parameters.
type Line struct {
	Resistance    float64 `yaml:"resistance" validate:"gte=0"`
	Reactance     float64 `yaml:"reactance" validate:"gte=0"`
	CurrentRating float64 `yaml:"current_rating" validate:"gt=0"`
}

// Network configures model building.
type Network struct {
	MVVoltage      float64 `yaml:"mv_voltage" validate:"gt=0"`
	LVVoltage      float64 `yaml:"lv_voltage" validate:"gt=0"`
	SlackVoltagePU float64 `yaml:"slack_voltage_pu" validate:"gt=0"`
	MVLine         Line    `yaml:"mv_line"`
	LVLine         Line    `yaml:"lv_line"`
	RootName       string  `yaml:"root_name" validate:"required"`
	BuildingPrefix string  `yaml:"building_prefix" validate:"required"`
	FeederPrefix   string  `yaml:"feeder_prefix" validate:"required"`
	Strict         bool    `yaml:"strict"`
}

// Simulation configures the step loop and derived quantities.
type Simulation struct {
	Category        string        `yaml:"category" validate:"required"`
	Workers         int           `yaml:"workers" validate:"min=1"`
	StepTimeout     time.Duration `yaml:"step_timeout" validate:"gte=0"`
	SkipFailedSteps bool          `yaml:"skip_failed_steps"`
	Overlay         bool          `yaml:"overlay"`
	ReactiveRatio   float64       `yaml:"reactive_ratio" validate:"gte=0"`
}

// Breaker configures the solver circuit breaker.
type Breaker struct {
	Enabled     bool          `yaml:"enabled"`
	MaxFailures uint32        `yaml:"max_failures"`
	OpenTimeout time.Duration `yaml:"open_timeout" validate:"gte=0"`
}

// Solver selects and configures the solver.
type Solver struct {
	Kind    string   `yaml:"kind" validate:"oneof=dummy exec"`
	Command string   `yaml:"command" validate:"required_if=Kind exec"`
	Args    []string `yaml:"args"`
	Seed    int64    `yaml:"seed"`
	Breaker Breaker  `yaml:"breaker"`
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	lp := builder.DefaultLineParams()
	naming := core.DefaultNaming()
	return &Config{
		Inputs: Inputs{
			Buildings:   "buildings_demo.csv",
			Lines:       "lines_demo.csv",
			Assignments: "building_assignments.csv",
			Loads:       "time_series_loads.csv",
		},
		Outputs: Outputs{
			Wide: "time_series_results.csv",
			Long: "time_series_results_long.csv",
		},
		Network: Network{
			MVVoltage:      builder.DefaultMVVoltage,
			LVVoltage:      builder.DefaultLVVoltage,
			SlackVoltagePU: builder.DefaultSlackVoltagePU,
			MVLine:         fromParams(lp[core.LevelMV]),
			LVLine:         fromParams(lp[core.LevelLV]),
			RootName:       naming.RootName,
			BuildingPrefix: naming.BuildingPrefix,
			FeederPrefix:   naming.FeederPrefix,
		},
		Simulation: Simulation{
			Category:      table.DefaultCategory,
			Workers:       1,
			ReactiveRatio: report.DefaultReactiveRatio,
		},
		Solver: Solver{Kind: SolverDummy},
		Log:    Log{Level: "info", Format: "console"},
	}
}

func fromParams(p builder.LineParams) Line {
	return Line{Resistance: p.Resistance, Reactance: p.Reactance, CurrentRating: p.CurrentRating}
}

// Params converts l for builder.WithLineParams.
func (l Line) Params() builder.LineParams {
	return builder.LineParams{Resistance: l.Resistance, Reactance: l.Reactance, CurrentRating: l.CurrentRating}
}

// Naming returns the node naming convention.
func (n Network) Naming() core.Naming {
	return core.Naming{BuildingPrefix: n.BuildingPrefix, RootName: n.RootName, FeederPrefix: n.FeederPrefix}
}

// BuilderOptions maps the network section onto builder options.
func (n Network) BuilderOptions() []builder.BuilderOption {
	opts := []builder.BuilderOption{
		builder.WithVoltages(builder.Voltages{MV: n.MVVoltage, LV: n.LVVoltage}),
		builder.WithSlackVoltage(n.SlackVoltagePU),
		builder.WithLineParams(core.LevelMV, n.MVLine.Params()),
		builder.WithLineParams(core.LevelLV, n.LVLine.Params()),
		builder.WithNaming(n.Naming()),
	}
	if n.Strict {
		opts = append(opts, builder.WithStrictReferences())
	}
	return opts
}
