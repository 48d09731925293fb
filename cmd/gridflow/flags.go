// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"io"

	"github.com/katalvlaran/gridflow/config"
)

// cliFlags are the command-line overrides. Only flags that were set on the
// command line are applied.
type cliFlags struct {
	configPath string
	noProgress bool

	buildings, lines, assignments, loads, locations string
	wide, long, network, diagram, geojson, metrics  string
	category, solverKind, solverCmd, logLevel       string
	workers                                         int
	strict, skipFailed, overlay                     bool
}

func parseFlags(args []string, out io.Writer) (*cliFlags, *flag.FlagSet, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("gridflow", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fs.BoolVar(&f.noProgress, "no-progress", false, "disable the progress bar")

	fs.StringVar(&f.buildings, "buildings", "", "buildings table (.csv or .json)")
	fs.StringVar(&f.lines, "lines", "", "lines table (.csv or .json)")
	fs.StringVar(&f.assignments, "assignments", "", "building assignments table (.csv or .json)")
	fs.StringVar(&f.loads, "loads", "", "load time series (.csv)")
	fs.StringVar(&f.locations, "locations", "", "optional node locations table")

	fs.StringVar(&f.wide, "out-wide", "", "wide results CSV")
	fs.StringVar(&f.long, "out-long", "", "long results CSV")
	fs.StringVar(&f.network, "out-network", "", "solver input document of the base network (JSON)")
	fs.StringVar(&f.diagram, "out-diagram", "", "text diagram of the network")
	fs.StringVar(&f.geojson, "out-geojson", "", "GeoJSON of the network")
	fs.StringVar(&f.metrics, "out-metrics", "", "Prometheus textfile with run metrics")

	fs.StringVar(&f.category, "category", "", "series category to replay")
	fs.StringVar(&f.solverKind, "solver", "", "solver kind: dummy or exec")
	fs.StringVar(&f.solverCmd, "solver-cmd", "", "external solver command (exec)")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fs.IntVar(&f.workers, "workers", 0, "concurrent steps")
	fs.BoolVar(&f.strict, "strict", false, "fail on unresolved references")
	fs.BoolVar(&f.skipFailed, "skip-failed", false, "keep going when a step fails")
	fs.BoolVar(&f.overlay, "overlay", false, "use load overlays instead of model copies")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs, nil
}

// apply copies every explicitly set flag onto cfg.
func (f *cliFlags) apply(fs *flag.FlagSet, cfg *config.Config) {
	setters := map[string]func(){
		"buildings":   func() { cfg.Inputs.Buildings = f.buildings },
		"lines":       func() { cfg.Inputs.Lines = f.lines },
		"assignments": func() { cfg.Inputs.Assignments = f.assignments },
		"loads":       func() { cfg.Inputs.Loads = f.loads },
		"locations":   func() { cfg.Inputs.Locations = f.locations },
		"out-wide":    func() { cfg.Outputs.Wide = f.wide },
		"out-long":    func() { cfg.Outputs.Long = f.long },
		"out-network": func() { cfg.Outputs.Network = f.network },
		"out-diagram": func() { cfg.Outputs.Diagram = f.diagram },
		"out-geojson": func() { cfg.Outputs.GeoJSON = f.geojson },
		"out-metrics": func() { cfg.Outputs.Metrics = f.metrics },
		"category":    func() { cfg.Simulation.Category = f.category },
		"solver":      func() { cfg.Solver.Kind = f.solverKind },
		"solver-cmd":  func() { cfg.Solver.Command = f.solverCmd },
		"log-level":   func() { cfg.Log.Level = f.logLevel },
		"workers":     func() { cfg.Simulation.Workers = f.workers },
		"strict":      func() { cfg.Network.Strict = f.strict },
		"skip-failed": func() { cfg.Simulation.SkipFailedSteps = f.skipFailed },
		"overlay":     func() { cfg.Simulation.Overlay = f.overlay },
	}
	fs.Visit(func(fl *flag.Flag) {
		if set, ok := setters[fl.Name]; ok {
			set()
		}
	})
}
