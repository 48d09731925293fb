// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/katalvlaran/gridflow/builder"
	"github.com/katalvlaran/gridflow/config"
	"github.com/katalvlaran/gridflow/core"
	"github.com/katalvlaran/gridflow/logging"
	"github.com/katalvlaran/gridflow/render"
	"github.com/katalvlaran/gridflow/report"
	"github.com/katalvlaran/gridflow/simulation"
	"github.com/katalvlaran/gridflow/solver"
	"github.com/katalvlaran/gridflow/table"
	"github.com/katalvlaran/gridflow/wire"
)

const metricsNamespace = "gridflow"

func run(ctx context.Context, args []string, stderr io.Writer) error {
	flags, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	flags.apply(fs, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	model, err := buildModel(cfg, log)
	if err != nil {
		return err
	}
	series, err := table.LoadSeries(cfg.Inputs.Loads, cfg.Simulation.Category)
	if err != nil {
		return err
	}
	log.Info("series loaded",
		zap.Int("entities", series.Len()),
		zap.Int("steps", series.Steps()),
		zap.String("category", cfg.Simulation.Category),
	)
	if err := writeNetworkViews(cfg.Outputs, model); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics, err := simulation.NewMetrics(metricsNamespace, reg)
	if err != nil {
		return err
	}
	opts := []simulation.Option{
		simulation.WithWorkers(cfg.Simulation.Workers),
		simulation.WithStepTimeout(cfg.Simulation.StepTimeout),
		simulation.WithLogger(log),
		simulation.WithMetrics(metrics),
	}
	if cfg.Simulation.SkipFailedSteps {
		opts = append(opts, simulation.WithSkipFailedSteps())
	}
	if cfg.Simulation.Overlay {
		opts = append(opts, simulation.WithOverlay())
	}
	if !flags.noProgress && series.Steps() > 0 {
		bar := pb.New(series.Steps())
		bar.Output = stderr
		bar.ShowTimeLeft = false
		bar.Start()
		defer bar.Finish()
		opts = append(opts, simulation.WithProgress(func(done, _ int) { bar.Set(done) }))
	}

	res, err := simulation.Run(ctx, model, series, newSolver(cfg.Solver, log), opts...)
	if err != nil {
		return err
	}
	if failed := res.Failed(); len(failed) > 0 {
		log.Warn("steps failed", zap.Ints("steps", failed))
	}

	acc, err := report.Collect(model, res, report.WithReactiveRatio(cfg.Simulation.ReactiveRatio))
	if err != nil {
		return err
	}
	if err := writeFile(cfg.Outputs.Wide, acc.WriteWide); err != nil {
		return err
	}
	if err := writeFile(cfg.Outputs.Long, acc.WriteLong); err != nil {
		return err
	}
	if cfg.Outputs.Metrics != "" {
		if err := prometheus.WriteToTextfile(cfg.Outputs.Metrics, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	log.Info("results written",
		zap.String("run_id", res.RunID),
		zap.String("wide", cfg.Outputs.Wide),
		zap.String("long", cfg.Outputs.Long),
		zap.Int("entities", acc.Len()),
	)
	return nil
}

// buildModel checks every input exists before reading any of them.
func buildModel(cfg *config.Config, log *zap.Logger) (*core.Model, error) {
	in := cfg.Inputs
	paths := []string{in.Buildings, in.Lines, in.Assignments, in.Loads}
	if in.Locations != "" {
		paths = append(paths, in.Locations)
	}
	if err := table.RequireFiles(paths...); err != nil {
		return nil, err
	}

	var (
		tables builder.Tables
		err    error
	)
	if tables.Buildings, err = table.LoadBuildings(in.Buildings); err != nil {
		return nil, err
	}
	if tables.Lines, err = table.LoadLines(in.Lines); err != nil {
		return nil, err
	}
	if tables.Assignments, err = table.LoadAssignments(in.Assignments); err != nil {
		return nil, err
	}
	if in.Locations != "" {
		if tables.Locations, err = table.LoadLocations(in.Locations); err != nil {
			return nil, err
		}
	}

	opts := append(cfg.Network.BuilderOptions(), builder.WithLogger(log))
	model, rep, err := builder.Build(tables, opts...)
	if err != nil {
		return nil, err
	}
	st := model.Stats()
	log.Info("network built",
		zap.Int("nodes", st.Nodes),
		zap.Int("lines", st.Lines),
		zap.Int("links", st.Links),
		zap.Int("loads", st.Loads),
		zap.Int("issues", len(rep.Issues)),
		zap.Int("skipped_records", rep.Skipped()),
	)
	return model, nil
}

func newSolver(c config.Solver, log *zap.Logger) solver.Solver {
	var s solver.Solver = solver.Dummy{Seed: c.Seed}
	if c.Kind == config.SolverExec {
		s = solver.Exec{Command: c.Command, Args: c.Args}
	}
	if !c.Breaker.Enabled {
		return s
	}
	return solver.Guard(s, solver.BreakerSettings{
		Name:                   c.Kind,
		MaxConsecutiveFailures: c.Breaker.MaxFailures,
		OpenTimeout:            c.Breaker.OpenTimeout,
		OnStateChange: func(name, from, to string) {
			log.Warn("solver breaker", zap.String("name", name), zap.String("from", from), zap.String("to", to))
		},
	})
}

// writeNetworkViews writes the optional views of the base network.
func writeNetworkViews(out config.Outputs, m *core.Model) error {
	if out.Network != "" {
		err := writeFile(out.Network, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(wire.InputDocument(wire.ToSolverInput(m)))
		})
		if err != nil {
			return err
		}
	}
	if out.Diagram != "" {
		err := writeFile(out.Diagram, func(w io.Writer) error { return render.WriteASCII(w, m) })
		if err != nil {
			return err
		}
	}
	if out.GeoJSON != "" {
		err := writeFile(out.GeoJSON, func(w io.Writer) error { return render.WriteGeoJSON(w, render.GeoJSON(m)) })
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
