// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GRIDFLOW_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and GRIDFLOW_* environment variables, then validates it.
// Unknown YAML keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: open %s: %w", path, err)
		}
		defer f.Close()
		if err := Decode(f, cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays YAML from r onto cfg. An empty document is not an error.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// envBinding maps one variable suffix to a setter.
type envBinding struct {
	key string
	set func(c *Config, v string) error
}

var envBindings = []envBinding{
	{"INPUT_BUILDINGS", func(c *Config, v string) error { c.Inputs.Buildings = v; return nil }},
	{"INPUT_LINES", func(c *Config, v string) error { c.Inputs.Lines = v; return nil }},
	{"INPUT_ASSIGNMENTS", func(c *Config, v string) error { c.Inputs.Assignments = v; return nil }},
	{"INPUT_LOADS", func(c *Config, v string) error { c.Inputs.Loads = v; return nil }},
	{"INPUT_LOCATIONS", func(c *Config, v string) error { c.Inputs.Locations = v; return nil }},
	{"OUTPUT_WIDE", func(c *Config, v string) error { c.Outputs.Wide = v; return nil }},
	{"OUTPUT_LONG", func(c *Config, v string) error { c.Outputs.Long = v; return nil }},
	{"STRICT", func(c *Config, v string) error { return parseBool(v, &c.Network.Strict) }},
	{"CATEGORY", func(c *Config, v string) error { c.Simulation.Category = v; return nil }},
	{"WORKERS", func(c *Config, v string) error { return parseInt(v, &c.Simulation.Workers) }},
	{"STEP_TIMEOUT", func(c *Config, v string) error { return parseDuration(v, &c.Simulation.StepTimeout) }},
	{"SKIP_FAILED_STEPS", func(c *Config, v string) error { return parseBool(v, &c.Simulation.SkipFailedSteps) }},
	{"SOLVER_KIND", func(c *Config, v string) error { c.Solver.Kind = v; return nil }},
	{"SOLVER_COMMAND", func(c *Config, v string) error { c.Solver.Command = v; return nil }},
	{"SOLVER_SEED", func(c *Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		c.Solver.Seed = n
		return nil
	}},
	{"LOG_LEVEL", func(c *Config, v string) error { c.Log.Level = strings.ToLower(v); return nil }},
	{"LOG_FORMAT", func(c *Config, v string) error { c.Log.Format = strings.ToLower(v); return nil }},
}

// ApplyEnv overlays GRIDFLOW_* variables found by lookup onto cfg.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for _, b := range envBindings {
		v, ok := lookup(EnvPrefix + b.key)
		if !ok {
			continue
		}
		if err := b.set(cfg, strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("config: %s%s=%q: %w", EnvPrefix, b.key, v, err)
		}
	}
	return nil
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func parseInt(v string, dst *int) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseDuration(v string, dst *time.Duration) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

var validate = validator.New()

// Validate checks every section. Failures are reported together.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s violates %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
