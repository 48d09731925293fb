// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// options.go - functional options for Build.
//
// Contract:
//   • Option constructors validate and panic on meaningless inputs.
//   • Build itself never panics.

package builder

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/gridflow/core"
)

// BuilderOption customizes a Build call.
type BuilderOption func(*builderConfig)

// WithVoltages overrides the rated voltages. All must be positive.
func WithVoltages(v Voltages) BuilderOption {
	if v.MV <= 0 || v.LV <= 0 {
		panic(fmt.Sprintf("builder: WithVoltages(%+v): voltages must be positive", v))
	}
	return func(c *builderConfig) { c.voltages = v }
}

// WithSlackVoltage sets the source reference voltage in p.u.
func WithSlackVoltage(pu float64) BuilderOption {
	if pu <= 0 {
		panic(fmt.Sprintf("builder: WithSlackVoltage(%v): must be positive", pu))
	}
	return func(c *builderConfig) { c.slackPU = pu }
}

// WithLineParams replaces the defaults of one voltage level.
func WithLineParams(level core.VoltageLevel, p LineParams) BuilderOption {
	if level != core.LevelMV && level != core.LevelLV {
		panic(fmt.Sprintf("builder: WithLineParams(%q): unknown level", level))
	}
	if p.Resistance < 0 || p.Reactance < 0 || p.CurrentRating < 0 {
		panic(fmt.Sprintf("builder: WithLineParams(%+v): negative parameter", p))
	}
	return func(c *builderConfig) {
		params := make(map[core.VoltageLevel]LineParams, len(c.lineParams))
		for k, v := range c.lineParams {
			params[k] = v
		}
		params[level] = p
		c.lineParams = params
	}
}

// WithNaming sets the naming convention used for classification and for
// locating the root node.
func WithNaming(n core.Naming) BuilderOption {
	if n.RootName == "" {
		panic("builder: WithNaming: empty root name")
	}
	return func(c *builderConfig) { c.naming = n }
}

// WithLoadDefaults sets the status flag and type code of created loads.
func WithLoadDefaults(status, typ int) BuilderOption {
	return func(c *builderConfig) {
		c.loadStatus = status
		c.loadType = typ
	}
}

// WithStrictReferences turns unresolved references, duplicate building
// names and unknown voltage levels into errors.
func WithStrictReferences() BuilderOption {
	return func(c *builderConfig) { c.strict = true }
}

// WithIDAllocator makes Build draw ids from a.
func WithIDAllocator(a *IDAllocator) BuilderOption {
	if a == nil {
		panic("builder: WithIDAllocator(nil)")
	}
	return func(c *builderConfig) { c.ids = a }
}

// WithLogger routes report issues to l at Warn level.
func WithLogger(l *zap.Logger) BuilderOption {
	if l == nil {
		panic("builder: WithLogger(nil)")
	}
	return func(c *builderConfig) { c.log = l }
}
