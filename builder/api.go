// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// api.go - Build, the single entry point of the package.
//
// Stages run in a fixed order, which fixes the id sequence:
//   1. endpoint nodes (first appearance in the lines table)
//   2. lines
//   3. building nodes, each followed by its load
//   4. links (assignment order)
//   5. source at the root node
//   6. checks (naming convention, reachability from the source)

package builder

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/gridflow/core"
	"github.com/katalvlaran/gridflow/table"
)

// Tables are the inputs of Build. Locations is optional.
type Tables struct {
	Buildings   []table.Building
	Lines       []table.Line
	Assignments []table.Assignment
	Locations   map[string]table.Location
}

// stage is one step of the build pipeline.
type stage func(*buildState) error

// buildState is shared by the stages of one Build.
type buildState struct {
	cfg       builderConfig
	in        Tables
	model     *core.Model
	report    *Report
	lines     map[string]core.Line // line name -> built line
	buildings map[string]core.ID   // building name -> node id
}

// Build converts the tables into a Model. Non-fatal findings are returned in
// the Report; with WithStrictReferences some of them become errors instead.
func Build(in Tables, opts ...BuilderOption) (*core.Model, *Report, error) {
	st := &buildState{
		cfg:       newBuilderConfig(opts...),
		in:        in,
		model:     core.NewModel(),
		report:    &Report{},
		lines:     make(map[string]core.Line, len(in.Lines)),
		buildings: make(map[string]core.ID, len(in.Buildings)),
	}
	stages := []stage{endpointNodes, lines, buildings, links, source, checks}
	for _, run := range stages {
		if err := run(st); err != nil {
			return nil, st.report, fmt.Errorf("Build: %w", err)
		}
	}

	return st.model, st.report, nil
}

// issue records a finding and logs it.
func (st *buildState) issue(kind IssueKind, record, detail string) {
	st.report.Issues = append(st.report.Issues, Issue{Kind: kind, Record: record, Detail: detail})
	st.cfg.log.Warn("network build issue",
		zap.String("kind", string(kind)),
		zap.String("record", record),
		zap.String("detail", detail),
	)
}

// strictOr returns err under the strict policy and records an issue otherwise.
func (st *buildState) strictOr(err error, kind IssueKind, record, detail string) error {
	if st.cfg.strict {
		return fmt.Errorf("%s %q: %s: %w", kind, record, detail, err)
	}
	st.issue(kind, record, detail)
	return nil
}
