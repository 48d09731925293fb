// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// report.go - non-fatal findings collected while building.

package builder

// IssueKind classifies a Report entry.
type IssueKind string

// Issue kinds.
const (
	IssueUnresolvedBuilding  IssueKind = "unresolved_building"
	IssueUnresolvedLine      IssueKind = "unresolved_line"
	IssueDuplicateName       IssueKind = "duplicate_name"
	IssueUnknownVoltageLevel IssueKind = "unknown_voltage_level"
	IssueNamingConvention    IssueKind = "naming_convention"
	IssueNoSource            IssueKind = "no_source"
	IssueUnreachable         IssueKind = "unreachable"
	IssueLoop                IssueKind = "loop"
)

// Issue is one finding. Record names the offending input record or node.
type Issue struct {
	Kind   IssueKind
	Record string
	Detail string
}

// Report lists the issues of one Build in detection order.
type Report struct {
	Issues []Issue
}

// Count returns the number of issues of kind.
func (r *Report) Count(kind IssueKind) int {
	n := 0
	for _, is := range r.Issues {
		if is.Kind == kind {
			n++
		}
	}
	return n
}

// Skipped is the number of input records that were dropped.
func (r *Report) Skipped() int {
	return r.Count(IssueUnresolvedBuilding) + r.Count(IssueUnresolvedLine) + r.Count(IssueDuplicateName)
}

// Empty reports whether the build produced no findings.
func (r *Report) Empty() bool { return len(r.Issues) == 0 }
