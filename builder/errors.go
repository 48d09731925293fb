// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only package-level sentinels are exposed; branch with errors.Is.
//   • Context (record name, stage) is attached with %w at the detection site.
//   • Under the default lenient policy the reference sentinels never surface;
//     the same conditions are recorded as Issues in the Report instead.

package builder

import "errors"

// ErrUnresolvedReference indicates an assignment naming an unknown building
// or line. Returned only with WithStrictReferences.
var ErrUnresolvedReference = errors.New("builder: unresolved reference")

// ErrDuplicateName indicates a building whose name is already a node.
// Returned only with WithStrictReferences.
var ErrDuplicateName = errors.New("builder: duplicate node name")

// ErrUnknownVoltageLevel indicates a line whose level is neither MV nor LV.
// Returned only with WithStrictReferences; otherwise the line is built as LV.
var ErrUnknownVoltageLevel = errors.New("builder: unknown voltage level")
