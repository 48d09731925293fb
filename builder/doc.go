// SPDX-License-Identifier: MIT

// Package builder turns the input tables into a core.Model.
//
// Identifiers come from one IDAllocator shared by every entity kind, so they
// are unique across the whole model. Nodes are resolved by name through the
// model's index, never by coordinate.
//
// Reference policy: by default an assignment naming an unknown building or
// line is skipped and recorded in the Report, as is a building whose name is
// already taken. WithStrictReferences turns these into errors. Both modes
// are covered by the package tests.
//
// Example:
//
//	m, rep, err := builder.Build(builder.Tables{
//		Buildings:   buildings,
//		Lines:       lines,
//		Assignments: assignments,
//	}, builder.WithLogger(log))
package builder
