// SPDX-License-Identifier: MIT

// Package core defines the electrical topology Model: nodes, lines, links,
// loads, sources and shunts sharing one identifier space.
//
// A Model is built once (see package builder) and then treated as read-only.
// Per-step variation is expressed either on a Clone, whose loads can be
// rewritten with ApplyLoads, or on an Overlay, which keeps only a slice of
// load powers and reads topology from the shared base.
//
// Node names are unique and resolved through an index built on insert. Each
// node carries its NodeClass, derived from a Naming convention when added.
package core
