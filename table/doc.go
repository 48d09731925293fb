// SPDX-License-Identifier: MIT

// Package table reads the tabular inputs of a simulation: buildings, lines,
// building-to-line assignments, optional node locations and the time-series
// load table.
//
// Entity tables may be CSV (header row) or JSON (array of objects); FormatFor
// chooses by extension. Every parse or validation failure is a *ParseError
// naming the table, data row and column.
package table
