// SPDX-License-Identifier: MIT

// Package gridflow runs quasi-static time-series power-flow studies of
// radial distribution networks.
//
// A run is a pipeline over these packages:
//
//	table       parse buildings, lines, assignments, locations and load series
//	builder     turn the tables into a core.Model (nodes, lines, links, loads, source)
//	core        the network model: ids, name indexes, copies and load overlays
//	wire        map a model to the solver input document
//	solver      solve one step: dummy, external process, circuit breaker
//	simulation  replay every step of the series, sequentially or in parallel
//	report      derive P, Q, PF and loading; write wide and long CSV
//	render      text tree and GeoJSON views of a model
//	bfs, dfs    traversal, reachability and loop detection
//
// The gridflow command in cmd/gridflow wires them together with config
// and logging.
package gridflow
