// SPDX-License-Identifier: MIT

// Package config holds the gridflow run configuration: input and output
// paths, network defaults, simulation and solver settings, and logging.
//
// A Config starts from Default, is overlaid by an optional YAML file and by
// GRIDFLOW_* environment variables, and is validated with struct tags:
//
//	network:
//	  mv_voltage: 20000
//	  strict: true
//	simulation:
//	  workers: 4
//	  step_timeout: 5s
//	solver:
//	  kind: exec
//	  command: ./pf-solver
package config
