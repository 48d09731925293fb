// SPDX-License-Identifier: MIT

// Package report turns simulation results into two tables: wide (one row
// per entity, one column per time step) and long (one row per entity per
// time step).
//
// Node rows carry voltage, real power and the approximate reactive power
// and power factor given by a Policy; line rows carry current, rating and
// loading percent. Node record types come from the class cached on each
// node; line rows are always "line".
package report
