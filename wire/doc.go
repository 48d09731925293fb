// SPDX-License-Identifier: MIT

// Package wire defines the solver contract: the Input a solver receives,
// the Output it returns, and the mapping from a core.Model to Input.
// Power crosses the boundary in watts; the model keeps kilowatts.
package wire
