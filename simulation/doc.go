// SPDX-License-Identifier: MIT

// Package simulation replays a load series through a topology model, one
// solver call per time step.
//
// Each step works on its own copy of the base model (or a load overlay,
// see WithOverlay), so steps are independent and may run concurrently with
// WithWorkers. Results always come back in ascending step order.
//
// Failures are reported as *StepError carrying the step index and label.
// The default is to abort on the first failure; WithSkipFailedSteps keeps
// going and marks the failed steps in the Result. WithStepTimeout puts a
// deadline on every solver call.
package simulation
