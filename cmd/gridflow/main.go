// SPDX-License-Identifier: MIT

// Command gridflow builds a distribution network from tabular inputs,
// replays a load time series through a power-flow solver and writes the
// per-step results as wide and long CSV tables.
//
// Usage:
//
//	gridflow [-config gridflow.yaml] [-workers 4] [-loads loads.csv] ...
//
// Settings are layered, lowest first: built-in defaults, the configuration
// file, GRIDFLOW_* environment variables, explicitly given flags.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "gridflow:", err)
		stop()
		os.Exit(1)
	}
}
