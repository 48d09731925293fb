// SPDX-License-Identifier: MIT

package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/katalvlaran/gridflow/wire"
)

// waitDelay bounds how long a killed process may keep its pipes open.
const waitDelay = 2 * time.Second

// Exec runs an external solver per call. The input document is written to
// the process's stdin; an output document is expected on stdout:
//
//	{"version":"1.0","type":"sym_output","data":{"node":[...],"line":[...],"shunt":[...]}}
type Exec struct {
	Command string
	Args    []string
	// Env, when non-nil, replaces the inherited environment.
	Env []string
}

// Solve implements Solver. Cancelling ctx kills the process.
func (e Exec) Solve(ctx context.Context, in *wire.Input) (*wire.Output, error) {
	payload, err := json.Marshal(wire.InputDocument(in))
	if err != nil {
		return nil, fmt.Errorf("solver: encode input: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Command, e.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	if e.Env != nil {
		cmd.Env = e.Env
	}
	if err = cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("solver: %s: %w", e.Command, ctxErr)
		}
		return nil, fmt.Errorf("%w: %s: %v: %s", ErrProcess, e.Command, err, strings.TrimSpace(stderr.String()))
	}

	var doc wire.Document[wire.Output]
	if err = json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &doc.Data, nil
}
