package clients

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner starts an external program and waits for it.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Exec wraps external tools the analysis shells out to.
type Exec struct {
	run     Runner
	timeout time.Duration
}

func NewExec(timeout time.Duration) *Exec { return &Exec{run: runCommand, timeout: timeout} }

// WithRunner swaps the process runner, mostly for tests.
func (e *Exec) WithRunner(r Runner) *Exec {
	cp := *e
	cp.run = r
	return &cp
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > 512 {
			msg = msg[len(msg)-512:]
		}
		return out, fmt.Errorf("%s: %w: %s", name, err, msg)
	}
	return out, nil
}
