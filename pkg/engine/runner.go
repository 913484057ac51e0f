// Package engine invokes the external molecular-dynamics engine on an
// emitted command script. The engine is an opaque collaborator: nothing in
// its output is interpreted, it is only streamed through the logger.
package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/google/uuid"
	"github.com/mdforge/lmpgen/pkg/logger"
)

// Runner wraps the engine binary.
type Runner struct {
	Binary  string
	Args    []string
	WorkDir string

	log logger.Logger
}

// NewRunner creates a runner for the given engine binary.
func NewRunner(binary string) *Runner {
	return &Runner{
		Binary: binary,
		log:    logger.WithPrefix("engine"),
	}
}

// Available reports whether the engine binary can be found.
func (r *Runner) Available() error {
	if _, err := exec.LookPath(r.Binary); err != nil {
		return fmt.Errorf("engine binary not found: %w", err)
	}
	return nil
}

// Run executes the engine on the given script, streaming its output through
// the logger until it exits or ctx is cancelled. It returns the id assigned
// to this invocation.
func (r *Runner) Run(ctx context.Context, scriptPath string) (string, error) {
	runID := uuid.NewString()

	args := append(append([]string{}, r.Args...), "-in", scriptPath)
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Dir = r.WorkDir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return runID, fmt.Errorf("failed to open engine stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return runID, fmt.Errorf("failed to open engine stderr: %w", err)
	}

	r.log.Infof("run %s: %s %v", runID, r.Binary, args)
	if err := cmd.Start(); err != nil {
		return runID, fmt.Errorf("failed to start engine: %w", err)
	}

	go r.stream(stdout, false)
	go r.stream(stderr, true)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return runID, fmt.Errorf("engine run %s cancelled: %w", runID, ctx.Err())
		}
		return runID, fmt.Errorf("engine run %s failed: %w", runID, err)
	}

	return runID, nil
}

func (r *Runner) stream(pipe io.Reader, isErr bool) {
	scanner := bufio.NewScanner(pipe)
	for scanner.Scan() {
		if isErr {
			r.log.Warn(scanner.Text())
		} else {
			r.log.Info(scanner.Text())
		}
	}
}
