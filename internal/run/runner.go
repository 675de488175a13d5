// Package run wraps external process invocation behind a small interface so
// provisioning steps can be exercised against a recording fake in tests.
package run

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/omario75013/tradingbot-v5/pkg/log"
)

// Runner executes external commands on the host.
type Runner interface {
	// Run executes a command in dir (empty means inherit) and returns its
	// combined output.
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
	// RunStreaming executes a command wired to the caller's stdout/stderr.
	// Used for long-running interactive output such as log tailing and
	// package installation progress.
	RunStreaming(ctx context.Context, dir, name string, args ...string) error
	// LookPath reports whether an executable is present on PATH.
	LookPath(name string) bool
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

var _ Runner = (*ExecRunner)(nil)

// NewExecRunner returns a Runner that executes real host commands.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("command failed", "name", name, "args", args, "dir", dir, "output", string(output), "error", err)
		return string(output), fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
	}
	log.Debug("command executed", "name", name, "args", args, "dir", dir)
	return string(output), nil
}

func (r *ExecRunner) RunStreaming(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

func (r *ExecRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
