// Package stack drives the declared multi-service container stack: compose
// lifecycle operations, declared-service enumeration and live container
// status.
package stack

import (
	"context"
	"fmt"

	"github.com/omario75013/tradingbot-v5/internal/run"
	"github.com/omario75013/tradingbot-v5/pkg/log"
)

// Stack operates on the compose project rooted at Dir. The compose project
// name matches the systemd service name so container labels line up.
type Stack struct {
	Dir     string
	Project string
	runner  run.Runner
}

// New returns a Stack bound to the given project directory.
func New(dir, project string, runner run.Runner) *Stack {
	return &Stack{Dir: dir, Project: project, runner: runner}
}

// compose executes `docker compose -p <project> ...` in the stack directory.
func (s *Stack) compose(ctx context.Context, args ...string) (string, error) {
	full := append([]string{"compose", "-p", s.Project}, args...)
	output, err := s.runner.Run(ctx, s.Dir, "docker", full...)
	if err != nil {
		return output, fmt.Errorf("docker compose %v failed: %w", args, err)
	}
	log.Debug("docker compose executed", "dir", s.Dir, "args", args)
	return output, nil
}

// Build builds the stack's images. The engine's layer cache makes this
// idempotent; noCache forces a full rebuild.
func (s *Stack) Build(ctx context.Context, noCache bool) error {
	args := []string{"build"}
	if noCache {
		args = append(args, "--no-cache")
	}
	_, err := s.compose(ctx, args...)
	return err
}

// Up brings the whole stack up detached.
func (s *Stack) Up(ctx context.Context) error {
	_, err := s.compose(ctx, "up", "-d")
	return err
}

// Down tears the whole stack down.
func (s *Stack) Down(ctx context.Context) error {
	_, err := s.compose(ctx, "down", "--remove-orphans")
	return err
}

// Restart restarts all containers in place.
func (s *Stack) Restart(ctx context.Context) error {
	_, err := s.compose(ctx, "restart")
	return err
}

// PS returns the engine's own status table for the stack.
func (s *Stack) PS(ctx context.Context) (string, error) {
	return s.compose(ctx, "ps")
}

// Logs tails container logs to the caller's terminal until interrupted.
func (s *Stack) Logs(ctx context.Context, tail int) error {
	args := []string{"compose", "-p", s.Project, "logs", "-f", fmt.Sprintf("--tail=%d", tail)}
	return s.runner.RunStreaming(ctx, s.Dir, "docker", args...)
}
