package provision

import (
	"context"
	"fmt"
	"time"

	"github.com/omario75013/tradingbot-v5/internal/envfile"
	"github.com/omario75013/tradingbot-v5/pkg/log"
)

// launchStep builds the stack's images and conditionally starts it. Start is
// gated on the secrets file holding no template placeholders: running a
// trading stack on placeholder credentials is worse than not starting it.
type launchStep struct{}

func (launchStep) Name() string { return "Build and launch" }

func (launchStep) Run(ctx context.Context, hc *Context) error {
	// The build always runs; the engine's layer cache makes it cheap when
	// nothing changed.
	if err := hc.Stack.Build(ctx, false); err != nil {
		return fmt.Errorf("%w: image build: %v", ErrLaunch, err)
	}

	pending, err := envfile.Pending(hc.Config.EnvFile())
	if err != nil {
		return fmt.Errorf("failed to check configuration state: %w", err)
	}
	if len(pending) > 0 {
		hc.Launch = LaunchAwaitingConfiguration
		hc.Pending = pending
		log.Info("stack not started: configuration incomplete", "pending_keys", pending)
		return nil
	}

	if err := hc.Stack.Up(ctx); err != nil {
		return fmt.Errorf("%w: bring-up: %v", ErrLaunch, err)
	}

	// Let the containers settle before sampling their state.
	settle := time.Duration(hc.Config.SettleSeconds) * time.Second
	log.Info("stack started, waiting for containers to settle", "settle", settle.String())
	select {
	case <-time.After(settle):
	case <-ctx.Done():
		return ctx.Err()
	}

	statuses, err := hc.Stack.Status(ctx)
	if err != nil {
		hc.Warn(fmt.Sprintf("stack started but status query failed: %v", err))
	} else {
		hc.Statuses = statuses
	}

	hc.Launch = LaunchStarted
	return nil
}
