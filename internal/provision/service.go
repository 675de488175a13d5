package provision

import (
	"context"
	"fmt"

	"github.com/omario75013/tradingbot-v5/internal/artifact"
	"github.com/omario75013/tradingbot-v5/pkg/log"
)

// serviceStep registers the process-supervisor unit that manages the stack
// across reboots. The unit is entirely derived from the install directory,
// so the unconditional overwrite plus daemon-reload is safe.
type serviceStep struct{}

func (serviceStep) Name() string { return "Service registration" }

func (serviceStep) Run(ctx context.Context, hc *Context) error {
	unit := artifact.StackUnit(hc.Config.ServiceName, hc.Config.InstallDir)

	if err := writeDerived(hc.UnitPath, []byte(unit.Render()), 0o644); err != nil {
		return err
	}

	if _, err := hc.Runner.Run(ctx, "", "systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf("failed to reload unit index: %w", err)
	}
	if _, err := hc.Runner.Run(ctx, "", "systemctl", "enable", hc.Config.ServiceName+".service"); err != nil {
		return fmt.Errorf("failed to enable service: %w", err)
	}

	log.Info("service unit registered", "path", hc.UnitPath, "service", hc.Config.ServiceName)
	return nil
}
