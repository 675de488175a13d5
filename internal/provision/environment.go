package provision

import (
	"context"
	"fmt"
	"os"

	"github.com/omario75013/tradingbot-v5/internal/envfile"
	"github.com/omario75013/tradingbot-v5/pkg/log"
)

// environmentStep materializes the operator-owned secrets file and the data
// directory tree. The .env file is the only operator-owned artifact of the
// whole pipeline: created once from the template, never overwritten after.
type environmentStep struct{}

func (environmentStep) Name() string { return "Environment materialization" }

func (environmentStep) Run(_ context.Context, hc *Context) error {
	created, err := envfile.Materialize(hc.Config.EnvFile(), hc.Config.EnvTemplate())
	if err != nil {
		return err
	}
	hc.EnvCreated = created
	if created {
		log.Info("secrets file created from template", "path", hc.Config.EnvFile())
	} else {
		log.Info("secrets file already exists, leaving untouched", "path", hc.Config.EnvFile())
	}

	for _, dir := range hc.Config.DataDirs() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Re-tighten every run: manual edits may have widened the mode.
	return envfile.TightenPermissions(hc.Config.EnvFile())
}
