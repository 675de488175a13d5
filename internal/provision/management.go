package provision

import (
	"context"
	"path/filepath"

	"github.com/omario75013/tradingbot-v5/internal/artifact"
	"github.com/omario75013/tradingbot-v5/pkg/log"
)

// managementStep installs the fixed operator command set as standalone shell
// wrappers. Each wrapper composes only stack lifecycle primitives and the
// install directory, so every command stays valid after later
// re-provisioning runs.
type managementStep struct{}

func (managementStep) Name() string { return "Management command generation" }

func (managementStep) Run(_ context.Context, hc *Context) error {
	scripts := artifact.ManagementScripts(hc.Config.ServiceName, hc.Config.InstallDir, hc.Config.Branch)

	for _, script := range scripts {
		path := filepath.Join(hc.BinDir, script.Name)
		if err := writeDerived(path, []byte(script.Render()), 0o755); err != nil {
			return err
		}
	}

	log.Info("management commands installed", "bin_dir", hc.BinDir, "count", len(scripts))
	return nil
}
