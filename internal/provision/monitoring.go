package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/omario75013/tradingbot-v5/internal/artifact"
	"github.com/omario75013/tradingbot-v5/pkg/log"
)

// monitoringStep writes the Grafana provisioning documents. Both are
// derived artifacts: regenerated and overwritten unconditionally every run.
type monitoringStep struct{}

func (monitoringStep) Name() string { return "Monitoring provisioning" }

func (monitoringStep) Run(_ context.Context, hc *Context) error {
	provisioning := filepath.Join(hc.Config.InstallDir, "monitoring", "grafana", "provisioning")

	datasource, err := artifact.PrometheusDatasource().Render()
	if err != nil {
		return err
	}
	dsPath := filepath.Join(provisioning, "datasources", "prometheus.yml")
	if err := writeDerived(dsPath, datasource, 0o644); err != nil {
		return err
	}

	dashboards, err := artifact.FileDashboardProvider().Render()
	if err != nil {
		return err
	}
	dbPath := filepath.Join(provisioning, "dashboards", "dashboards.yml")
	if err := writeDerived(dbPath, dashboards, 0o644); err != nil {
		return err
	}

	log.Info("monitoring provisioning documents written", "datasource", dsPath, "dashboards", dbPath)
	return nil
}

// writeDerived creates parents and overwrites the target unconditionally.
// Only derived (never operator-owned) artifacts go through here.
func writeDerived(path string, content []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
