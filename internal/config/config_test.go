package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/opt/tradingbot-v5", cfg.InstallDir)
	assert.Equal(t, "main", cfg.Branch)
	assert.Equal(t, "tradingbot", cfg.ServiceName)
	assert.Equal(t, 3000, cfg.Ports.Grafana)
	assert.Equal(t, 8000, cfg.Ports.Metrics)
	assert.Equal(t, 9090, cfg.Ports.Prometheus)
	assert.Equal(t, 10, cfg.SettleSeconds)
	assert.Equal(t, "/opt/tradingbot-v5/.env", cfg.EnvFile())
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deploy.yml")
	content := `install_dir: /srv/bot
branch: develop
settle_seconds: 3
ports:
  grafana: 3001
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/bot", cfg.InstallDir)
	assert.Equal(t, "develop", cfg.Branch)
	assert.Equal(t, 3, cfg.SettleSeconds)
	assert.Equal(t, 3001, cfg.Ports.Grafana)
	// untouched fields keep their defaults
	assert.Equal(t, 9090, cfg.Ports.Prometheus)
	assert.Equal(t, "/srv/bot/logs", cfg.LogsDir())
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestDataDirsCoverProvisioningTree(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	dirs := cfg.DataDirs()
	assert.Contains(t, dirs, "/opt/tradingbot-v5/logs")
	assert.Contains(t, dirs, "/opt/tradingbot-v5/monitoring/grafana/provisioning/datasources")
	assert.Contains(t, dirs, "/opt/tradingbot-v5/monitoring/grafana/provisioning/dashboards")
}
