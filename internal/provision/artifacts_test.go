package provision

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omario75013/tradingbot-v5/internal/artifact"
)

func TestServiceUnitRegistered(t *testing.T) {
	hc, runner := newTestContext(t)

	require.NoError(t, serviceStep{}.Run(context.Background(), hc))

	content, err := os.ReadFile(hc.UnitPath)
	require.NoError(t, err)

	unit, err := artifact.ParseSystemdUnit(string(content))
	require.NoError(t, err)
	assert.Equal(t, artifact.StackUnit("tradingbot", hc.Config.InstallDir), unit)

	assert.True(t, runner.CalledWith("systemctl daemon-reload"))
	assert.True(t, runner.CalledWith("systemctl enable tradingbot.service"))
}

func TestServiceUnitOverwritesDrift(t *testing.T) {
	hc, _ := newTestContext(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(hc.UnitPath), 0o755))
	require.NoError(t, os.WriteFile(hc.UnitPath, []byte("[Unit]\nDescription=hand edited\n"), 0o644))

	require.NoError(t, serviceStep{}.Run(context.Background(), hc))

	content, err := os.ReadFile(hc.UnitPath)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "hand edited", "the unit is derived and regenerated wholesale")
}

func TestManagementCommandsInstalled(t *testing.T) {
	hc, _ := newTestContext(t)

	require.NoError(t, managementStep{}.Run(context.Background(), hc))

	for _, name := range []string{
		"tradingbot-start", "tradingbot-stop", "tradingbot-restart",
		"tradingbot-logs", "tradingbot-status", "tradingbot-update", "tradingbot-config",
	} {
		path := filepath.Join(hc.BinDir, name)
		info, err := os.Stat(path)
		require.NoError(t, err, name)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm(), name)
	}
}

func TestLogRotationPolicyInstalled(t *testing.T) {
	hc, _ := newTestContext(t)

	require.NoError(t, logrotateStep{}.Run(context.Background(), hc))

	content, err := os.ReadFile(hc.LogrotatePath)
	require.NoError(t, err)

	policy, err := artifact.ParseLogRotationPolicy(string(content))
	require.NoError(t, err)
	assert.Equal(t, artifact.StackLogRotation(hc.Config.LogsDir()), policy)
}

func TestInspectNeverFails(t *testing.T) {
	hc, _ := newTestContext(t)
	require.NoError(t, inspectStep{}.Run(context.Background(), hc))
	assert.NotEmpty(t, hc.Facts.Arch)
}
