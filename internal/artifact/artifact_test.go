package artifact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemdUnitRoundTrip(t *testing.T) {
	unit := StackUnit("tradingbot", "/opt/tradingbot-v5")

	parsed, err := ParseSystemdUnit(unit.Render())
	require.NoError(t, err)
	assert.Equal(t, unit, parsed)
}

func TestStackUnitShape(t *testing.T) {
	rendered := StackUnit("tradingbot", "/opt/tradingbot-v5").Render()

	assert.Contains(t, rendered, "After=docker.service network-online.target")
	assert.Contains(t, rendered, "Requires=docker.service")
	assert.Contains(t, rendered, "Type=oneshot")
	assert.Contains(t, rendered, "RemainAfterExit=yes")
	assert.Contains(t, rendered, "WorkingDirectory=/opt/tradingbot-v5")
	assert.Contains(t, rendered, "ExecStart=/usr/bin/docker compose -p tradingbot up -d")
	assert.Contains(t, rendered, "ExecStop=/usr/bin/docker compose -p tradingbot down")
	assert.Contains(t, rendered, "WantedBy=multi-user.target")
}

// systemd refuses to load a oneshot unit carrying a Restart= policy, so the
// renderer must never emit that combination, whatever the model holds.
func TestOneshotUnitNeverEmitsRestart(t *testing.T) {
	stack := StackUnit("tradingbot", "/opt/tradingbot-v5")
	assert.Equal(t, "oneshot", stack.Type)
	assert.NotContains(t, stack.Render(), "Restart=")

	hardened := stack
	hardened.Restart = "always"
	hardened.RestartSec = 10
	assert.NotContains(t, hardened.Render(), "Restart=")
}

// Every compose invocation the supervisor runs must pin the project name,
// otherwise a boot-time bring-up and a provisioning run would create two
// parallel compose projects fighting over the same ports.
func TestStackUnitComposeCallsPinProject(t *testing.T) {
	unit := StackUnit("tradingbot", "/opt/tradingbot-v5")
	for _, cmd := range []string{unit.ExecStart, unit.ExecStop, unit.ExecReload} {
		assert.Contains(t, cmd, "docker compose -p tradingbot")
	}
}

func TestSystemdUnitRenderIsDeterministic(t *testing.T) {
	a := StackUnit("tradingbot", "/opt/tradingbot-v5").Render()
	b := StackUnit("tradingbot", "/opt/tradingbot-v5").Render()
	assert.Equal(t, a, b)
}

func TestLogRotationRoundTrip(t *testing.T) {
	policy := StackLogRotation("/opt/tradingbot-v5/logs")

	parsed, err := ParseLogRotationPolicy(policy.Render())
	require.NoError(t, err)
	assert.Equal(t, policy, parsed)
}

func TestLogRotationShape(t *testing.T) {
	rendered := StackLogRotation("/opt/tradingbot-v5/logs").Render()

	assert.True(t, strings.HasPrefix(rendered, "/opt/tradingbot-v5/logs/*.log {"))
	assert.Contains(t, rendered, "daily")
	assert.Contains(t, rendered, "rotate 14")
	assert.Contains(t, rendered, "compress")
	assert.Contains(t, rendered, "notifempty")
	assert.Contains(t, rendered, "create 0640 root root")
}

func TestFail2banJailRoundTrip(t *testing.T) {
	jail := SSHJail()

	parsed, err := ParseFail2banJail(jail.Render())
	require.NoError(t, err)
	assert.Equal(t, jail, parsed)
}

func TestSSHJailThresholds(t *testing.T) {
	jail := SSHJail()
	assert.Equal(t, 5, jail.MaxRetry)
	assert.Equal(t, 600, jail.FindTimeSec)
	assert.Equal(t, 3600, jail.BanTimeSec)
	assert.Contains(t, jail.Render(), "[sshd]")
}

func TestManagementScriptsFixedSet(t *testing.T) {
	scripts := ManagementScripts("tradingbot", "/opt/tradingbot-v5", "main")

	names := make([]string, 0, len(scripts))
	for _, s := range scripts {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"tradingbot-start",
		"tradingbot-stop",
		"tradingbot-restart",
		"tradingbot-logs",
		"tradingbot-status",
		"tradingbot-update",
		"tradingbot-config",
	}, names)
}

func TestManagementScriptBodies(t *testing.T) {
	scripts := ManagementScripts("tradingbot", "/opt/tradingbot-v5", "main")
	byName := map[string]ManagementScript{}
	for _, s := range scripts {
		byName[s.Name] = s
	}

	update := byName["tradingbot-update"].Render()
	assert.Contains(t, update, "set -euo pipefail")
	assert.Contains(t, update, "git reset --hard origin/main")
	assert.Contains(t, update, "docker compose -p tradingbot build --no-cache")

	start := byName["tradingbot-start"].Render()
	assert.Contains(t, start, "systemctl start tradingbot.service")
	assert.True(t, strings.HasPrefix(start, "#!/usr/bin/env bash"))

	config := byName["tradingbot-config"].Render()
	assert.Contains(t, config, "/opt/tradingbot-v5/.env")
}

// The scripts address the stack through the same compose project the
// provisioner uses; an unpinned invocation would default to the directory
// name and miss the provisioned containers.
func TestManagementScriptsComposeCallsPinProject(t *testing.T) {
	for _, s := range ManagementScripts("tradingbot", "/opt/tradingbot-v5", "main") {
		for _, line := range s.Body {
			if strings.Contains(line, "docker compose") {
				assert.Contains(t, line, "docker compose -p tradingbot", "script %s", s.Name)
			}
		}
	}
}

func TestPrometheusDatasourceRoundTrip(t *testing.T) {
	doc := PrometheusDatasource()

	rendered, err := doc.Render()
	require.NoError(t, err)

	parsed, err := ParseDatasourceDocument(rendered)
	require.NoError(t, err)
	assert.Equal(t, doc, parsed)

	require.Len(t, parsed.Datasources, 1)
	ds := parsed.Datasources[0]
	assert.Equal(t, "prometheus", ds.Type)
	assert.Equal(t, "proxy", ds.Access)
	assert.Equal(t, "http://prometheus:9090", ds.URL)
	assert.True(t, ds.IsDefault)
}

func TestDashboardProviderRoundTrip(t *testing.T) {
	doc := FileDashboardProvider()

	rendered, err := doc.Render()
	require.NoError(t, err)

	parsed, err := ParseDashboardDocument(rendered)
	require.NoError(t, err)
	assert.Equal(t, doc, parsed)

	require.Len(t, parsed.Providers, 1)
	p := parsed.Providers[0]
	assert.Equal(t, "file", p.Type)
	assert.Equal(t, 10, p.UpdateInterval)
	assert.Equal(t, "/var/lib/grafana/dashboards", p.Options["path"])
}
