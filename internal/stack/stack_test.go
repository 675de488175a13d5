package stack

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omario75013/tradingbot-v5/internal/run"
)

func TestComposeLifecycleCommands(t *testing.T) {
	runner := run.NewRecordingRunner()
	s := New("/opt/tradingbot-v5", "tradingbot", runner)
	ctx := context.Background()

	require.NoError(t, s.Build(ctx, false))
	require.NoError(t, s.Build(ctx, true))
	require.NoError(t, s.Up(ctx))
	require.NoError(t, s.Down(ctx))
	require.NoError(t, s.Restart(ctx))

	assert.Equal(t, []string{
		"docker compose -p tradingbot build",
		"docker compose -p tradingbot build --no-cache",
		"docker compose -p tradingbot up -d",
		"docker compose -p tradingbot down --remove-orphans",
		"docker compose -p tradingbot restart",
	}, runner.Calls)
}

func TestComposeFailureIsWrapped(t *testing.T) {
	runner := run.NewRecordingRunner()
	runner.Errors["docker compose -p tradingbot up"] = errors.New("exit status 1")

	s := New("/opt/tradingbot-v5", "tradingbot", runner)
	err := s.Up(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docker compose")
}

func TestMapDockerState(t *testing.T) {
	tests := []struct {
		in   string
		want State
	}{
		{"running", StateRunning},
		{"Running", StateRunning},
		{"exited", StateStopped},
		{"created", StateStopped},
		{"restarting", StateRestarting},
		{"dead", StateProblematic},
		{"paused", StateProblematic},
		{"weird", StateUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mapDockerState(tt.in), tt.in)
	}
}

func TestAllRunning(t *testing.T) {
	assert.False(t, AllRunning(nil), "empty stack is not running")
	assert.True(t, AllRunning([]ServiceStatus{
		{Service: "tradingbot", State: StateRunning},
		{Service: "grafana", State: StateRunning},
	}))
	assert.False(t, AllRunning([]ServiceStatus{
		{Service: "tradingbot", State: StateRunning},
		{Service: "grafana", State: StateStopped},
	}))
}

func TestComposeFileDetection(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "tradingbot", run.NewRecordingRunner())

	_, err := s.ComposeFile()
	assert.Error(t, err, "no compose file yet")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "compose.yml"), []byte("services: {}\n"), 0o644))
	path, err := s.ComposeFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "compose.yml"), path)

	// docker-compose.yml wins over compose.yml
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docker-compose.yml"), []byte("services: {}\n"), 0o644))
	path, err = s.ComposeFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docker-compose.yml"), path)
}

func TestServicesEnumeration(t *testing.T) {
	dir := t.TempDir()
	content := `services:
  tradingbot:
    image: tradingbot:latest
  prometheus:
    image: prom/prometheus:latest
  grafana:
    image: grafana/grafana:latest
  redis:
    image: redis:7-alpine
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docker-compose.yml"), []byte(content), 0o644))

	s := New(dir, "tradingbot", run.NewRecordingRunner())
	services := s.Services(context.Background())
	assert.Equal(t, []string{"grafana", "prometheus", "redis", "tradingbot"}, services)
}

func TestServicesDegradesOnMissingFile(t *testing.T) {
	s := New(t.TempDir(), "tradingbot", run.NewRecordingRunner())
	assert.Empty(t, s.Services(context.Background()))
}
