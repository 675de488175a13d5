package provision

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, hc *Context, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(hc.Config.InstallDir, 0o755))
	require.NoError(t, os.WriteFile(hc.Config.EnvFile(), []byte(content), 0o600))
}

const placeholderEnv = `ANTHROPIC_API_KEY=your_anthropic_api_key_here
BINANCE_API_KEY=your_binance_api_key_here
BINANCE_API_SECRET=your_binance_api_secret_here
TELEGRAM_BOT_TOKEN=your_telegram_bot_token_here
TELEGRAM_CHAT_ID=your_telegram_chat_id_here
`

const configuredEnv = `ANTHROPIC_API_KEY=sk-ant-live
BINANCE_API_KEY=key
BINANCE_API_SECRET=secret
TELEGRAM_BOT_TOKEN=123:token
TELEGRAM_CHAT_ID=42
`

func TestLaunchGatedOnPlaceholders(t *testing.T) {
	hc, runner := newTestContext(t)
	writeEnv(t, hc, placeholderEnv)

	require.NoError(t, launchStep{}.Run(context.Background(), hc))

	assert.Equal(t, LaunchAwaitingConfiguration, hc.Launch)
	assert.NotEmpty(t, hc.Pending)
	assert.True(t, runner.CalledWith("docker compose -p tradingbot build"), "the build always runs")
	assert.False(t, runner.CalledWith("docker compose -p tradingbot up"), "bring-up must not run on placeholder secrets")
}

func TestLaunchStartsWhenConfigured(t *testing.T) {
	hc, runner := newTestContext(t)
	writeEnv(t, hc, configuredEnv)

	require.NoError(t, launchStep{}.Run(context.Background(), hc))

	assert.Equal(t, LaunchStarted, hc.Launch)
	assert.Empty(t, hc.Pending)
	assert.True(t, runner.CalledWith("docker compose -p tradingbot up -d"))
}

func TestLaunchPartiallyFilledStillGated(t *testing.T) {
	hc, runner := newTestContext(t)
	writeEnv(t, hc, `ANTHROPIC_API_KEY=sk-ant-live
BINANCE_API_KEY=your_binance_api_key_here
BINANCE_API_SECRET=secret
TELEGRAM_BOT_TOKEN=123:token
TELEGRAM_CHAT_ID=42
`)

	require.NoError(t, launchStep{}.Run(context.Background(), hc))

	assert.Equal(t, LaunchAwaitingConfiguration, hc.Launch)
	assert.Equal(t, []string{"BINANCE_API_KEY"}, hc.Pending)
	assert.False(t, runner.CalledWith("docker compose -p tradingbot up"))
}

func TestLaunchBuildFailureIsLaunchFailure(t *testing.T) {
	hc, runner := newTestContext(t)
	writeEnv(t, hc, configuredEnv)
	runner.Errors["docker compose -p tradingbot build"] = errors.New("exit status 1")

	err := launchStep{}.Run(context.Background(), hc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLaunch))
}

func TestLaunchBringUpFailureIsLaunchFailure(t *testing.T) {
	hc, runner := newTestContext(t)
	writeEnv(t, hc, configuredEnv)
	runner.Errors["docker compose -p tradingbot up"] = errors.New("exit status 125")

	err := launchStep{}.Run(context.Background(), hc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLaunch))
	assert.NotEqual(t, LaunchStarted, hc.Launch)
}
