package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/omario75013/tradingbot-v5/internal/config"
	"github.com/omario75013/tradingbot-v5/internal/run"
	"github.com/omario75013/tradingbot-v5/internal/stack"
	"github.com/omario75013/tradingbot-v5/pkg/log"
)

var settingsFile string

var rootCmd = &cobra.Command{
	Use:   "tradingbot-deploy",
	Short: "Provision and manage the TradingBot V5 container stack",
	Long: `tradingbot-deploy turns a bare Linux host into a running, self-restarting,
monitored deployment of the TradingBot V5 stack.

Run "tradingbot-deploy provision" on a fresh host, fill in the generated
.env secrets file, and the stack comes up supervised, firewalled and
monitored. Every command is safe to re-run.`,
	SilenceUsage: true,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&settingsFile, "settings", "s", "", "settings file overriding the compiled defaults (YAML)")
}

// loadConfig reads settings and initializes logging for management commands.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(settingsFile)
	if err != nil {
		return nil, err
	}
	log.InitLog(cfg.LogLevel, os.Stderr)
	return cfg, nil
}

// newStack binds a Stack to the configured install directory.
func newStack(cfg *config.Config) *stack.Stack {
	return stack.New(cfg.InstallDir, cfg.ServiceName, run.NewExecRunner())
}

// requireInstalled fails a management command early when the host was never
// provisioned.
func requireInstalled(cfg *config.Config) error {
	if _, err := os.Stat(filepath.Join(cfg.InstallDir, ".git")); err != nil {
		return fmt.Errorf("no deployment found at %s; run \"tradingbot-deploy provision\" first", cfg.InstallDir)
	}
	return nil
}
