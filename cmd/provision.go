package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/omario75013/tradingbot-v5/internal/provision"
	"github.com/omario75013/tradingbot-v5/internal/run"
	"github.com/omario75013/tradingbot-v5/internal/ui"
	"github.com/omario75013/tradingbot-v5/pkg/log"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Run the full provisioning pipeline on this host",
	Long: `Runs the ordered provisioning pipeline: host inspection, dependency
installation, security hardening, repository synchronization, environment
materialization, monitoring wiring, service registration, management command
generation, log rotation and build-and-launch.

Every step is idempotent; re-running heals a partially provisioned host and
never destroys operator data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err := provision.CheckPrerequisites(); err != nil {
			fmt.Print(ui.FormatError("cannot provision", err.Error(), "run as root on a Linux host"))
			return err
		}

		// Step progress goes to the terminal; structured records go to a
		// run log file keyed by a fresh run id.
		logPath := filepath.Join(os.TempDir(), "tradingbot-provision.log")
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open run log %s: %w", logPath, err)
		}
		defer logFile.Close()
		log.InitLog(cfg.LogLevel, logFile)
		log.SetAttrs("run_id", uuid.NewString())

		ui.Title("Provisioning TradingBot V5")
		fmt.Println(ui.Dim("detailed log: " + logPath))
		fmt.Println()

		hc := provision.NewContext(cfg, run.NewExecRunner())
		if err := provision.Run(cmd.Context(), hc, provision.Steps()); err != nil {
			fmt.Print(ui.FormatError("provisioning aborted", err.Error(),
				"the host is partially provisioned but not corrupted; fix the cause and re-run"))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(provisionCmd)
}
