package cmd

import (
	"github.com/spf13/cobra"

	"github.com/omario75013/tradingbot-v5/internal/provision"
	"github.com/omario75013/tradingbot-v5/internal/run"
	"github.com/omario75013/tradingbot-v5/internal/stack"
	"github.com/omario75013/tradingbot-v5/internal/ui"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Pull the latest code and rebuild the stack",
	Long: `update stops the stack, hard-resets the working copy to the upstream
branch, rebuilds every image from scratch and starts the stack again.
Local changes to tracked files are discarded; the .env secrets file is
kept as-is.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := requireInstalled(cfg); err != nil {
			return err
		}
		ctx := cmd.Context()
		runner := run.NewExecRunner()
		s := newStack(cfg)

		ui.Title("Updating " + cfg.ServiceName)

		ui.StepStarted("Stopping stack")
		if _, err := runner.Run(ctx, "", "systemctl", "stop", cfg.ServiceName+".service"); err != nil {
			return err
		}
		ui.StepDone("Stopping stack", "")

		ui.StepStarted("Synchronizing repository")
		if err := provision.SyncRepository(ctx, cfg); err != nil {
			return err
		}
		ui.StepDone("Synchronizing repository", cfg.Branch)

		ui.StepStarted("Rebuilding images")
		if err := s.Build(ctx, true); err != nil {
			return err
		}
		ui.StepDone("Rebuilding images", "no cache")

		ui.StepStarted("Starting stack")
		if _, err := runner.Run(ctx, "", "systemctl", "start", cfg.ServiceName+".service"); err != nil {
			return err
		}
		ui.StepDone("Starting stack", "")

		statuses, err := s.Status(ctx)
		if err != nil {
			ui.Warn("could not query container status: " + err.Error())
			return nil
		}
		if stack.AllRunning(statuses) {
			ui.Success("Update complete, all services running.")
		} else {
			ui.Warn("update applied but not all services are running; check \"tradingbot-deploy logs\"")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
