package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/omario75013/tradingbot-v5/internal/run"
	"github.com/omario75013/tradingbot-v5/internal/stack"
	"github.com/omario75013/tradingbot-v5/internal/ui"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the container stack",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := requireInstalled(cfg); err != nil {
			return err
		}
		runner := run.NewExecRunner()
		if _, err := runner.Run(cmd.Context(), "", "systemctl", "start", cfg.ServiceName+".service"); err != nil {
			return err
		}
		ui.Success("Stack started.")
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the container stack",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := requireInstalled(cfg); err != nil {
			return err
		}
		// Without a registered unit (partially provisioned host) fall back
		// to taking the compose project down directly.
		if _, err := os.Stat(cfg.UnitPath()); err != nil {
			ui.Warn("no supervisor unit registered, taking the compose project down directly")
			if err := newStack(cfg).Down(cmd.Context()); err != nil {
				return err
			}
			ui.Success("Stack stopped.")
			return nil
		}
		runner := run.NewExecRunner()
		if _, err := runner.Run(cmd.Context(), "", "systemctl", "stop", cfg.ServiceName+".service"); err != nil {
			return err
		}
		ui.Success("Stack stopped.")
		return nil
	},
}

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the container stack",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := requireInstalled(cfg); err != nil {
			return err
		}
		runner := run.NewExecRunner()
		if _, err := runner.Run(cmd.Context(), "", "systemctl", "restart", cfg.ServiceName+".service"); err != nil {
			return err
		}
		ui.Success("Stack restarted.")
		return nil
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Tail the stack's container logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := requireInstalled(cfg); err != nil {
			return err
		}
		return newStack(cfg).Logs(cmd.Context(), 100)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report the state of every stack container",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := requireInstalled(cfg); err != nil {
			return err
		}
		s := newStack(cfg)

		declared := s.Services(cmd.Context())
		statuses, err := s.Status(cmd.Context())
		if err != nil {
			// The engine API may be unreachable; fall back to the
			// engine CLI's own table.
			out, psErr := s.PS(cmd.Context())
			if psErr != nil {
				return fmt.Errorf("status query failed: %w", err)
			}
			fmt.Print(out)
			return nil
		}

		byService := map[string]stack.ServiceStatus{}
		for _, st := range statuses {
			byService[st.Service] = st
		}

		ui.Title("Stack status")
		if len(declared) == 0 {
			for _, st := range statuses {
				ui.KeyValue(st.Service, fmt.Sprintf("%s (%s)", st.State, st.Detail))
			}
		} else {
			for _, name := range declared {
				if st, ok := byService[name]; ok {
					ui.KeyValue(name, fmt.Sprintf("%s (%s)", st.State, st.Detail))
				} else {
					ui.KeyValue(name, "not created")
				}
			}
		}

		if stack.AllRunning(statuses) {
			ui.Success("All services running.")
		} else {
			ui.Warn("not all declared services are running")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd, stopCmd, restartCmd, logsCmd, statusCmd)
}
