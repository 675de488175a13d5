package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/omario75013/tradingbot-v5/internal/envfile"
	"github.com/omario75013/tradingbot-v5/internal/run"
	"github.com/omario75013/tradingbot-v5/internal/ui"
)

var configWizard bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the .env secrets file",
	Long: `config opens the deployment's .env secrets file in $EDITOR. With
--wizard it walks through the required keys interactively instead.

Restart the stack after editing for the new values to take effect.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := requireInstalled(cfg); err != nil {
			return err
		}
		path := cfg.EnvFile()
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("no .env file at %s; run \"tradingbot-deploy provision\" first", path)
		}

		if configWizard {
			if err := runConfigWizard(path); err != nil {
				return err
			}
		} else if err := openInEditor(path); err != nil {
			return err
		}

		pending, err := envfile.Pending(path)
		if err != nil {
			return err
		}
		if len(pending) > 0 {
			ui.Warn("still unconfigured: " + strings.Join(pending, ", "))
			return nil
		}
		ui.Success("All required keys configured. Restart to apply: tradingbot-deploy restart")
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configWizard, "wizard", false, "fill in the required keys interactively")
	rootCmd.AddCommand(configCmd)
}

// openInEditor hands the secrets file to the operator's editor.
func openInEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "nano"
		if !run.NewExecRunner().LookPath(editor) {
			editor = "vi"
		}
	}
	ed := exec.Command(editor, path)
	ed.Stdin = os.Stdin
	ed.Stdout = os.Stdout
	ed.Stderr = os.Stderr
	if err := ed.Run(); err != nil {
		return fmt.Errorf("editor %s failed: %w", editor, err)
	}
	return envfile.TightenPermissions(path)
}

// runConfigWizard prompts for every required key, pre-filled with the current
// value unless it is still the template placeholder.
func runConfigWizard(path string) error {
	current, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	values := make([]string, len(envfile.RequiredKeys))
	fields := make([]huh.Field, 0, len(envfile.RequiredKeys))
	for i, rk := range envfile.RequiredKeys {
		if v, ok := current[rk.Key]; ok && v != rk.Placeholder {
			values[i] = v
		}
		input := huh.NewInput().
			Title(rk.Key).
			Placeholder(rk.Placeholder).
			Value(&values[i])
		if strings.Contains(rk.Key, "KEY") || strings.Contains(rk.Key, "SECRET") || strings.Contains(rk.Key, "TOKEN") {
			input = input.EchoMode(huh.EchoModePassword)
		}
		fields = append(fields, input)
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return fmt.Errorf("wizard aborted: %w", err)
	}

	for i, rk := range envfile.RequiredKeys {
		if values[i] == "" {
			continue
		}
		if err := envfile.Set(path, rk.Key, values[i]); err != nil {
			return err
		}
	}
	return nil
}
