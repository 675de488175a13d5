// Package envfile owns the contract of the operator-edited .env secrets file:
// which keys are required, what their template placeholders look like, and
// whether the file counts as configured.
package envfile

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// RequiredKey pairs a mandatory .env key with the placeholder value the
// template ships it with.
type RequiredKey struct {
	Key         string
	Placeholder string
}

// RequiredKeys is the fixed set of keys that must be filled in before the
// stack is allowed to start. PAPER_TRADING and INITIAL_CAPITAL ship with
// usable defaults and therefore never block a launch on their own.
var RequiredKeys = []RequiredKey{
	{Key: "ANTHROPIC_API_KEY", Placeholder: "your_anthropic_api_key_here"},
	{Key: "BINANCE_API_KEY", Placeholder: "your_binance_api_key_here"},
	{Key: "BINANCE_API_SECRET", Placeholder: "your_binance_api_secret_here"},
	{Key: "TELEGRAM_BOT_TOKEN", Placeholder: "your_telegram_bot_token_here"},
	{Key: "TELEGRAM_CHAT_ID", Placeholder: "your_telegram_chat_id_here"},
}

// Pending returns the required keys that still hold their template
// placeholder (or are missing entirely) in the given .env file.
func Pending(path string) ([]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	var pending []string
	for _, rk := range RequiredKeys {
		value, ok := vars[rk.Key]
		if !ok || value == "" || value == rk.Placeholder {
			pending = append(pending, rk.Key)
		}
	}
	return pending, nil
}

// Configured reports whether no required key still holds its placeholder.
func Configured(path string) (bool, error) {
	pending, err := Pending(path)
	if err != nil {
		return false, err
	}
	return len(pending) == 0, nil
}

// Materialize creates the .env file from the template when it does not exist
// yet. An existing file is never touched, whatever its content: operator
// edits survive re-provisioning. Returns true when the file was created.
func Materialize(path, templatePath string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat env file %s: %w", path, err)
	}

	template, err := os.ReadFile(templatePath)
	if os.IsNotExist(err) {
		// Repos without a tracked template fall back to the embedded one.
		template = []byte(Template)
	} else if err != nil {
		return false, fmt.Errorf("failed to read env template %s: %w", templatePath, err)
	}

	if err := os.WriteFile(path, template, 0o600); err != nil {
		return false, fmt.Errorf("failed to create env file %s: %w", path, err)
	}
	return true, nil
}

// TightenPermissions forces owner-only access on the secrets file, every run,
// regardless of prior state.
func TightenPermissions(path string) error {
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to tighten permissions on %s: %w", path, err)
	}
	return nil
}

// Set updates a single key in the .env file, preserving every other entry.
// Used by the interactive configuration wizard.
func Set(path, key, value string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	vars[key] = value
	if err := godotenv.Write(vars, path); err != nil {
		return fmt.Errorf("failed to write env file %s: %w", path, err)
	}
	return TightenPermissions(path)
}
