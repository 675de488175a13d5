package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// defaultInstallDir is the fixed path the application stack is deployed to.
	defaultInstallDir = "/opt/tradingbot-v5"
	// defaultRepoURL is the upstream source of truth for the working copy.
	defaultRepoURL = "https://github.com/omario75013/tradingbot-v5.git"
	// defaultBranch is the tracked ref the working copy is hard-reset to.
	defaultBranch = "main"
	// defaultServiceName is the systemd unit and compose project name.
	defaultServiceName = "tradingbot"
	// defaultBinDir is where the generated management commands are installed.
	defaultBinDir = "/usr/local/bin"
	// defaultSettleSeconds is how long to wait after bring-up before the
	// container status is sampled.
	defaultSettleSeconds = 10
)

// Ports lists the externally reachable endpoints of the stack. SSH is not
// listed here: administrative access is always port 22 and always allowed.
type Ports struct {
	Grafana    int `mapstructure:"grafana"`
	Metrics    int `mapstructure:"metrics"`
	Prometheus int `mapstructure:"prometheus"`
}

// Config holds all settings of the deploy tool. Every field has a compiled
// default; an optional YAML file overrides individual fields.
type Config struct {
	InstallDir    string `mapstructure:"install_dir"`
	RepoURL       string `mapstructure:"repo_url"`
	Branch        string `mapstructure:"branch"`
	ServiceName   string `mapstructure:"service_name"`
	BinDir        string `mapstructure:"bin_dir"`
	LogLevel      string `mapstructure:"log_level"`
	SettleSeconds int    `mapstructure:"settle_seconds"`
	Ports         Ports  `mapstructure:"ports"`
}

// Load reads the optional settings file and applies defaults. An absent file
// is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("install_dir", defaultInstallDir)
	v.SetDefault("repo_url", defaultRepoURL)
	v.SetDefault("branch", defaultBranch)
	v.SetDefault("service_name", defaultServiceName)
	v.SetDefault("bin_dir", defaultBinDir)
	v.SetDefault("log_level", "info")
	v.SetDefault("settle_seconds", defaultSettleSeconds)
	v.SetDefault("ports.grafana", 3000)
	v.SetDefault("ports.metrics", 8000)
	v.SetDefault("ports.prometheus", 9090)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &cfg, nil
}

// EnvFile returns the path of the operator-owned secrets file.
func (c *Config) EnvFile() string {
	return filepath.Join(c.InstallDir, ".env")
}

// EnvTemplate returns the path of the tracked secrets template.
func (c *Config) EnvTemplate() string {
	return filepath.Join(c.InstallDir, ".env.example")
}

// LogsDir returns the application log directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.InstallDir, "logs")
}

// DataDirs returns every directory the stack expects to exist, relative
// creation order first.
func (c *Config) DataDirs() []string {
	return []string{
		c.LogsDir(),
		filepath.Join(c.InstallDir, "data"),
		filepath.Join(c.InstallDir, "models", "active"),
		filepath.Join(c.InstallDir, "models", "archive"),
		filepath.Join(c.InstallDir, "monitoring", "grafana", "provisioning", "datasources"),
		filepath.Join(c.InstallDir, "monitoring", "grafana", "provisioning", "dashboards"),
	}
}

// UnitPath returns the systemd unit file location.
func (c *Config) UnitPath() string {
	return fmt.Sprintf("/etc/systemd/system/%s.service", c.ServiceName)
}
