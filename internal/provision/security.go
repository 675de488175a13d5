package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/omario75013/tradingbot-v5/internal/artifact"
	"github.com/omario75013/tradingbot-v5/internal/config"
	"github.com/omario75013/tradingbot-v5/pkg/log"
)

// FirewallRule is one allow-list entry with a human-readable label.
type FirewallRule struct {
	Port     int
	Protocol string
	Label    string
}

// AllowList is the declared inbound rule set. The firewall converges to
// exactly this list every run, on top of deny-inbound/allow-outbound
// defaults.
func AllowList(ports config.Ports) []FirewallRule {
	return []FirewallRule{
		{Port: 22, Protocol: "tcp", Label: "SSH"},
		{Port: ports.Grafana, Protocol: "tcp", Label: "Grafana dashboard"},
		{Port: ports.Metrics, Protocol: "tcp", Label: "Metrics exporter"},
		{Port: ports.Prometheus, Protocol: "tcp", Label: "Prometheus"},
	}
}

// securityStep resets the firewall to the declared allow-list and installs
// the intrusion-ban jail. The wholesale reset is intentional: it guarantees
// convergence regardless of prior drift, and the SSH rule is re-added within
// the same step before the firewall is re-enabled.
type securityStep struct{}

func (securityStep) Name() string { return "Security hardening" }

func (securityStep) Run(ctx context.Context, hc *Context) error {
	if err := configureFirewall(ctx, hc); err != nil {
		return err
	}
	return configureIntrusionBan(ctx, hc)
}

func configureFirewall(ctx context.Context, hc *Context) error {
	steps := [][]string{
		{"--force", "reset"},
		{"default", "deny", "incoming"},
		{"default", "allow", "outgoing"},
	}
	for _, rule := range AllowList(hc.Config.Ports) {
		steps = append(steps, []string{
			"allow", fmt.Sprintf("%d/%s", rule.Port, rule.Protocol), "comment", rule.Label,
		})
	}
	steps = append(steps, []string{"--force", "enable"})

	for _, args := range steps {
		if _, err := hc.Runner.Run(ctx, "", "ufw", args...); err != nil {
			return fmt.Errorf("firewall configuration failed: %w", err)
		}
	}
	log.Info("firewall converged to declared allow-list", "rules", len(AllowList(hc.Config.Ports)))
	return nil
}

func configureIntrusionBan(ctx context.Context, hc *Context) error {
	jail := artifact.SSHJail()

	if err := os.MkdirAll(filepath.Dir(hc.JailPath), 0o755); err != nil {
		return fmt.Errorf("failed to create jail directory: %w", err)
	}
	if err := os.WriteFile(hc.JailPath, []byte(jail.Render()), 0o644); err != nil {
		return fmt.Errorf("failed to write jail %s: %w", hc.JailPath, err)
	}

	// Restart is safe whether or not the service was already running.
	if _, err := hc.Runner.Run(ctx, "", "systemctl", "enable", "fail2ban"); err != nil {
		return fmt.Errorf("failed to enable fail2ban: %w", err)
	}
	if _, err := hc.Runner.Run(ctx, "", "systemctl", "restart", "fail2ban"); err != nil {
		return fmt.Errorf("failed to restart fail2ban: %w", err)
	}
	log.Info("intrusion-ban jail installed", "path", hc.JailPath)
	return nil
}
