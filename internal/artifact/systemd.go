// Package artifact holds typed models of every generated host artifact
// (systemd unit, logrotate policy, fail2ban jail, management scripts,
// monitoring provisioning documents) together with their serializers.
// All artifacts here are derived: they are overwritten unconditionally on
// every provisioning run and never hand-edited.
package artifact

import (
	"fmt"
	"strings"
)

// SystemdUnit models the process-supervisor unit that manages the whole
// container stack as a single service.
type SystemdUnit struct {
	Description      string
	After            []string
	Requires         []string
	Type             string
	WorkingDirectory string
	ExecStart        string
	ExecStop         string
	ExecReload       string
	Restart          string
	RestartSec       int
	RemainAfterExit  bool
	WantedBy         string
}

// StackUnit builds the unit for the deployed stack: it depends on the
// container engine and network availability and brings the stack up detached
// on boot, pinned to the service's compose project so the supervisor and the
// provisioner always address the same containers. The unit is a oneshot
// bring-up marker and carries no Restart= policy of its own (systemd rejects
// Restart= on oneshot units); keeping crashed containers alive is the
// engine's job through the restart policies declared in the compose file.
func StackUnit(serviceName, installDir string) SystemdUnit {
	compose := "/usr/bin/docker compose -p " + serviceName
	return SystemdUnit{
		Description:      "TradingBot V5 container stack (" + serviceName + ")",
		After:            []string{"docker.service", "network-online.target"},
		Requires:         []string{"docker.service"},
		Type:             "oneshot",
		WorkingDirectory: installDir,
		ExecStart:        compose + " up -d",
		ExecStop:         compose + " down",
		ExecReload:       compose + " restart",
		RemainAfterExit:  true,
		WantedBy:         "multi-user.target",
	}
}

// Render serializes the unit to systemd's INI dialect. Restart= is never
// emitted for oneshot units: systemd refuses to load that combination.
func (u SystemdUnit) Render() string {
	var b strings.Builder

	b.WriteString("[Unit]\n")
	fmt.Fprintf(&b, "Description=%s\n", u.Description)
	if len(u.After) > 0 {
		fmt.Fprintf(&b, "After=%s\n", strings.Join(u.After, " "))
	}
	if len(u.Requires) > 0 {
		fmt.Fprintf(&b, "Requires=%s\n", strings.Join(u.Requires, " "))
	}

	b.WriteString("\n[Service]\n")
	fmt.Fprintf(&b, "Type=%s\n", u.Type)
	if u.RemainAfterExit {
		b.WriteString("RemainAfterExit=yes\n")
	}
	fmt.Fprintf(&b, "WorkingDirectory=%s\n", u.WorkingDirectory)
	fmt.Fprintf(&b, "ExecStart=%s\n", u.ExecStart)
	fmt.Fprintf(&b, "ExecStop=%s\n", u.ExecStop)
	if u.ExecReload != "" {
		fmt.Fprintf(&b, "ExecReload=%s\n", u.ExecReload)
	}
	if u.Restart != "" && u.Type != "oneshot" {
		fmt.Fprintf(&b, "Restart=%s\n", u.Restart)
		if u.RestartSec > 0 {
			fmt.Fprintf(&b, "RestartSec=%d\n", u.RestartSec)
		}
	}

	b.WriteString("\n[Install]\n")
	fmt.Fprintf(&b, "WantedBy=%s\n", u.WantedBy)

	return b.String()
}

// ParseSystemdUnit reads a rendered unit back into its typed form. Only the
// fields Render emits are understood.
func ParseSystemdUnit(content string) (SystemdUnit, error) {
	var u SystemdUnit
	section := ""
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.Trim(line, "[]")
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return SystemdUnit{}, fmt.Errorf("malformed unit line %q", line)
		}
		switch section + "." + key {
		case "Unit.Description":
			u.Description = value
		case "Unit.After":
			u.After = strings.Fields(value)
		case "Unit.Requires":
			u.Requires = strings.Fields(value)
		case "Service.Type":
			u.Type = value
		case "Service.WorkingDirectory":
			u.WorkingDirectory = value
		case "Service.ExecStart":
			u.ExecStart = value
		case "Service.ExecStop":
			u.ExecStop = value
		case "Service.ExecReload":
			u.ExecReload = value
		case "Service.Restart":
			u.Restart = value
		case "Service.RestartSec":
			fmt.Sscanf(value, "%d", &u.RestartSec)
		case "Service.RemainAfterExit":
			u.RemainAfterExit = value == "yes"
		case "Install.WantedBy":
			u.WantedBy = value
		}
	}
	return u, nil
}
