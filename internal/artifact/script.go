package artifact

import (
	"fmt"
	"strings"
)

// ManagementScript models one generated operator command: a standalone shell
// wrapper over the stack's lifecycle primitives. Scripts carry no state of
// their own, so they stay valid across re-provisioning runs.
type ManagementScript struct {
	Name        string
	Description string
	Body        []string
}

// ManagementScripts returns the fixed command set
// {start, stop, restart, logs, status, update, config}.
// Each script body is a minimal composition of systemctl / docker compose /
// git primitives parameterized only by the service name, install dir and
// tracked branch. Every compose invocation pins the project name to the
// service name so the scripts, the supervisor unit and the provisioner all
// address the same containers.
func ManagementScripts(serviceName, installDir, branch string) []ManagementScript {
	compose := "docker compose -p " + serviceName
	return []ManagementScript{
		{
			Name:        serviceName + "-start",
			Description: "Start the container stack",
			Body:        []string{fmt.Sprintf("systemctl start %s.service", serviceName)},
		},
		{
			Name:        serviceName + "-stop",
			Description: "Stop the container stack",
			Body:        []string{fmt.Sprintf("systemctl stop %s.service", serviceName)},
		},
		{
			Name:        serviceName + "-restart",
			Description: "Restart the container stack",
			Body:        []string{fmt.Sprintf("systemctl restart %s.service", serviceName)},
		},
		{
			Name:        serviceName + "-logs",
			Description: "Tail the stack's container logs",
			Body: []string{
				fmt.Sprintf("cd %s", installDir),
				fmt.Sprintf("exec %s logs -f --tail=100", compose),
			},
		},
		{
			Name:        serviceName + "-status",
			Description: "Report supervisor and container status",
			Body: []string{
				fmt.Sprintf("systemctl status %s.service --no-pager || true", serviceName),
				fmt.Sprintf("cd %s", installDir),
				compose + " ps",
			},
		},
		{
			Name:        serviceName + "-update",
			Description: "Sync the working copy, rebuild images and relaunch",
			Body: []string{
				fmt.Sprintf("cd %s", installDir),
				"git fetch origin",
				fmt.Sprintf("git reset --hard origin/%s", branch),
				fmt.Sprintf("%s build --no-cache", compose),
				fmt.Sprintf("systemctl restart %s.service", serviceName),
			},
		},
		{
			Name:        serviceName + "-config",
			Description: "Open the secrets file in the operator's editor",
			Body:        []string{fmt.Sprintf(`exec "${EDITOR:-nano}" %s/.env`, installDir)},
		},
	}
}

// Render serializes the script with a strict-mode shell preamble. `set -e`
// makes composed commands such as update exit non-zero as soon as the
// repository synchronization fails.
func (s ManagementScript) Render() string {
	var b strings.Builder
	b.WriteString("#!/usr/bin/env bash\n")
	fmt.Fprintf(&b, "# %s\n", s.Description)
	b.WriteString("set -euo pipefail\n\n")
	for _, line := range s.Body {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
