package stack

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"

	"github.com/omario75013/tradingbot-v5/pkg/log"
)

// ServiceStatus describes one container of the stack.
type ServiceStatus struct {
	Service string
	Name    string
	State   State
	Detail  string
}

// State is the normalized container state.
type State string

const (
	StateRunning     State = "running"
	StateStopped     State = "stopped"
	StateRestarting  State = "restarting"
	StateProblematic State = "problematic"
	StateUnknown     State = "unknown"
)

// mapDockerState normalizes the engine's container state strings.
func mapDockerState(state string) State {
	switch strings.ToLower(state) {
	case "running":
		return StateRunning
	case "exited", "stopped", "created":
		return StateStopped
	case "restarting":
		return StateRestarting
	case "dead", "oomkilled", "paused":
		return StateProblematic
	default:
		return StateUnknown
	}
}

// Status lists the stack's containers via the engine API, matched by the
// compose project label.
func (s *Stack) Status(ctx context.Context) ([]ServiceStatus, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	defer cli.Close()

	filterArgs := filters.NewArgs()
	filterArgs.Add("label", fmt.Sprintf("com.docker.compose.project=%s", s.Project))

	containers, err := cli.ContainerList(ctx, container.ListOptions{All: true, Filters: filterArgs})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	statuses := make([]ServiceStatus, 0, len(containers))
	for _, c := range containers {
		name := ""
		if len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}
		statuses = append(statuses, ServiceStatus{
			Service: c.Labels["com.docker.compose.service"],
			Name:    name,
			State:   mapDockerState(c.State),
			Detail:  c.Status,
		})
	}

	log.Debug("stack status retrieved", "project", s.Project, "containers", len(statuses))
	return statuses, nil
}

// AllRunning reports whether every listed container is in the running state
// and at least one container exists.
func AllRunning(statuses []ServiceStatus) bool {
	if len(statuses) == 0 {
		return false
	}
	for _, st := range statuses {
		if st.State != StateRunning {
			return false
		}
	}
	return true
}
