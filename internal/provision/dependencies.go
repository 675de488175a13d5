package provision

import (
	"context"
	"fmt"

	"github.com/omario75013/tradingbot-v5/pkg/log"
)

// Dependency is one host requirement: a side-effect-free presence check and
// the action that satisfies it. The action only ever runs when the check
// fails, and the check is re-run afterwards to verify.
type Dependency struct {
	Name    string
	Check   func(ctx context.Context, hc *Context) bool
	Install func(ctx context.Context, hc *Context) error
}

// aptPackages are the base system packages installed through apt.
var aptPackages = []string{"git", "curl", "ca-certificates", "ufw", "fail2ban", "logrotate"}

// dependencies returns the fixed ordered dependency list: system packages
// first, then the container engine, then its compose plugin.
func dependencies() []Dependency {
	deps := make([]Dependency, 0, len(aptPackages)+2)

	for _, pkg := range aptPackages {
		deps = append(deps, Dependency{
			Name: pkg,
			Check: func(ctx context.Context, hc *Context) bool {
				_, err := hc.Runner.Run(ctx, "", "dpkg", "-s", pkg)
				return err == nil
			},
			Install: func(ctx context.Context, hc *Context) error {
				return hc.Runner.RunStreaming(ctx, "", "apt-get", "install", "-y", pkg)
			},
		})
	}

	deps = append(deps, Dependency{
		Name: "docker",
		Check: func(ctx context.Context, hc *Context) bool {
			_, err := hc.Runner.Run(ctx, "", "docker", "--version")
			return err == nil
		},
		Install: func(ctx context.Context, hc *Context) error {
			// Docker's convenience script handles every supported distro
			// and architecture in one place.
			return hc.Runner.RunStreaming(ctx, "", "sh", "-c", "curl -fsSL https://get.docker.com | sh")
		},
	})

	deps = append(deps, Dependency{
		Name: "docker compose plugin",
		Check: func(ctx context.Context, hc *Context) bool {
			_, err := hc.Runner.Run(ctx, "", "docker", "compose", "version")
			return err == nil
		},
		Install: func(ctx context.Context, hc *Context) error {
			return hc.Runner.RunStreaming(ctx, "", "apt-get", "install", "-y", "docker-compose-plugin")
		},
	})

	return deps
}

// dependenciesStep ensures every declared dependency is present. Satisfied
// checks short-circuit the install; a dependency still missing after its
// install action is the one error class that stops the whole orchestration.
type dependenciesStep struct{}

func (dependenciesStep) Name() string { return "Dependency installation" }

func (dependenciesStep) Run(ctx context.Context, hc *Context) error {
	aptUpdated := false

	for _, dep := range dependencies() {
		if dep.Check(ctx, hc) {
			log.Info("dependency already present", "dependency", dep.Name)
			continue
		}

		// Refresh package lists once, before the first real install.
		if !aptUpdated {
			if err := hc.Runner.RunStreaming(ctx, "", "apt-get", "update"); err != nil {
				return fmt.Errorf("%w: apt-get update failed: %v", ErrInstallation, err)
			}
			aptUpdated = true
		}

		log.Info("installing dependency", "dependency", dep.Name)
		if err := dep.Install(ctx, hc); err != nil {
			return fmt.Errorf("%w: installing %s: %v", ErrInstallation, dep.Name, err)
		}

		if !dep.Check(ctx, hc) {
			return fmt.Errorf("%w: %s still missing after installation", ErrInstallation, dep.Name)
		}
		log.Info("dependency installed", "dependency", dep.Name)
	}
	return nil
}
