package provision

import (
	"fmt"
	"os"
	"runtime"

	"github.com/omario75013/tradingbot-v5/internal/config"
	"github.com/omario75013/tradingbot-v5/internal/run"
	"github.com/omario75013/tradingbot-v5/internal/stack"
	"github.com/omario75013/tradingbot-v5/pkg/log"
	"github.com/omario75013/tradingbot-v5/pkg/sysinfo"
)

// LaunchState is the terminal state of the build-and-launch step.
type LaunchState string

const (
	// LaunchPending means the launch step has not run yet.
	LaunchPending LaunchState = ""
	// LaunchAwaitingConfiguration means the stack was built but not
	// started because required secrets still hold placeholders.
	LaunchAwaitingConfiguration LaunchState = "awaiting-configuration"
	// LaunchStarted means the stack was brought up.
	LaunchStarted LaunchState = "started"
)

// Context is the explicit host context threaded through every step. Steps
// read their preconditions from it and record their postconditions on it;
// nothing reaches for ambient global state. Artifact paths default to the
// real system locations and are overridden by tests.
type Context struct {
	Config *config.Config
	Runner run.Runner
	Stack  *stack.Stack

	// Artifact destinations, derived but overridable.
	UnitPath      string
	JailPath      string
	LogrotatePath string
	BinDir        string

	// Facts collected by the inspection step.
	Facts sysinfo.Facts

	// Postconditions accumulated across the run.
	Warnings   []string
	EnvCreated bool
	Launch     LaunchState
	Pending    []string
	Statuses   []stack.ServiceStatus
	LaunchErr  error
}

// NewContext builds the host context for a real provisioning run.
func NewContext(cfg *config.Config, runner run.Runner) *Context {
	return &Context{
		Config:        cfg,
		Runner:        runner,
		Stack:         stack.New(cfg.InstallDir, cfg.ServiceName, runner),
		UnitPath:      cfg.UnitPath(),
		JailPath:      "/etc/fail2ban/jail.d/" + cfg.ServiceName + ".local",
		LogrotatePath: "/etc/logrotate.d/" + cfg.ServiceName,
		BinDir:        cfg.BinDir,
	}
}

// Warn records a non-fatal warning and logs it.
func (c *Context) Warn(msg string, args ...any) {
	log.Warn(msg, args...)
	c.Warnings = append(c.Warnings, msg)
}

// CheckPrerequisites verifies the run environment before any host mutation:
// Linux only, root only.
func CheckPrerequisites() error {
	if runtime.GOOS != "linux" {
		return fmt.Errorf("%w: this tool only supports Linux hosts", ErrPrerequisite)
	}
	if os.Geteuid() != 0 {
		return fmt.Errorf("%w: provisioning mutates system state and must run as root", ErrPrerequisite)
	}
	return nil
}
