package provision

import (
	"context"
	"fmt"

	"github.com/omario75013/tradingbot-v5/pkg/log"
	"github.com/omario75013/tradingbot-v5/pkg/sysinfo"
)

const (
	minRAMMegabytes   = 4096
	minDiskGigabytes  = 10
	supportedArchHint = "amd64 or arm64"
)

// inspectStep collects read-only host facts. It never mutates state and has
// no failure path: unreadable facts degrade to zero values plus a warning.
type inspectStep struct{}

func (inspectStep) Name() string { return "Host inspection" }

func (inspectStep) Run(_ context.Context, hc *Context) error {
	hc.Facts = sysinfo.Collect("/")

	log.Info("host facts collected",
		"os", hc.Facts.OSName,
		"version", hc.Facts.OSVersion,
		"arch", hc.Facts.Arch,
		"ram_mb", hc.Facts.RAMMegabytes(),
		"disk_free_gb", hc.Facts.DiskFreeGigabytes(),
	)

	if hc.Facts.OSName == "" {
		hc.Warn("could not identify the operating system; assuming a Debian-based host")
	}
	if hc.Facts.RAMBytes > 0 && hc.Facts.RAMMegabytes() < minRAMMegabytes {
		hc.Warn(fmt.Sprintf("host has %d MB RAM, below the recommended %d MB; the ML containers may be OOM-killed", hc.Facts.RAMMegabytes(), minRAMMegabytes))
	}
	if hc.Facts.DiskFree > 0 && hc.Facts.DiskFreeGigabytes() < minDiskGigabytes {
		hc.Warn(fmt.Sprintf("only %d GB free disk space, below the recommended %d GB", hc.Facts.DiskFreeGigabytes(), minDiskGigabytes))
	}
	if hc.Facts.Arch != "amd64" && hc.Facts.Arch != "arm64" {
		hc.Warn(fmt.Sprintf("untested architecture %q, expected %s", hc.Facts.Arch, supportedArchHint))
	}
	return nil
}
