package provision

import "errors"

// Failure taxonomy of the provisioning pipeline. Steps wrap these sentinels
// with %w so callers can classify without string matching.
var (
	// ErrPrerequisite means the tool was not run as required (privilege
	// level, operating system). Nothing is attempted.
	ErrPrerequisite = errors.New("prerequisite failure")

	// ErrInstallation means a declared dependency is still unsatisfied
	// after its install action ran. Fatal: every later step assumes the
	// dependency is present.
	ErrInstallation = errors.New("installation failure")

	// ErrSync means the repository was unreachable or the tracked ref is
	// missing. Fatal; an existing working copy is left untouched.
	ErrSync = errors.New("sync failure")

	// ErrLaunch means the container engine reported failure on bring-up.
	// Reported, but the host still counts as provisioned: all artifacts
	// were written before launch.
	ErrLaunch = errors.New("launch failure")
)
