// Package sysinfo collects read-only facts about the host machine.
// Every probe degrades to a zero value instead of failing so callers can
// always render a complete (if partial) picture of the system.
package sysinfo

import (
	"bufio"
	"os"
	"runtime"
	"strconv"
	"strings"
	"syscall"
)

// Facts is an immutable snapshot of the host, taken once per run.
type Facts struct {
	OSName    string
	OSVersion string
	Arch      string
	RAMBytes  uint64
	DiskFree  uint64
}

// Collect gathers all host facts. Probes that cannot be read leave their
// field at the zero value; Collect itself never fails.
func Collect(diskPath string) Facts {
	name, version := readOSRelease("/etc/os-release")
	return Facts{
		OSName:    name,
		OSVersion: version,
		Arch:      runtime.GOARCH,
		RAMBytes:  TotalMemory(),
		DiskFree:  FreeDisk(diskPath),
	}
}

// RAMMegabytes returns the total physical memory in whole megabytes.
func (f Facts) RAMMegabytes() uint64 {
	return f.RAMBytes / (1024 * 1024)
}

// DiskFreeGigabytes returns the free disk space in whole gigabytes.
func (f Facts) DiskFreeGigabytes() uint64 {
	return f.DiskFree / (1024 * 1024 * 1024)
}

// readOSRelease parses the NAME and VERSION_ID fields from an os-release
// style file. Missing file or fields yield empty strings.
func readOSRelease(path string) (name, version string) {
	file, err := os.Open(path)
	if err != nil {
		return "", ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "NAME":
			name = value
		case "VERSION_ID":
			version = value
		}
	}
	return name, version
}

// TotalMemory reads the total physical memory in bytes from /proc/meminfo.
// Returns 0 on non-Linux systems or when the file cannot be parsed.
func TotalMemory() uint64 {
	if runtime.GOOS != "linux" {
		return 0
	}
	value, _ := readMemInfo("/proc/meminfo", "MemTotal")
	return value
}

// readMemInfo parses a /proc/meminfo style file and returns the value of the
// given key in bytes.
func readMemInfo(path, key string) (uint64, bool) {
	file, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, key+":") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			return 0, false
		}
		value, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return 0, false
		}

		// Values are reported in kB unless a unit says otherwise.
		unit := "kB"
		if len(parts) >= 3 {
			unit = parts[2]
		}
		switch unit {
		case "kB":
			return value * 1024, true
		case "MB":
			return value * 1024 * 1024, true
		case "GB":
			return value * 1024 * 1024 * 1024, true
		default:
			return value, true
		}
	}
	return 0, false
}

// FreeDisk returns the number of bytes available to unprivileged users on the
// filesystem containing path. Returns 0 on failure.
func FreeDisk(path string) uint64 {
	var fs syscall.Statfs_t
	if err := syscall.Statfs(path, &fs); err != nil {
		return 0
	}
	return fs.Bavail * uint64(fs.Bsize)
}
