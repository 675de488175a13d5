package artifact

import (
	"fmt"
	"strconv"
	"strings"
)

// LogRotationPolicy models the retention policy installed for the
// application's log files.
type LogRotationPolicy struct {
	PathGlob    string
	Period      string
	RetainCount int
	Compress    bool
	CreateMode  string
	CreateUser  string
	CreateGroup string
}

// StackLogRotation is the fixed policy for the stack's log directory:
// daily rotation, 14 generations, compressed, restrictive permissions.
func StackLogRotation(logsDir string) LogRotationPolicy {
	return LogRotationPolicy{
		PathGlob:    logsDir + "/*.log",
		Period:      "daily",
		RetainCount: 14,
		Compress:    true,
		CreateMode:  "0640",
		CreateUser:  "root",
		CreateGroup: "root",
	}
}

// Render serializes the policy to logrotate's configuration format.
func (p LogRotationPolicy) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s {\n", p.PathGlob)
	fmt.Fprintf(&b, "    %s\n", p.Period)
	fmt.Fprintf(&b, "    rotate %d\n", p.RetainCount)
	if p.Compress {
		b.WriteString("    compress\n")
		b.WriteString("    delaycompress\n")
	}
	b.WriteString("    missingok\n")
	b.WriteString("    notifempty\n")
	fmt.Fprintf(&b, "    create %s %s %s\n", p.CreateMode, p.CreateUser, p.CreateGroup)
	b.WriteString("}\n")
	return b.String()
}

// ParseLogRotationPolicy reads a rendered policy back into its typed form.
func ParseLogRotationPolicy(content string) (LogRotationPolicy, error) {
	var p LogRotationPolicy
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || line == "}":
			continue
		case strings.HasSuffix(line, "{"):
			p.PathGlob = strings.TrimSpace(strings.TrimSuffix(line, "{"))
		case line == "daily" || line == "weekly" || line == "monthly":
			p.Period = line
		case strings.HasPrefix(line, "rotate "):
			n, err := strconv.Atoi(strings.TrimPrefix(line, "rotate "))
			if err != nil {
				return LogRotationPolicy{}, fmt.Errorf("malformed rotate line %q", line)
			}
			p.RetainCount = n
		case line == "compress":
			p.Compress = true
		case strings.HasPrefix(line, "create "):
			fields := strings.Fields(line)
			if len(fields) == 4 {
				p.CreateMode, p.CreateUser, p.CreateGroup = fields[1], fields[2], fields[3]
			}
		}
	}
	if p.PathGlob == "" {
		return LogRotationPolicy{}, fmt.Errorf("no path glob found in policy")
	}
	return p, nil
}
