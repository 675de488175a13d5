package artifact

import (
	"fmt"
	"strconv"
	"strings"
)

// Fail2banJail models the intrusion-ban policy for remote-login abuse.
type Fail2banJail struct {
	Name        string
	Enabled     bool
	Port        string
	LogPath     string
	MaxRetry    int
	FindTimeSec int
	BanTimeSec  int
}

// SSHJail is the fixed jail shipped by the provisioner: five failed logins
// within ten minutes earn a one hour ban.
func SSHJail() Fail2banJail {
	return Fail2banJail{
		Name:        "sshd",
		Enabled:     true,
		Port:        "ssh",
		LogPath:     "/var/log/auth.log",
		MaxRetry:    5,
		FindTimeSec: 600,
		BanTimeSec:  3600,
	}
}

// Render serializes the jail to fail2ban's INI format.
func (j Fail2banJail) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", j.Name)
	fmt.Fprintf(&b, "enabled = %t\n", j.Enabled)
	fmt.Fprintf(&b, "port = %s\n", j.Port)
	fmt.Fprintf(&b, "logpath = %s\n", j.LogPath)
	fmt.Fprintf(&b, "maxretry = %d\n", j.MaxRetry)
	fmt.Fprintf(&b, "findtime = %d\n", j.FindTimeSec)
	fmt.Fprintf(&b, "bantime = %d\n", j.BanTimeSec)
	return b.String()
}

// ParseFail2banJail reads a rendered jail back into its typed form.
func ParseFail2banJail(content string) (Fail2banJail, error) {
	var j Fail2banJail
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			j.Name = strings.Trim(line, "[]")
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return Fail2banJail{}, fmt.Errorf("malformed jail line %q", line)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "enabled":
			j.Enabled = value == "true"
		case "port":
			j.Port = value
		case "logpath":
			j.LogPath = value
		case "maxretry":
			j.MaxRetry, _ = strconv.Atoi(value)
		case "findtime":
			j.FindTimeSec, _ = strconv.Atoi(value)
		case "bantime":
			j.BanTimeSec, _ = strconv.Atoi(value)
		}
	}
	if j.Name == "" {
		return Fail2banJail{}, fmt.Errorf("no jail section found")
	}
	return j, nil
}
