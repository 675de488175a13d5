package run

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var errNotYetAvailable = errors.New("command not available")

// RecordingRunner is a Runner fake for tests: it records every invocation and
// answers from configured canned results instead of touching the host.
type RecordingRunner struct {
	mu sync.Mutex

	// Calls holds every executed command line, rendered as a single string.
	Calls []string
	// Outputs maps a command-line prefix to the output to return.
	Outputs map[string]string
	// Errors maps a command-line prefix to the error to return.
	Errors map[string]error
	// FailFirst maps a command-line prefix to a number of initial
	// invocations that fail before the command starts succeeding. Used to
	// model "missing until installed" probes.
	FailFirst map[string]int
	// Present lists executables LookPath reports as available.
	Present map[string]bool
}

var _ Runner = (*RecordingRunner)(nil)

// NewRecordingRunner returns an empty fake where every command succeeds and
// every executable is missing until configured otherwise.
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{
		Outputs:   map[string]string{},
		Errors:    map[string]error{},
		FailFirst: map[string]int{},
		Present:   map[string]bool{},
	}
}

func (r *RecordingRunner) record(name string, args []string) string {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	r.mu.Lock()
	r.Calls = append(r.Calls, line)
	r.mu.Unlock()
	return line
}

func (r *RecordingRunner) lookup(line string) (string, error) {
	r.mu.Lock()
	for prefix, remaining := range r.FailFirst {
		if strings.HasPrefix(line, prefix) && remaining > 0 {
			r.FailFirst[prefix] = remaining - 1
			r.mu.Unlock()
			return "", errNotYetAvailable
		}
	}
	r.mu.Unlock()

	for prefix, err := range r.Errors {
		if strings.HasPrefix(line, prefix) {
			return r.Outputs[prefix], err
		}
	}
	for prefix, out := range r.Outputs {
		if strings.HasPrefix(line, prefix) {
			return out, nil
		}
	}
	return "", nil
}

func (r *RecordingRunner) Run(_ context.Context, _ string, name string, args ...string) (string, error) {
	return r.lookup(r.record(name, args))
}

func (r *RecordingRunner) RunStreaming(_ context.Context, _ string, name string, args ...string) error {
	_, err := r.lookup(r.record(name, args))
	return err
}

func (r *RecordingRunner) LookPath(name string) bool {
	return r.Present[name]
}

// CalledWith reports whether any recorded command line starts with prefix.
func (r *RecordingRunner) CalledWith(prefix string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range r.Calls {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
