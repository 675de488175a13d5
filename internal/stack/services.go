package stack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/compose-spec/compose-go/v2/cli"

	"github.com/omario75013/tradingbot-v5/pkg/log"
)

// composeFileNames are the file names probed for the stack definition, in
// precedence order.
var composeFileNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// ComposeFile returns the stack definition path inside the project directory,
// or an error when none of the known names exists.
func (s *Stack) ComposeFile() (string, error) {
	for _, name := range composeFileNames {
		path := filepath.Join(s.Dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no compose file found in %s", s.Dir)
}

// Services enumerates the service names declared in the stack definition,
// sorted alphabetically. A parse failure degrades to an empty list so status
// reporting can fall back to the engine's own output.
func (s *Stack) Services(ctx context.Context) []string {
	path, err := s.ComposeFile()
	if err != nil {
		log.Warn("cannot enumerate declared services", "error", err)
		return nil
	}

	opts, err := cli.NewProjectOptions(
		[]string{path},
		cli.WithDotEnv,
		cli.WithInterpolation(false),
		cli.WithName(s.Project),
	)
	if err != nil {
		log.Warn("failed to build compose project options", "path", path, "error", err)
		return nil
	}

	project, err := cli.ProjectFromOptions(ctx, opts)
	if err != nil {
		log.Warn("failed to parse compose file", "path", path, "error", err)
		return nil
	}

	names := make([]string, 0, len(project.Services))
	for name := range project.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
