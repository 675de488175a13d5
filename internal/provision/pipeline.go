package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/omario75013/tradingbot-v5/internal/ui"
	"github.com/omario75013/tradingbot-v5/pkg/log"
)

// Step is one named, independently idempotent stage of the pipeline.
type Step interface {
	Name() string
	Run(ctx context.Context, hc *Context) error
}

// Steps returns the full ordered pipeline. The order is a data structure,
// not incidental code order: network rules come before service start,
// secrets before build, repository state before image build.
func Steps() []Step {
	return []Step{
		inspectStep{},
		dependenciesStep{},
		securityStep{},
		repositoryStep{},
		environmentStep{},
		monitoringStep{},
		serviceStep{},
		managementStep{},
		logrotateStep{},
		launchStep{},
		summaryStep{},
	}
}

// rendersOwnOutput marks steps (the summary) that write their own terminal
// output and must not be wrapped in progress lines.
type rendersOwnOutput interface {
	rendersOwnOutput()
}

// Run executes the pipeline strictly top to bottom. Any fatal error aborts
// the remaining steps outright (fail-fast, no rollback); re-invocation is the
// recovery mechanism and is safe because every step is idempotent. A launch
// failure alone is recorded and reported without aborting: by that point all
// artifacts are written and the host counts as provisioned.
func Run(ctx context.Context, hc *Context, steps []Step) error {
	for _, step := range steps {
		_, selfRendering := step.(rendersOwnOutput)

		log.Info("step started", "step", step.Name())
		if !selfRendering {
			ui.StepStarted(step.Name())
		}

		if err := step.Run(ctx, hc); err != nil {
			if errors.Is(err, ErrLaunch) {
				hc.LaunchErr = err
				ui.Warn(err.Error())
				log.Error("step reported launch failure", "step", step.Name(), "error", err)
				continue
			}
			log.Error("step failed", "step", step.Name(), "error", err)
			return fmt.Errorf("step %q: %w", step.Name(), err)
		}

		if !selfRendering {
			ui.StepDone(step.Name(), "")
		}
		log.Info("step finished", "step", step.Name())
	}
	return nil
}
