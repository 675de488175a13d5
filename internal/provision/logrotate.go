package provision

import (
	"context"

	"github.com/omario75013/tradingbot-v5/internal/artifact"
	"github.com/omario75013/tradingbot-v5/pkg/log"
)

// logrotateStep installs the log retention policy. Derived artifact,
// idempotent overwrite.
type logrotateStep struct{}

func (logrotateStep) Name() string { return "Log rotation policy" }

func (logrotateStep) Run(_ context.Context, hc *Context) error {
	policy := artifact.StackLogRotation(hc.Config.LogsDir())
	if err := writeDerived(hc.LogrotatePath, []byte(policy.Render()), 0o644); err != nil {
		return err
	}
	log.Info("log rotation policy installed", "path", hc.LogrotatePath, "glob", policy.PathGlob)
	return nil
}
