package executor

import (
	"context"
	"fmt"

	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
)

// runCall drives one handler through its lifecycle. Everything that goes
// wrong below this point, a panic included, is returned as a failed
// outcome rather than an error.
func (e *Executor) runCall(ctx context.Context, task *config.Task, c *config.Call, factory call.Factory) (out call.Outcome) {
	ctx, logger := ctxlog.With(ctx, "type", c.Type)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Call handler panicked.", "panic", r)
			out = call.Fail(fmt.Errorf("handler for '%s' panicked: %v", c.Type, r))
		}
	}()

	h := factory()
	if h == nil {
		return call.Failf("factory for '%s' returned no handler", c.Type)
	}

	if err := h.Initialize(e.session, task, c); err != nil {
		return call.Fail(fmt.Errorf("failed to initialize '%s': %w", c.Type, err))
	}

	policy := call.PolicyFor(c)
	h.Configure(policy)

	if c.HasFileset() {
		if fs, ok := h.(call.FilesetAware); ok {
			if err := fs.SetFileset(c.Fileset); err != nil {
				return call.Fail(fmt.Errorf("invalid fileset: %w", err))
			}
		} else {
			logger.Debug("Call type does not support filesets; ignoring fileset.", "fileset", c.Fileset)
		}
	}

	args := append([]string(nil), c.Arguments...)
	logger.Debug("Running call.", "arguments", args)
	out = policy.Judge(h.Run(ctx, args))
	logger.Debug("Call finished.", "outcome", out.Describe())
	return out
}
