package execute

import (
	"context"
	"strings"

	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/session"
)

// ExecHandler is the `exec` call handler.
type ExecHandler struct {
	call.Base
	runner   runner
	settings settings
}

// Initialize implements call.Handler and validates the process options.
func (h *ExecHandler) Initialize(s *session.Session, task *config.Task, c *config.Call) error {
	if err := h.Base.Initialize(s, task, c); err != nil {
		return err
	}
	st, err := readSettings(s, c)
	if err != nil {
		return err
	}
	h.settings = st
	return nil
}

// Run executes the arguments as one command.
func (h *ExecHandler) Run(ctx context.Context, args []string) call.Outcome {
	return h.invoke(ctx, args)
}

func (h *ExecHandler) invoke(ctx context.Context, args []string) call.Outcome {
	h.Section(strings.Join(args, " "))
	code, err := h.runner.run(ctx, h.Session, h.settings, args)
	if err != nil {
		return call.StatusErr(code, err)
	}
	return call.Status(code)
}

// ApplyHandler is the `apply` call handler.
type ApplyHandler struct {
	ExecHandler
	call.Fileset
}

// Run executes the command once per fileset match.
func (h *ApplyHandler) Run(ctx context.Context, args []string) call.Outcome {
	return h.Apply(ctx, h.settings.dir, h.Policy, args, h.invoke)
}
