// Package print provides the `print` call type, which writes each of its
// arguments as a progress line attributed to the running task.
package print

import (
	"context"

	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/vk/bldrgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// ID implements registry.Module.
func (m *Module) ID() string { return "print" }

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry, _ config.Options) error {
	return r.Register("print", func() call.Handler { return &Handler{} })
}

// Handler is the `print` call handler.
type Handler struct {
	call.Base
}

// Run writes every argument. With no arguments it writes the option
// `message`, or "(null)" when that is missing too.
func (h *Handler) Run(ctx context.Context, args []string) call.Outcome {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Printing arguments.", "count", len(args))

	if len(args) == 0 {
		msg, err := h.Options().String("message", "(null)")
		if err != nil {
			return call.Fail(err)
		}
		args = []string{msg}
	}
	for _, a := range args {
		h.Section(a)
	}
	return call.OK()
}
