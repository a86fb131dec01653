// Package env_vars provides the `require-env` call type, which fails when
// any of the named environment variables is unset or empty.
package env_vars

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// ID implements registry.Module.
func (m *Module) ID() string { return "env" }

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry, _ config.Options) error {
	return r.Register("require-env", func() call.Handler { return &Handler{} })
}

// Handler is the `require-env` call handler.
type Handler struct {
	call.Base
}

// Run checks every argument as a variable name.
func (h *Handler) Run(ctx context.Context, args []string) call.Outcome {
	var missing []string
	for _, name := range args {
		if v, ok := h.Session.LookupEnv(name); !ok || v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return call.Fail(fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", ")))
	}
	h.Section(fmt.Sprintf("%d environment variables present", len(args)))
	return call.OK()
}
