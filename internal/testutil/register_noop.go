package testutil

import (
	"context"

	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/registry"
)

// NoOpModule registers a single "noop" call type that always succeeds.
// Useful for tests that need a resolvable call but no behavior.
type NoOpModule struct{}

// ID implements registry.Module.
func (m *NoOpModule) ID() string { return "noop" }

// Register implements registry.Module.
func (m *NoOpModule) Register(r *registry.Registry, _ config.Options) error {
	return r.Register("noop", func() call.Handler { return &noopHandler{} })
}

type noopHandler struct {
	call.Base
}

func (h *noopHandler) Run(context.Context, []string) call.Outcome { return call.OK() }
