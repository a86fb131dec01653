package testutil

import (
	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/registry"
)

// SimpleModule is a test helper that registers a fixed set of call types.
type SimpleModule struct {
	Name     string
	Handlers map[string]call.Factory
	// Options receives the extension settings passed at registration.
	Options config.Options
}

// ID implements registry.Module.
func (m *SimpleModule) ID() string {
	if m.Name == "" {
		return "test"
	}
	return m.Name
}

// Register implements registry.Module.
func (m *SimpleModule) Register(r *registry.Registry, opts config.Options) error {
	m.Options = opts
	for tag, f := range m.Handlers {
		if err := r.Register(tag, f); err != nil {
			return err
		}
	}
	return nil
}
