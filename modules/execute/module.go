// Package execute provides the process-running call types: `exec` runs one
// command, `apply` runs a command once per fileset match with the matched
// path appended to its arguments.
package execute

import (
	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// ID implements registry.Module.
func (m *Module) ID() string { return "execute" }

// Register registers the handlers with the engine. The extension option
// `shell` overrides the interpreter used for shell commands.
func (m *Module) Register(r *registry.Registry, opts config.Options) error {
	sh, err := opts.Strings("shell")
	if err != nil {
		return err
	}
	if len(sh) == 0 {
		sh = []string{"sh", "-c"}
	}
	if err := r.Register("exec", func() call.Handler { return &ExecHandler{runner: runner{shell: sh}} }); err != nil {
		return err
	}
	return r.Register("apply", func() call.Handler { return &ApplyHandler{ExecHandler: ExecHandler{runner: runner{shell: sh}}} })
}
