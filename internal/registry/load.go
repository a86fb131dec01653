package registry

import (
	"context"
	"fmt"

	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
)

// Module is the interface every extension implements to contribute call
// types.
type Module interface {
	// ID is the identifier used under `extensions` in the project file.
	ID() string
	// Register adds the module's call types. opts holds the settings the
	// project declared for this module, or nil.
	Register(r *Registry, opts config.Options) error
}

// Load registers every module, passing each the extension settings the
// project declares for it, and then seals the registry. An extension entry
// that names no known module is a configuration error.
func (r *Registry) Load(ctx context.Context, project *config.Project, modules ...Module) error {
	logger := ctxlog.FromContext(ctx)

	known := make(map[string]struct{}, len(modules))
	for _, mod := range modules {
		id := mod.ID()
		if _, dup := known[id]; dup {
			return fmt.Errorf("module '%s' is listed more than once", id)
		}
		known[id] = struct{}{}

		var opts config.Options
		if project != nil {
			if ext, ok := project.Extension(id); ok {
				opts = ext.Options
			}
		}

		r.module = id
		err := mod.Register(r, opts)
		r.module = ""
		if err != nil {
			return fmt.Errorf("failed to register module '%s': %w", id, err)
		}
		logger.Debug("Module registered.", "module", id)
	}

	if project != nil {
		var problems []string
		for _, ext := range project.Extensions {
			if _, ok := known[ext.ID]; !ok {
				problems = append(problems, fmt.Sprintf("unknown extension '%s'", ext.ID))
			}
		}
		if len(problems) > 0 {
			return &config.ConfigError{Source: project.Source, Problems: problems}
		}
	}

	r.Seal()
	logger.Debug("Registry sealed.", "call_types", r.Tags())
	return nil
}
