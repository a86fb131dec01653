// Package filesystem provides call types that manipulate paths relative to
// the build's working directory: `remove`, `mkdir` and `touch`.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/vk/bldrgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// ID implements registry.Module.
func (m *Module) ID() string { return "filesystem" }

// Register registers the handlers with the engine.
func (m *Module) Register(r *registry.Registry, _ config.Options) error {
	handlers := map[string]op{
		"remove": remove,
		"mkdir":  mkdir,
		"touch":  touch,
	}
	for _, name := range []string{"remove", "mkdir", "touch"} {
		fn := handlers[name]
		if err := r.Register(name, func() call.Handler { return &Handler{op: fn} }); err != nil {
			return err
		}
	}
	return nil
}

// op applies one operation to an absolute path.
type op func(ctx context.Context, h *Handler, path string) error

// Handler runs its operation over every argument path.
type Handler struct {
	call.Base
	call.Fileset
	op op
}

// Run applies the operation to each argument, then to each fileset match
// when a fileset is configured.
func (h *Handler) Run(ctx context.Context, args []string) call.Outcome {
	out := h.each(ctx, args)
	if len(h.Patterns()) == 0 || (!out.Success && h.Policy.FailOnError) {
		return out
	}
	matched := h.Apply(ctx, h.Session.WorkDir(), h.Policy, nil, h.each)
	if !out.Success {
		matched.Success = false
		matched.Err = errors.Join(out.Err, matched.Err)
	}
	return matched
}

func (h *Handler) each(ctx context.Context, paths []string) call.Outcome {
	var errs []error
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(h.Session.WorkDir(), p)
		}
		if err := h.op(ctx, h, p); err != nil {
			errs = append(errs, err)
			if h.Policy.FailOnError {
				break
			}
		}
	}
	if len(errs) > 0 {
		return call.Fail(errors.Join(errs...))
	}
	return call.OK()
}

func remove(ctx context.Context, h *Handler, path string) error {
	if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
		if h.Policy.FailOnError {
			return fmt.Errorf("cannot remove %s: %w", path, err)
		}
		ctxlog.FromContext(ctx).Warn("Path to remove does not exist.", "path", path)
		return nil
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	h.Section("removed " + path)
	return nil
}

func mkdir(_ context.Context, h *Handler, path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	h.Section("created " + path)
	return nil
}

func touch(_ context.Context, h *Handler, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to touch %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to touch %s: %w", path, err)
	}
	now := time.Now()
	if err := os.Chtimes(path, now, now); err != nil {
		return fmt.Errorf("failed to touch %s: %w", path, err)
	}
	h.Section("touched " + path)
	return nil
}
