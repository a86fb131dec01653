package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/vk/bldrgo/internal/registry"
)

// configFiles are the project file names looked up in the working
// directory, in order of preference.
var configFiles = []string{".bldr.yml", ".bldr.yml.dist", ".bldr.hcl", ".bldr.hcl.dist"}

// NoConfigError is returned when no project file can be found.
type NoConfigError struct {
	Dir string
}

func (e *NoConfigError) Error() string {
	return fmt.Sprintf("no project file found in %s (looked for %s); run 'bldr init' to create one", e.Dir, strings.Join(configFiles, ", "))
}

// LoadError wraps a failure to read or parse the project file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load configuration: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// WorkDir resolves the directory builds run in.
func (a *App) WorkDir() (string, error) {
	dir := a.config.WorkDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return abs, nil
}

// findConfig returns the explicit project file or the first discovered one.
func (a *App) findConfig(workDir string) (string, error) {
	if a.config.ConfigPath != "" {
		path := a.config.ConfigPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		return path, nil
	}
	for _, name := range configFiles {
		path := filepath.Join(workDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to check %s: %w", path, err)
		}
	}
	return "", &NoConfigError{Dir: workDir}
}

// loaderFor selects a loader by file extension, ignoring a `.dist` suffix.
func (a *App) loaderFor(path string) (config.Loader, error) {
	ext := filepath.Ext(strings.TrimSuffix(path, ".dist"))
	loader, ok := a.loaders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported project file format '%s'", ext)
	}
	return loader, nil
}

// LoadProject finds, parses and validates the project file.
func (a *App) LoadProject(ctx context.Context) (*config.Project, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)

	workDir, err := a.WorkDir()
	if err != nil {
		return nil, err
	}
	path, err := a.findConfig(workDir)
	if err != nil {
		return nil, err
	}
	loader, err := a.loaderFor(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	logger.Debug("Loading project file.", "path", path)

	project, err := loader.Load(ctx, path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded and validated.", "project", project.Name, "tasks", len(project.Tasks), "profiles", len(project.Profiles))
	return project, nil
}

// newRegistry registers every module against project and seals the
// registry. Calls whose type cannot be resolved are reported as warnings;
// they only fail the build if they are reached.
func (a *App) newRegistry(ctx context.Context, project *config.Project) (*registry.Registry, error) {
	logger := ctxlog.FromContext(ctx)

	reg := registry.New()
	if err := reg.Load(ctx, project, a.modules...); err != nil {
		return nil, err
	}
	logger.Debug("All Go modules registered.", "count", len(a.modules), "call_types", reg.Len())

	for _, err := range reg.Check(project) {
		logger.Warn("Call type will not resolve.", "error", err)
	}
	return reg, nil
}
