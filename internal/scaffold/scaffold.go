package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/vk/bldrgo/internal/session"
)

// Format is the syntax of the generated file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// Options controls generation.
type Options struct {
	Dir         string
	Name        string
	Description string
	Format      Format
	// Dist writes the `.dist` variant of the file.
	Dist bool
	// Overwrite replaces an existing file instead of failing.
	Overwrite   bool
	Interactive bool
	Getenv      func(string) string
}

// Result is a generated file.
type Result struct {
	Path    string
	Content []byte
	Project *config.Project
}

// ExistsError is returned when the target file is already present and
// overwriting was not requested.
type ExistsError struct {
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("you already have a %s file; delete it first or run with the -d flag", filepath.Base(e.Path))
}

// Filename returns the file name for a format.
func Filename(f Format, dist bool) (string, error) {
	var name string
	switch f {
	case FormatYAML, "":
		name = ".bldr.yml"
	case FormatHCL:
		name = ".bldr.hcl"
	default:
		return "", fmt.Errorf("unsupported format '%s'", f)
	}
	if dist {
		name += ".dist"
	}
	return name, nil
}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])|([A-Z])([A-Z][a-z])`)

// DefaultName derives a `<vendor>/<name>` project name from the directory
// name, using the current user as vendor.
func DefaultName(dir string, getenv func(string) string) string {
	name := camelBoundary.ReplaceAllString(filepath.Base(dir), "$1$3-$2$4")
	name = strings.ToLower(name)
	if getenv != nil {
		for _, key := range []string{"USER", "USERNAME"} {
			if user := getenv(key); user != "" {
				return user + "/" + name
			}
		}
	}
	return name + "/" + name
}

// Generate builds the starter project and writes it to opts.Dir.
func Generate(ctx context.Context, opts Options, prompter session.Prompter) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	filename, err := Filename(opts.Format, opts.Dist)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(opts.Dir, filename)

	if _, err := os.Stat(path); err == nil {
		if !opts.Overwrite {
			return nil, &ExistsError{Path: path}
		}
		logger.Debug("Removing existing project file.", "path", path)
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("failed to delete %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to check %s: %w", path, err)
	}

	if opts.Name == "" {
		opts.Name = DefaultName(opts.Dir, opts.Getenv)
	}

	var project *config.Project
	if opts.Interactive {
		project, err = interview(opts, prompter)
		if err != nil {
			return nil, err
		}
	} else {
		project = sample(opts)
	}

	var content []byte
	switch opts.Format {
	case FormatHCL:
		content = encodeHCL(project)
	default:
		content, err = encodeYAML(project)
		if err != nil {
			return nil, err
		}
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Debug("Project file generated.", "path", path, "bytes", len(content))
	return &Result{Path: path, Content: content, Project: project}, nil
}

// sample is the non-interactive starter: one default profile running one
// build task.
func sample(opts Options) *config.Project {
	return &config.Project{
		Name:        opts.Name,
		Description: opts.Description,
		Profiles: []*config.Profile{
			{Name: config.DefaultProfile, Tasks: []string{"build"}},
		},
		Tasks: []*config.Task{{
			Name:        "build",
			Description: "Builds the project",
			Calls: []*config.Call{
				{Type: "exec", Arguments: []string{"echo", "Hello from bldr"}, FailOnError: true},
			},
		}},
	}
}
