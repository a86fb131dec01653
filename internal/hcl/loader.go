package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL configuration loader that exposes the
// process environment to expressions as `env.<NAME>`.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// WithEnviron replaces the environment source. Used by tests.
func (l *Loader) WithEnviron(environ func() []string) *Loader {
	l.environ = environ
	return l
}

// Load reads and translates a single project file.
func (l *Loader) Load(ctx context.Context, path string) (*config.Project, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return l.Parse(ctx, path, src)
}

// Parse translates HCL source into a project. filename is used for
// diagnostics and recorded as the project's source.
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) (*config.Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "file", filename)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	evalCtx := l.evalContext()

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	project := &config.Project{
		Name:        root.Name,
		Description: root.Description,
		Source:      filename,
	}
	for _, p := range root.Profiles {
		project.Profiles = append(project.Profiles, &config.Profile{
			Name:        p.Name,
			Description: p.Description,
			Tasks:       p.Tasks,
		})
	}
	for _, t := range root.Tasks {
		task, err := translateTask(t, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", filename, err)
		}
		project.Tasks = append(project.Tasks, task)
	}
	for _, e := range root.Extensions {
		opts, err := evalAttributes(e.Body, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("in %s, extension '%s': %w", filename, e.ID, err)
		}
		project.Extensions = append(project.Extensions, &config.Extension{ID: e.ID, Options: opts})
	}

	logger.Debug("HCL loading complete.", "profiles", len(project.Profiles), "tasks", len(project.Tasks), "extensions", len(project.Extensions))
	return project, nil
}

// evalContext exposes the environment and a small function library to
// expressions.
func (l *Loader) evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	if l.environ != nil {
		for _, kv := range l.environ() {
			k, v, ok := strings.Cut(kv, "=")
			if !ok || k == "" {
				continue
			}
			env[k] = cty.StringVal(v)
		}
	}
	envVal := cty.EmptyObjectVal
	if len(env) > 0 {
		envVal = cty.ObjectVal(env)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": envVal},
		Functions: map[string]function.Function{
			"upper":    stdlib.UpperFunc,
			"lower":    stdlib.LowerFunc,
			"join":     stdlib.JoinFunc,
			"split":    stdlib.SplitFunc,
			"concat":   stdlib.ConcatFunc,
			"format":   stdlib.FormatFunc,
			"coalesce": stdlib.CoalesceFunc,
		},
	}
}
