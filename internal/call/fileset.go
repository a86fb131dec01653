package call

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/vk/bldrgo/internal/fsutil"
)

// RunFunc performs one invocation with a concrete argument list.
type RunFunc func(ctx context.Context, args []string) Outcome

// Fileset implements FilesetAware. Handlers embed it next to Base and call
// Apply from Run.
type Fileset struct {
	patterns []string
}

// SetFileset implements FilesetAware.
func (f *Fileset) SetFileset(patterns []string) error {
	for _, p := range patterns {
		if p == "" {
			return fmt.Errorf("fileset contains an empty pattern")
		}
	}
	f.patterns = append([]string(nil), patterns...)
	return nil
}

// Patterns returns the configured patterns.
func (f *Fileset) Patterns() []string {
	return f.patterns
}

// Apply runs fn once with args when no fileset is set. Otherwise it expands
// the patterns under root and fans out over the matches.
func (f *Fileset) Apply(ctx context.Context, root string, p Policy, args []string, fn RunFunc) Outcome {
	if len(f.patterns) == 0 {
		return p.Judge(fn(ctx, args))
	}
	files, err := fsutil.ExpandAll(root, f.patterns)
	if err != nil {
		return Fail(fmt.Errorf("failed to expand fileset: %w", err))
	}
	return FanOut(ctx, p, files, args, fn)
}

// FanOut invokes fn once per file with the file appended to args. The
// combined outcome succeeds only when every invocation does. A failing
// invocation stops the remaining files only under FailOnError; otherwise
// every file is attempted and the failures are joined.
func FanOut(ctx context.Context, p Policy, files []string, args []string, fn RunFunc) Outcome {
	logger := ctxlog.FromContext(ctx)
	if len(files) == 0 {
		logger.Warn("Fileset matched no files.")
		return OK()
	}

	combined := Outcome{Success: true, Files: make([]FileOutcome, 0, len(files))}
	var errs []error
	for _, file := range files {
		fileArgs := make([]string, 0, len(args)+1)
		fileArgs = append(fileArgs, args...)
		fileArgs = append(fileArgs, file)

		o := p.Judge(fn(ctx, fileArgs))
		combined.Files = append(combined.Files, FileOutcome{Path: file, Outcome: o})
		if o.Success {
			continue
		}

		combined.Success = false
		errs = append(errs, fmt.Errorf("%s: %s", file, o.Describe()))
		logger.Debug("Fileset invocation failed.", "file", file, "outcome", o.Describe())
		if p.FailOnError {
			break
		}
	}
	combined.Err = errors.Join(errs...)
	return combined
}
