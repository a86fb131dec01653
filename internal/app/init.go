package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/bldrgo/internal/console"
	"github.com/vk/bldrgo/internal/scaffold"
)

// Init generates a starter project file in the working directory.
func (a *App) Init(ctx context.Context, opts scaffold.Options) error {
	ctx = a.withLogger(ctx)

	workDir, err := a.WorkDir()
	if err != nil {
		return err
	}
	opts.Dir = workDir
	if opts.Getenv == nil {
		opts.Getenv = a.getenv
	}

	if opts.Interactive {
		a.console.Block(console.BlockInfo, "Welcome to the bldr config generator")
		a.console.Line("Attempting to create a project file for you. Follow along!")
	}

	res, err := scaffold.Generate(ctx, opts, a.console)
	if err != nil {
		return err
	}
	a.console.Line("")
	a.console.Line(fmt.Sprintf("%s file generated.", filepath.Base(res.Path)))
	a.console.Line("")
	a.console.Line(string(res.Content))
	return nil
}
