package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/vk/bldrgo/internal/app"
	"github.com/vk/bldrgo/internal/scaffold"
)

// Version is reported by --version. Overridden at link time.
var Version = "dev"

// Command names returned by Parse.
const (
	CmdBuild    = "build"
	CmdInit     = "init"
	CmdTaskList = "task list"
	CmdTaskInfo = "task info"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Invocation is one parsed command line.
type Invocation struct {
	Command string
	Config  *app.Config
	Build   app.BuildRequest
	Init    scaffold.Options
	Task    string
}

// exitSignal unwinds kong's Exit hook (help, version) back into Parse.
type exitSignal struct {
	code int
}

// Parse processes command-line arguments. It returns the invocation, a
// boolean indicating if the program should exit cleanly (help or version
// was printed), or an ExitError.
func Parse(args []string, output io.Writer) (inv *Invocation, shouldExit bool, err error) {
	slog.Debug("CLI parser started.")
	var g grammar
	parser, err := kong.New(&g,
		kong.Name("bldr"),
		kong.Description("A declarative build and task runner."),
		kong.Writers(output, output),
		kong.Vars{"version": Version},
		kong.Exit(func(code int) { panic(exitSignal{code: code}) }),
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build CLI parser: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(exitSignal)
			if !ok {
				panic(r)
			}
			if sig.code != 0 {
				inv, shouldExit, err = nil, false, &ExitError{Code: sig.code, Message: "usage error"}
				return
			}
			inv, shouldExit, err = nil, true, nil
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.", "command", kctx.Command())

	cfg, err := app.NewConfig(app.Config{
		ConfigPath:      g.Config,
		WorkDir:         g.Workdir,
		LogLevel:        g.LogLevel,
		LogFormat:       g.LogFormat,
		NoColor:         g.NoColor,
		HealthcheckPort: g.HealthcheckPort,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	inv = &Invocation{Config: cfg}
	switch kctx.Command() {
	case "build":
		inv.Command = CmdBuild
		inv.Build = app.BuildRequest{Profile: g.Build.Profile, Tasks: nonEmpty(g.Build.Tasks)}
	case "init":
		inv.Command = CmdInit
		inv.Init = scaffold.Options{
			Name:        g.Init.Name,
			Description: g.Init.Description,
			Format:      scaffold.Format(g.Init.Format),
			Dist:        g.Init.Dist,
			Overwrite:   g.Init.Delete,
			Interactive: g.Init.Interactive,
		}
	case "task list":
		inv.Command = CmdTaskList
	case "task info <name>":
		inv.Command = CmdTaskInfo
		inv.Task = g.Task.Info.Name
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unsupported command '%s'", kctx.Command())}
	}

	slog.Debug("CLI parser finished successfully.", "command", inv.Command)
	return inv, false, nil
}

// nonEmpty drops blank entries left by inputs such as `--tasks=a,,b`.
func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
