package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/bldrgo/internal/app"
	"github.com/vk/bldrgo/internal/cli"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/scaffold"
)

// main is the entrypoint for the bldr application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	// The real main function handles errors and exit codes.
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, inR io.Reader, outW, errW io.Writer, args []string) (err error) {
	inv, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// A panic outside the call handlers is a bug; report it as an error
	// instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = &cli.ExitError{Code: 1, Message: fmt.Sprintf("application startup panicked: %v", r)}
		}
	}()

	a := app.NewApp(app.Streams{In: inR, Out: outW, Err: errW}, inv.Config)

	switch inv.Command {
	case cli.CmdBuild:
		outcome, err := a.Build(ctx, inv.Build)
		if err != nil {
			return exitError(err)
		}
		if !outcome.Succeeded() {
			return &cli.ExitError{Code: outcome.ExitCode()}
		}
		return nil
	case cli.CmdInit:
		return exitError(a.Init(ctx, inv.Init))
	case cli.CmdTaskList:
		return exitError(a.ListTasks(ctx))
	case cli.CmdTaskInfo:
		return exitError(a.TaskInfo(ctx, inv.Task))
	}
	return &cli.ExitError{Code: 2, Message: fmt.Sprintf("unsupported command '%s'", inv.Command)}
}

// exitError maps an application error to the process exit code: problems
// with the invocation or the project file exit with 2, everything else
// with 1.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	var (
		cfgErr     *config.ConfigError
		profileErr *config.UnknownProfileError
		taskErr    *config.UnknownTaskError
		noConfig   *app.NoConfigError
		loadErr    *app.LoadError
		existsErr  *scaffold.ExistsError
	)
	switch {
	case errors.As(err, &cfgErr),
		errors.As(err, &profileErr),
		errors.As(err, &taskErr),
		errors.As(err, &noConfig),
		errors.As(err, &loadErr),
		errors.As(err, &existsErr):
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	return &cli.ExitError{Code: 1, Message: err.Error()}
}
