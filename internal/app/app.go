package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/console"
	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/vk/bldrgo/internal/hcl"
	"github.com/vk/bldrgo/internal/registry"
	"github.com/vk/bldrgo/internal/yamlconf"
)

// Streams are the IO streams owned by the command layer. Out receives
// console output, Err receives logs.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx     context.Context
	config  *Config
	streams Streams
	logger  *slog.Logger
	console *console.Console
	modules []registry.Module
	loaders map[string]config.Loader
	getenv  func(string) string

	health     *healthStatus
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. When no modules
// are given, the core modules are used.
func NewApp(streams Streams, cfg *Config, modules ...registry.Module) *App {
	if streams.Out == nil {
		streams.Out = os.Stdout
	}
	if streams.Err == nil {
		streams.Err = os.Stderr
	}
	if streams.In == nil {
		streams.In = os.Stdin
	}
	if len(modules) == 0 {
		modules = coreModules()
	}

	logger := newLogger(cfg, streams.Err)
	logger.Debug("Logger configured successfully.")

	return &App{
		ctx:     ctxlog.WithLogger(context.Background(), logger),
		config:  cfg,
		streams: streams,
		logger:  logger,
		console: console.New(streams.Out, streams.In, !cfg.NoColor),
		modules: modules,
		loaders: map[string]config.Loader{
			".yml":  yamlconf.NewLoader(),
			".yaml": yamlconf.NewLoader(),
			".hcl":  hcl.NewLoader(),
		},
		getenv: os.Getenv,
		health: newHealthStatus(),
	}
}

// Console returns the console the App renders to.
func (a *App) Console() *console.Console {
	return a.console
}

// withLogger attaches the App's logger to a caller's context.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
