package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/oribarilan/plz/internal/ctxlog"
	"github.com/oribarilan/plz/internal/envfile"
	"github.com/oribarilan/plz/internal/registry"
	"github.com/oribarilan/plz/internal/shell"
	"github.com/oribarilan/plz/internal/task"
	"github.com/oribarilan/plz/internal/taskfile"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	shell    shell.Runner
	config   *Config

	// dotenv holds the values loaded from the .env file, kept for the
	// environment listings.
	dotenv map[string]string
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry: the
// .env file applied, builtins registered, the plzfile loaded, and the
// dependency graph validated.
func NewApp(outW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	dotenv, err := envfile.Load(cfg.EnvFile)
	if err != nil {
		return nil, err
	}
	logger.Debug("Environment file processed.", "path", cfg.EnvFile, "keys", len(dotenv))

	a := &App{
		outW:     outW,
		logger:   logger,
		registry: registry.New(),
		shell:    shell.NewExecutor(outW, cfg.DryRun),
		config:   cfg,
		dotenv:   dotenv,
	}
	a.registerBuiltins()

	if _, err := os.Stat(cfg.Taskfile); err == nil {
		loader := taskfile.NewLoader(a.shell)
		if err := loader.Load(ctx, cfg.Taskfile, a.registry); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		logger.Warn("No plzfile found.", "path", cfg.Taskfile)
	} else {
		return nil, fmt.Errorf("accessing plzfile %s: %w", cfg.Taskfile, err)
	}

	if err := a.registry.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.", "tasks", a.registry.Len())

	return a, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// registerBuiltins adds the framework-provided tasks. Builtins are excluded
// from the "no tasks registered" detection.
func (a *App) registerBuiltins() {
	a.registry.AddBuiltin("list", "List all available tasks", func(ctx context.Context, inv *task.Invocation) (any, error) {
		a.listTasks()
		return nil, nil
	})
	a.registry.AddBuiltin("env", "Print environment variables", func(ctx context.Context, inv *task.Invocation) (any, error) {
		a.printEnv(nil, true)
		return nil, nil
	})
}
