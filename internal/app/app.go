package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/moviegraph/internal/builder"
	"github.com/specialistvlad/moviegraph/internal/config"
	"github.com/specialistvlad/moviegraph/internal/ctxlog"
	"github.com/specialistvlad/moviegraph/internal/flatten"
	hcldoc "github.com/specialistvlad/moviegraph/internal/hcl"
	"github.com/specialistvlad/moviegraph/internal/registry"
	"github.com/specialistvlad/moviegraph/internal/yamldoc"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	project  *builder.Project
	config   *Config
	metrics  *prometheus.Registry
	engine   *flatten.Engine
}

// DefaultLoaders returns the document loaders for every supported format.
func DefaultLoaders() []config.Loader {
	return []config.Loader{hcldoc.NewLoader(), yamldoc.NewLoader()}
}

// NewApp is the constructor for the main application. Rendered configs go
// to outW and logs to logW. It returns a fully initialized App instance,
// including its own isolated logger and registry, and panics when the
// documents cannot be loaded or built.
func NewApp(outW, logW io.Writer, appConfig *Config, loaders []config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, appConfig.GraphPath, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = DefaultLoaders()
	}
	doc := &config.Document{}
	for _, loader := range loaders {
		loaded, err := loader.Load(ctx, appConfig.GraphPath)
		if err != nil {
			// A failure to load documents is a fatal startup error.
			panic(fmt.Errorf("failed to load documents: %w", err))
		}
		doc.Merge(loaded)
	}
	logger.Debug("Documents loaded and translated into unified model.", "graphs", len(doc.Graphs), "settings", len(doc.Settings))

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.New(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "types", len(reg.Names()))

	project, err := builder.Build(ctx, doc, reg)
	if err != nil {
		panic(fmt.Errorf("failed to build graphs: %w", err))
	}
	logger.Debug("Graphs built.", "graphs", project.Names())

	metrics := prometheus.NewRegistry()
	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		project:  project,
		config:   appConfig,
		metrics:  metrics,
		engine:   flatten.NewEngine(flatten.NewMetrics(metrics)),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Project returns the graphs built at startup.
func (a *App) Project() *builder.Project {
	return a.project
}
