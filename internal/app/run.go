package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/moviegraph/internal/ctxlog"
	"github.com/specialistvlad/moviegraph/internal/render"
)

// Run flattens the root graph for the configured traversal context and
// renders the result.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	root, err := a.project.Root(a.config.RootGraph)
	if err != nil {
		return err
	}
	a.warnDisconnected()

	renderer, err := render.New(a.config.OutputFormat)
	if err != nil {
		return err
	}

	cfg, err := a.engine.Flatten(ctx, root, a.config.TraversalContext())
	if a.config.MetricsFile != "" {
		if werr := prometheus.WriteToTextfile(a.config.MetricsFile, a.metrics); werr != nil {
			a.logger.Error("Failed to write metrics file", "path", a.config.MetricsFile, "error", werr)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to flatten graph %q: %w", root.Name(), err)
	}

	if err := a.write(func(w io.Writer) error { return renderer.Render(w, cfg) }); err != nil {
		return err
	}

	a.logger.Info("Graph flattened.", "graph", root.Name(), "branches", cfg.BranchNames(), "format", a.config.OutputFormat)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// write sends rendered output to the configured file, or to outW.
func (a *App) write(fn func(io.Writer) error) error {
	if a.config.OutputPath == "" {
		return fn(a.outW)
	}
	f, err := os.Create(a.config.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// warnDisconnected reports nodes no output branch can reach. They are
// valid but have no effect.
func (a *App) warnDisconnected() {
	for _, name := range a.project.Names() {
		g, err := a.project.Graph(name)
		if err != nil {
			continue
		}
		for _, n := range g.Disconnected() {
			a.logger.Warn("Node is not connected to any output branch and has no effect", "graph", name, "node", n.String())
		}
	}
}
