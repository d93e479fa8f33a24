package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/moviegraph/internal/graph"
	"github.com/specialistvlad/moviegraph/internal/render"
	"github.com/zclconf/go-cty/cty"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath string // .hcl/.yaml documents, a file or a directory
	RootGraph string // may be empty when the documents define one graph

	SequenceName string
	ShotName     string
	ShotIndex    int
	FrameNumber  int
	JobName      string
	Vars         map[string]cty.Value

	OutputFormat string
	OutputPath   string // empty writes to the app's output writer
	MetricsFile  string // node-exporter textfile, empty disables

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "json"
	}
	if !slices.Contains(render.Formats, cfg.OutputFormat) {
		return nil, fmt.Errorf("invalid output format %q: must be one of %v", cfg.OutputFormat, render.Formats)
	}
	if cfg.ShotIndex < 0 || cfg.FrameNumber < 0 {
		return nil, errors.New("shot index and frame number cannot be negative")
	}
	return &cfg, nil
}

// TraversalContext builds the flatten input described by the config.
func (c *Config) TraversalContext() graph.TraversalContext {
	return graph.TraversalContext{
		SequenceName: c.SequenceName,
		ShotName:     c.ShotName,
		ShotIndex:    c.ShotIndex,
		FrameNumber:  c.FrameNumber,
		JobName:      c.JobName,
		Variables:    c.Vars,
	}
}
