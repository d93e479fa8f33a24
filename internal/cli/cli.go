package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/moviegraph/internal/app"
	hcldoc "github.com/specialistvlad/moviegraph/internal/hcl"
	"github.com/zclconf/go-cty/cty"
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

// varFlags collects repeated -var name=value flags.
type varFlags map[string]cty.Value

func (v varFlags) String() string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	return strings.Join(names, ",")
}

// Set parses one name=value pair. The value is an HCL literal; anything that
// does not parse as one is taken as a plain string.
func (v varFlags) Set(s string) error {
	name, raw, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	val, err := hcldoc.ParseValue(raw)
	if err != nil {
		val = cty.StringVal(raw)
	}
	v[name] = val
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("moviegraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
moviegraph - Flattens render graphs into per-branch render configurations.

Usage:
  moviegraph [options] [GRAPH_PATH]

Arguments:
  GRAPH_PATH
    Path to a single .hcl/.yaml file or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	graphFlag := flagSet.String("graph", "", "Path to the graph document file or directory.")
	gFlag := flagSet.String("g", "", "Path to the graph document file or directory (shorthand).")
	rootFlag := flagSet.String("root", "", "Name of the graph to flatten. Required when the documents define several graphs.")
	sequenceFlag := flagSet.String("sequence", "", "Sequence name exposed as $sequence_name.")
	shotFlag := flagSet.String("shot", "", "Shot name exposed as $shot_name.")
	shotIndexFlag := flagSet.Int("shot-index", 0, "Shot index exposed as $shot_index.")
	frameFlag := flagSet.Int("frame", 0, "Frame number exposed as $frame_number.")
	jobFlag := flagSet.String("job", "", "Job name exposed as $job_name.")
	vars := varFlags{}
	flagSet.Var(vars, "var", "Override a graph variable, as name=value. May be repeated.")
	formatFlag := flagSet.String("format", "json", "Output format. Options: 'json' or 'hcl'.")
	outFlag := flagSet.String("o", "", "Write the flattened config to this file instead of stdout.")
	metricsFlag := flagSet.String("metrics-file", "", "Write flatten metrics to this node-exporter textfile.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *graphFlag != "" {
		path = *graphFlag
	} else if *gFlag != "" {
		path = *gFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Graph path determined.", "path", path)

	if path == "" {
		slog.Debug("No graph path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		GraphPath:    path,
		RootGraph:    *rootFlag,
		SequenceName: *sequenceFlag,
		ShotName:     *shotFlag,
		ShotIndex:    *shotIndexFlag,
		FrameNumber:  *frameFlag,
		JobName:      *jobFlag,
		Vars:         vars,
		OutputFormat: strings.ToLower(*formatFlag),
		OutputPath:   *outFlag,
		MetricsFile:  *metricsFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
