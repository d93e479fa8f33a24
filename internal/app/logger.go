package app

import (
	"io"
	"log/slog"
)

// newLogger builds the isolated logger of one App. Unknown levels fall back
// to info; any format other than "json" is text. Every record carries the
// graph path the app was started with.
func newLogger(levelStr, formatStr, graphPath string, outW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, opts)
	} else {
		handler = slog.NewTextHandler(outW, opts)
	}
	return slog.New(handler).With("graph_path", graphPath)
}
