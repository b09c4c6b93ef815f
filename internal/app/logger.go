package app

import (
	"io"
	"log/slog"
)

// newLogger creates a logger writing to outW. Unknown levels fall back to
// info and any format other than "json" selects text. The global logger is
// left untouched.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	switch formatStr {
	case "json":
		return slog.New(slog.NewJSONHandler(outW, handlerOpts))
	default:
		return slog.New(slog.NewTextHandler(outW, handlerOpts))
	}
}
