package app

import (
	"io"
	"log/slog"
)

// newLogger builds the logger for one App instance from the resolved
// Config.LogLevel and Config.LogFormat values (flags first, then the HCL
// config file). It never touches the global logger, so tests can run several
// Apps side by side. Empty or unrecognized settings mean info-level text,
// the default for CLI runs.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(outW, handlerOpts))
}
