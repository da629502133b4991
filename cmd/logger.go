package cmd

import (
	"io"
	"log/slog"

	"github.com/labstack/gommon/log"
)

// NewLogger builds the process logger from the log settings.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// EchoLogLevel maps the configured level onto echo's logger.
func EchoLogLevel(cfg Config) log.Lvl {
	switch level := cfg.SlogLevel(); {
	case level <= slog.LevelDebug:
		return log.DEBUG
	case level <= slog.LevelInfo:
		return log.INFO
	case level <= slog.LevelWarn:
		return log.WARN
	default:
		return log.ERROR
	}
}
