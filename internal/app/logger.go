package app

import (
	"log/slog"
	"os"
)

// NewLogger returns the application logger. LOG_FORMAT=json selects the JSON
// handler; anything else gets the text handler. Every record carries a
// service attribute so logs from the API, the worker and the seed CLI can be
// told apart once aggregated.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg != nil && cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler).With(slog.String("service", "branchbuddy"))
}
