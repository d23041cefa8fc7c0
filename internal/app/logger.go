package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the slog.Logger the whole service shares. LOG_FORMAT
// "json" selects the JSON handler for log shippers; anything else gets the
// text handler for local terminals. Both attach source locations.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg != nil && cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
