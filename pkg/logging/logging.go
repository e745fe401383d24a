// Package logging configures structured logging with log/slog.
//
// Development setups get colored output via tint; production setups get
// JSON on stdout for log shippers.
//
// Usage:
//
//	logging.Setup(cfg.Env, cfg.SlogLevel())
package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default slog handler for the given environment and level.
func Setup(env string, level slog.Level) {
	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	}
	slog.SetDefault(slog.New(handler))
}
