package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"

	"github.com/rmitchellscott/WxCraft/internal/config"
)

// New builds the process logger. Dev builds get tint output that follows the
// same color switch as the decoded report; released versions log JSON with
// the build and environment attached.
func New(w io.Writer, cfg config.Config, version string, appName string) *slog.Logger {
	if version == "dev" {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      cfg.LogLevel,
			AddSource:  cfg.Debug,
			TimeFormat: time.Kitchen,
			NoColor:    color.NoColor,
		})).With("app", appName)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     cfg.LogLevel,
		AddSource: cfg.Debug,
	})
	return slog.New(h).With(
		slog.String("app", appName),
		slog.Group("build", slog.String("version", version)),
		slog.String("env", cfg.AppEnv),
	)
}
