package functions

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type CustomHandler struct {
	slog.Handler
}

func (h *CustomHandler) Handle(ctx context.Context, r slog.Record) error {
	// Add custom logic here
	return h.Handler.Handle(ctx, r)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewCustomLogger returns a JSON logger whose keys follow Cloud Logging's structured format.
func NewCustomLogger(w io.Writer, svcName, level string) *slog.Logger {
	if svcName == "" {
		svcName = "local"
	}

	handler := CustomHandler{
		slog.NewJSONHandler(
			w,
			&slog.HandlerOptions{
				AddSource: true,
				Level:     parseLogLevel(level),
				ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
					switch a.Key {
					case slog.MessageKey:
						a = slog.Attr{
							Key:   "message",
							Value: a.Value,
						}
					case slog.LevelKey:
						a = slog.Attr{
							Key:   "severity",
							Value: a.Value,
						}
					case slog.SourceKey:
						a = slog.Attr{
							Key:   "logging.googleapis.com/sourceLocation",
							Value: a.Value,
						}
					}
					return a
				},
			}),
	}

	logger := slog.New(&handler).With(
		slog.Group("logging.googleapis.com/labels",
			slog.String("service", svcName),
		))

	return logger
}
