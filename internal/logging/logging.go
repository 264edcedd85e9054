// Package logging builds the site's structured logger and carries it through
// request contexts.
//
//	logger := logging.New("info", "json", os.Stderr)
//	ctx = logging.WithLogger(ctx, logger)
//	logging.FromContext(ctx).InfoContext(ctx, "contact link composed")
//
// Form content and credentials are redacted before they reach the output.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/m-mizutani/masq"
)

type contextKey struct{}

// New creates a *slog.Logger. level is one of debug, info, warn, error
// (anything else means info). format "text" selects the text handler, any
// other value JSON.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the stored logger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func parseLevel(level string) slog.Level {
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

func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	return masq.New(
		masq.WithFieldName("password"),
		masq.WithFieldName("token"),
		masq.WithFieldName("cookie"),
		masq.WithFieldName("admin_token"),
		masq.WithFieldName("email"),
		masq.WithFieldName("message"),
		masq.WithFieldName("mailto"),
		masq.WithFieldPrefix("secret"),
	)
}
