package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/masq"
	"github.com/m-mizutani/prscout/pkg/domain/types"
)

type ctxLoggerKey struct{}

// With returns a copy of ctx carrying logger
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns the logger stored in ctx, or slog.Default() if there is none
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// NewRedactor returns a slog ReplaceAttr function that masks credentials. masq
// compares field names case-sensitively, so both the struct field and the attr key
// spellings are listed.
func NewRedactor() func(groups []string, a slog.Attr) slog.Attr {
	opts := []masq.Option{
		masq.WithType[types.GitHubToken](),
	}
	for _, name := range []string{"Token", "Secret", "Authorization"} {
		opts = append(opts,
			masq.WithFieldName(name),
			masq.WithFieldName(strings.ToLower(name)),
		)
	}
	return masq.New(opts...)
}
