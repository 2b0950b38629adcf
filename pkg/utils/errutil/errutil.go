package errutil

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prscout/pkg/utils/logging"
)

// Handle logs an unexpected error together with its goerr values and forwards it to
// Sentry when a Sentry client has been initialized.
func Handle(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	attrs := []any{slog.Any("error", err)}
	if ge := goerr.Unwrap(err); ge != nil {
		for k, v := range ge.Values() {
			attrs = append(attrs, slog.Any(k, v))
		}
	}
	logging.From(ctx).Error(msg, attrs...)

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("message", msg)
		if evID := hub.CaptureException(err); evID != nil {
			logging.From(ctx).Info("Sent error to Sentry", "event_id", *evID)
		}
	})
}
