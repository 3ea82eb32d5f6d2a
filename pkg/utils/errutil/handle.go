package errutil

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs err and forwards it to Sentry when a client is configured. It
// is the terminal point for errors that must not propagate.
func Handle(ctx context.Context, err error, msg string, args ...any) {
	if err == nil {
		return
	}

	attrs := append([]any{"error", err}, args...)
	if e := goerr.Unwrap(err); e != nil && len(e.Values()) > 0 {
		attrs = append(attrs, "values", e.Values())
	}
	ctxlog.From(ctx).Error(msg, attrs...)

	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("message", msg)
		hub.CaptureException(err)
	})
}

// InitSentry configures the global Sentry client. An empty dsn disables
// reporting.
func InitSentry(dsn, env string) error {
	if dsn == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize sentry", goerr.V("env", env))
	}
	return nil
}

// FlushSentry waits for buffered events to be sent
func FlushSentry() {
	if sentry.CurrentHub().Client() == nil {
		return
	}
	sentry.Flush(2 * time.Second)
}
