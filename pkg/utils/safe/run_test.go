package safe_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/herald/pkg/utils/safe"
)

func newLoggerContext(buf *bytes.Buffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	return ctxlog.With(context.Background(), logger)
}

func TestRun(t *testing.T) {
	t.Run("executes handler synchronously", func(t *testing.T) {
		executed := false

		ok := safe.Run(context.Background(), func(ctx context.Context) error {
			executed = true
			return nil
		})

		gt.True(t, ok)
		gt.True(t, executed)
	})

	t.Run("absorbs errors", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := newLoggerContext(&buf)

		ok := safe.Run(ctx, func(ctx context.Context) error {
			return errors.New("test error")
		})

		gt.False(t, ok)
		gt.True(t, strings.Contains(buf.String(), "error in handler"))
		gt.True(t, strings.Contains(buf.String(), "test error"))
	})

	t.Run("recovers from panic with stack trace", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := newLoggerContext(&buf)

		ok := safe.Run(ctx, func(ctx context.Context) error {
			panic("test panic with stack")
		})

		gt.False(t, ok)
		logOutput := buf.String()
		gt.True(t, strings.Contains(logOutput, "panic in handler"))
		gt.True(t, strings.Contains(logOutput, "test panic with stack"))
		gt.True(t, strings.Contains(logOutput, "goroutine"))
		gt.True(t, strings.Contains(logOutput, "run_test.go"))
	})

	t.Run("passes context through", func(t *testing.T) {
		logger := slog.Default()
		ctx := ctxlog.With(context.Background(), logger)

		safe.Run(ctx, func(ctx context.Context) error {
			gt.Value(t, ctxlog.From(ctx)).Equal(logger)
			return nil
		})
	})
}
