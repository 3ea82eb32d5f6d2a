package safe

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/utils/errutil"
)

// Run executes handler synchronously and isolates the caller from whatever
// goes wrong inside it
//
// Behavior:
//   - Recovers from panics and reports them with a stack trace
//   - Reports errors returned by handler
//   - Never returns an error or panics itself
//
// Returns true when handler completed without error or panic.
func Run(ctx context.Context, handler func(ctx context.Context) error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			ctxlog.From(ctx).Error("panic in handler",
				"recover", r,
				"stack", string(stack))
			errutil.Handle(ctx, goerr.New("panic in handler", goerr.V("recover", r)), "recovered from panic")
			ok = false
		}
	}()

	if err := handler(ctx); err != nil {
		errutil.Handle(ctx, err, "error in handler")
		return false
	}
	return true
}
