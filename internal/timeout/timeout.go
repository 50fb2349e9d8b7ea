package timeout

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
)

// Do runs fn with a deadline. Calls that ignore ctx (stripe-go, net/smtp) keep
// running in the background after the deadline, but the caller is released.
func Do[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if d <= 0 {
		return fn(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)

	go func() {
		v, err := fn(ctx)
		done <- result{val: v, err: err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return zero, httperr.ErrBusiness("gateway_timeout")
		}
		return zero, ctx.Err()
	}
}

// Run is Do for calls without a result.
func Run(ctx context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	_, err := Do(ctx, d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
