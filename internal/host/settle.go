package host

import (
	"context"
	"time"
)

// Settle waits for the host to finish processing the last action.
// Sessions implementing ReadyWaiter are asked directly; others get a fixed delay.
func Settle(ctx context.Context, s Session, delay time.Duration) error {
	if w, ok := s.(ReadyWaiter); ok {
		return w.WaitReady(ctx)
	}
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
