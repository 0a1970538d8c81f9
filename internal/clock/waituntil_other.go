//go:build !linux

package clock

import (
	"context"
	"time"
)

// maxStep bounds each timer so that a wall clock jump, or time spent
// suspended, is noticed within one step.
const maxStep = 5 * time.Second

func waitUntil(ctx context.Context, deadline time.Time) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil
		}

		timer := time.NewTimer(min(remaining, maxStep))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
