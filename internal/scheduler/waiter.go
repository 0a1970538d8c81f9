// Package scheduler suspends the process until a solar event, optionally
// shifted by an offset, arrives in real time.
package scheduler

import (
	"context"
	"errors"
	"time"

	"suncron/internal/clock"
	"suncron/internal/solar"

	"go.uber.org/zap"
)

// MissedEventTolerance is how late a wake-up may be before the event counts
// as missed.
const MissedEventTolerance = 30 * time.Second

// Request describes one wait.
type Request struct {
	// Target is the time of the event.
	Target time.Time
	// Offset shifts the wake time; negative values wake before the event.
	Offset time.Duration
	// RunMissed succeeds even when the wake-up was later than MissedEventTolerance.
	RunMissed bool
}

// NewRequest builds a Request for a resolved event time. It returns
// ErrNonOccurringEvent if the event does not happen.
func NewRequest(eventTime solar.EventTime, offset time.Duration, runMissed bool) (Request, error) {
	target, ok := eventTime.Time()
	if !ok {
		return Request{}, ErrNonOccurringEvent
	}
	return Request{Target: target, Offset: offset, RunMissed: runMissed}, nil
}

// WakeTime returns the instant the wait ends.
func (r Request) WakeTime() time.Time {
	return r.Target.Add(r.Offset)
}

// Waiter performs waits against a Clock.
type Waiter struct {
	clock  clock.Clock
	logger *zap.Logger
}

// NewWaiter creates a Waiter
func NewWaiter(clk clock.Clock, logger *zap.Logger) *Waiter {
	return &Waiter{
		clock:  clk,
		logger: logger.Named("scheduler"),
	}
}

// Wait blocks until the wake time of req. A wake time already in the past is
// a *PastEventError and a late wake-up is a *MissedEventError unless
// req.RunMissed is set. Cancelling ctx returns ctx.Err().
func (w *Waiter) Wait(ctx context.Context, req Request) error {
	wakeTime := req.WakeTime()
	now := w.clock.Now()

	if wakeTime.Before(now) {
		return &PastEventError{When: wakeTime}
	}

	w.logger.Info("Waiting for event",
		zap.Time("target", req.Target),
		zap.Duration("offset", req.Offset),
		zap.Time("wake_time", wakeTime),
		zap.Duration("remaining", wakeTime.Sub(now)))

	if err := w.clock.WaitUntil(ctx, wakeTime); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			w.logger.Info("Wait cancelled", zap.Error(err))
			return err
		}
		return &SleepError{Err: err}
	}

	overrun := w.clock.Now().Sub(wakeTime)
	if overrun > MissedEventTolerance {
		if !req.RunMissed {
			return &MissedEventError{By: overrun}
		}
		w.logger.Warn("Event missed, running anyway", zap.Duration("overrun", overrun))
	}

	w.logger.Info("Wait complete", zap.Duration("overrun", overrun))
	return nil
}
