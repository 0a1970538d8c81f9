package scheduler

import (
	"errors"
	"fmt"
	"time"
)

// ErrNonOccurringEvent is returned when the requested event does not happen
// on the chosen date at the chosen location.
var ErrNonOccurringEvent = errors.New("the chosen event does not occur on this day")

// PastEventError is returned when the wake time had already passed when the
// wait was requested.
type PastEventError struct {
	When time.Time
}

func (e *PastEventError) Error() string {
	return fmt.Sprintf("the chosen event occurred in the past: %s. Cannot wait a negative amount of time",
		e.When.Format("2006-01-02 15:04:05 -07:00"))
}

// MissedEventError is returned when the process woke up more than
// MissedEventTolerance after the wake time, typically after a system suspend.
type MissedEventError struct {
	By time.Duration
}

func (e *MissedEventError) Error() string {
	return fmt.Sprintf("event missed by %ds", int64(e.By/time.Second))
}

// SleepError wraps a failure of the underlying wait mechanism.
type SleepError struct {
	Err error
}

func (e *SleepError) Error() string {
	return fmt.Sprintf("failed to wait: %v", e.Err)
}

func (e *SleepError) Unwrap() error {
	return e.Err
}
