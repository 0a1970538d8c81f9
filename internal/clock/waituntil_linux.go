//go:build linux

package clock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// waitUntil arms a CLOCK_REALTIME timerfd with an absolute expiry. The kernel
// fires it once the wall clock passes deadline, even if the machine was
// suspended in between or the clock was stepped.
func waitUntil(ctx context.Context, deadline time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !deadline.After(time.Now()) {
		return nil
	}

	fd, err := unix.TimerfdCreate(unix.CLOCK_REALTIME, unix.TFD_NONBLOCK|unix.TFD_CLOEXEC)
	if err != nil {
		return fmt.Errorf("failed to create timer: %w", err)
	}
	// A non-blocking descriptor is registered with the runtime poller, which
	// makes Read honour SetReadDeadline.
	timer := os.NewFile(uintptr(fd), "timerfd")
	defer timer.Close()

	spec := unix.ItimerSpec{Value: unix.NsecToTimespec(deadline.UnixNano())}
	if err := unix.TimerfdSettime(fd, unix.TFD_TIMER_ABSTIME, &spec, nil); err != nil {
		return fmt.Errorf("failed to arm timer: %w", err)
	}

	stop := context.AfterFunc(ctx, func() {
		_ = timer.SetReadDeadline(time.Now())
	})
	defer stop()

	// The expiration count is an 8 byte integer.
	buf := make([]byte, 8)
	for {
		_, err := timer.Read(buf)
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			continue
		}
		return fmt.Errorf("failed to read timer: %w", err)
	}
}
