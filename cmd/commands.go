package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"suncron/internal/clock"
	"suncron/internal/config"
	"suncron/internal/dayphase"
	"suncron/internal/scheduler"
	"suncron/internal/solar"

	"go.uber.org/zap"
)

// app runs one command against a clock, writing results to stdout
type app struct {
	clock  clock.Clock
	logger *zap.Logger
	stdout io.Writer
}

func newApp(clk clock.Clock, logger *zap.Logger, stdout io.Writer) *app {
	return &app{clock: clk, logger: logger, stdout: stdout}
}

func (a *app) execute(ctx context.Context, cfg *config.Config) error {
	switch cfg.Action {
	case config.WaitAction:
		return a.wait(ctx, cfg)
	case config.PollAction:
		return a.poll(ctx, cfg)
	default:
		return a.report(cfg)
	}
}

func (a *app) report(cfg *config.Config) error {
	report := solar.NewReport(solar.New(cfg.Date, cfg.Coordinates))

	if cfg.JSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return report.WriteText(a.stdout)
}

func (a *app) wait(ctx context.Context, cfg *config.Config) error {
	calc := solar.New(cfg.Date, cfg.Coordinates)
	req, err := scheduler.NewRequest(calc.EventTime(cfg.Event), cfg.Offset, cfg.RunMissed)
	if err != nil {
		return err
	}

	a.logger.Info("Resolved event",
		zap.String("event", cfg.Event.Name()),
		zap.String("tag", cfg.Tag),
		zap.Time("target", req.Target))

	wakeTime := req.WakeTime()
	if remaining := a.clock.Until(wakeTime); remaining >= 0 {
		fmt.Fprintf(a.stdout, "Thread going to sleep for %d seconds until %s. Press ctrl+C to cancel.\n",
			int64(remaining.Seconds()), wakeTime.Format(solar.EventTimeLayout))
	}

	return scheduler.NewWaiter(a.clock, a.logger).Wait(ctx, req)
}

func (a *app) poll(ctx context.Context, cfg *config.Config) error {
	calc := dayphase.NewCalculator(cfg.Coordinates, a.clock, a.logger)

	emit := func(r dayphase.Reading) error {
		if cfg.JSON {
			return json.NewEncoder(a.stdout).Encode(r)
		}
		_, err := fmt.Fprintf(a.stdout, "%s  Solar elevation: %7.3f  %s\n",
			r.Time.Format(solar.EventTimeLayout), r.SolarElevation, r.DayPart.DisplayName())
		return err
	}

	if !cfg.Watch {
		return emit(calc.Current())
	}
	return calc.Watch(ctx, emit)
}
