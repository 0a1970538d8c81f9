package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"suncron/internal/clock"
	"suncron/internal/config"

	"cloudeng.io/cmdutil/signals"
	"go.uber.org/zap"
)

// Exit codes
const (
	exitOK          = 0
	exitError       = 1
	exitInterrupted = 130
)

// defaultLogLevel keeps stderr quiet unless something goes wrong
const defaultLogLevel = "warn"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx, _ = signals.NotifyWithCancel(ctx, signals.Defaults()...)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger, err := newLogger(os.Getenv(config.EnvLogLevel))
	if err != nil {
		fmt.Fprintf(stderr, "Config error: %v\n", err)
		return exitError
	}
	defer logger.Sync()

	loader := config.NewLoader(config.DefaultConfigDir(), logger)
	if err := loader.LoadEnvFile(".env"); err != nil {
		return report(stderr, err)
	}

	defaults, err := loader.Load()
	if err != nil {
		return report(stderr, err)
	}

	cfg, err := config.Parse(args, defaults, clock.NewRealClock().Now())
	if errors.Is(err, flag.ErrHelp) {
		config.Usage(stdout)
		return exitOK
	}
	if err != nil {
		return report(stderr, err)
	}

	logger.Debug("Starting",
		zap.String("action", cfg.Action.String()),
		zap.String("coordinates", cfg.Coordinates.String()),
		zap.Time("date", cfg.Date))

	a := newApp(clock.NewRealClock(), logger, stdout)
	return report(stderr, a.execute(ctx, cfg))
}

// newLogger builds a production logger writing to stderr at the given level
func newLogger(level string) (*zap.Logger, error) {
	if level == "" {
		level = defaultLogLevel
	}
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.EnvLogLevel, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel
	return cfg.Build()
}

// report prints err with its family prefix and returns the exit code for it
func report(stderr io.Writer, err error) int {
	code := exitCode(err)
	switch {
	case code == exitOK:
	case code == exitInterrupted:
		fmt.Fprintln(stderr, "Interrupted")
	case isConfigError(err):
		fmt.Fprintf(stderr, "Config error: %v\n", err)
	default:
		fmt.Fprintf(stderr, "Runtime error: %v\n", err)
	}
	return code
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return exitError
	}
}

func isConfigError(err error) bool {
	var cfgErr *config.Error
	return errors.As(err, &cfgErr)
}
