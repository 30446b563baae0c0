package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rawconv/logger"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	env := loadEnvConfig(os.Environ())

	cfg, err := ParseConfig(args, env, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitSuccess
	}
	if err != nil {
		os.Stderr.WriteString("Configuration error: " + err.Error() + "\n")
		return exitCodeFor(err)
	}

	console := logger.NewConsole(cfg.LoggerOptions())
	for _, w := range env.Warnings {
		console.Warn("%s", w)
	}

	if cfg.ShowVersion {
		console.Box("rawconv version information", fmt.Sprintf(
			"Version: %s\nBuild date: %s\nGit commit: %s",
			cfg.Version, BuildDate, GitCommit,
		))
		return exitSuccess
	}

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS value,
	// in which case the runtime default stays in effect.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		console.Debug(format, args...)
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	processor := NewProcessor(cfg, console)

	if err := processor.ProcessPath(ctx); err != nil {
		console.Error("Processing error: %v", err)
		return exitCodeFor(err)
	}

	console.Success("All processing completed successfully")
	return exitSuccess
}
