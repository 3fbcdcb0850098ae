// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/propensive/digression/internal/cmd"
	"github.com/propensive/digression/internal/config"
	"github.com/propensive/digression/internal/crashreport"
	"github.com/propensive/digression/internal/logger"
)

// Build-time variables injected via -ldflags.
var (
	version   = "dev"
	commitSHA = "unknown"
)

func main() {
	ctx := context.Background()

	// Load config to determine whether crash reporting is opted in.
	cfg, err := config.LoadConfig()
	if err != nil {
		// Non-fatal: fall back to a reporter that is disabled by default.
		cfg = config.DefaultConfig()
	}
	switch cfg.LogLevel {
	case "debug":
		logger.SetLevel(slog.LevelDebug)
	case "warn":
		logger.SetLevel(slog.LevelWarn)
	case "error":
		logger.SetLevel(slog.LevelError)
	}

	cmd.Version = version

	reporter := crashreport.New(crashreport.Config{
		Enabled:   cfg.CrashReporting,
		SentryDSN: cfg.CrashSentryDSN,
		Endpoint:  cfg.CrashEndpoint,
		Version:   version,
		CommitSHA: commitSHA,
	})

	// Catch any unrecovered panic, report it, then re-panic.
	defer reporter.HandlePanic(ctx, "digression")

	if execErr := cmd.Execute(); execErr != nil {
		// Report fatal command errors that were not recovered as panics.
		if reporter.IsEnabled() {
			stack := debug.Stack()
			_ = reporter.Send(ctx, execErr, stack, "digression")
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", execErr)
		os.Exit(1)
	}
}
