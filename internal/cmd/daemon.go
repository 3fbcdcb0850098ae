// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/propensive/digression/internal/config"
	"github.com/propensive/digression/internal/daemon"
	"github.com/propensive/digression/internal/telemetry"
)

var (
	daemonPort      string
	daemonAuthToken string
	daemonTracing   bool
	daemonOTLPURL   string
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Start JSON-RPC server for remote rewriting",
	Long: `Start a JSON-RPC 2.0 server that exposes digression functionality to
editors and remote tools.

Methods:
  - Digression.Rewrite: Rewrite a mangled identifier
  - Digression.Validate: Validate a fully-qualified name
  - Digression.Assemble: Parse and rewrite a raw stack trace
  - Digression.Legend: Fetch the glyph legend

Example:
  digression daemon --port 8537
  digression daemon --port 8537 --auth-token secret123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if daemonPort == "" {
			daemonPort = cfg.DaemonPort
		}

		// Initialize OpenTelemetry if enabled
		var cleanup func()
		if daemonTracing {
			cleanup, err = telemetry.Init(ctx, telemetry.Config{
				Enabled:     true,
				ExporterURL: daemonOTLPURL,
				ServiceName: "digression-daemon",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize telemetry: %w", err)
			}
			defer cleanup()
		}

		server := daemon.NewServer(daemon.Config{
			Port:      daemonPort,
			AuthToken: daemonAuthToken,
		})

		// Setup graceful shutdown
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			fmt.Println("\nReceived interrupt signal, shutting down...")
			cancel()
		}()

		fmt.Printf("Starting digression daemon on port %s\n", daemonPort)
		if daemonAuthToken != "" {
			fmt.Println("Authentication: enabled")
		}

		return server.Start(ctx, daemonPort)
	},
}

func init() {
	daemonCmd.Flags().StringVarP(&daemonPort, "port", "p", "", "Port to listen on (default from config, 8537)")
	daemonCmd.Flags().StringVar(&daemonAuthToken, "auth-token", "", "Authentication token for API access")
	daemonCmd.Flags().BoolVar(&daemonTracing, "tracing", false, "Enable OpenTelemetry tracing")
	daemonCmd.Flags().StringVar(&daemonOTLPURL, "otlp-url", "http://localhost:4318", "OTLP exporter URL")

	rootCmd.AddCommand(daemonCmd)
}
