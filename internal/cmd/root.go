// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/propensive/digression/internal/config"
	"github.com/propensive/digression/internal/updater"
)

// Global flag variables
var (
	NoColorFlag bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "digression",
	Short: "JVM stack-trace rewriter for Scala programs",
	Long: `Digression rewrites the mangled JVM identifiers that appear in Scala
stack traces into compact, readable form, and assembles raw traces into
structured ones that can be cropped, trimmed, colorized, and stored.

Key features:
  - Rewrite mangled names ($anonfun, $plus, specialized wrappers) to glyphs
  - Parse printStackTrace output into structured traces with cause chains
  - Crop and trim traces around a boundary method
  - Validate fully-qualified class and package names
  - Keep a local history of rendered traces
  - Serve everything over JSON-RPC for editor integrations

Examples:
  digression rewrite 'Foo$anonfun$bar$1'       Rewrite one mangled name
  digression render crash.log --crop App.main  Render a captured trace
  digression validate com.example.Main         Check a class name
  digression legend                            Show the glyph legend

Get started with 'digression render --help'.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		checkForUpdatesAsync()
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// checkForUpdatesAsync runs the update check in a goroutine to not block CLI startup
func checkForUpdatesAsync() {
	go func() {
		checker := updater.NewChecker(Version)
		checker.CheckForUpdates()
	}()
}

// colorEnabled resolves the configured color mode against the --no-color
// flag and terminal detection.
func colorEnabled(cfg *config.Config) bool {
	if NoColorFlag {
		return false
	}
	switch cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return !color.NoColor
}

func init() {
	rootCmd.PersistentFlags().BoolVar(
		&NoColorFlag,
		"no-color",
		false,
		"Disable ANSI color in output",
	)
}
