// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/propensive/digression/internal/config"
	"github.com/propensive/digression/internal/db"
	"github.com/propensive/digression/internal/demangle"
	"github.com/propensive/digression/internal/logger"
	"github.com/propensive/digression/internal/render"
	"github.com/propensive/digression/internal/trace"
)

var (
	renderCrop    string
	renderDrop    int
	renderDropEnd int
	renderSave    bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Rewrite and render a captured stack trace",
	Long: `Parse a stack trace as printed by printStackTrace, rewrite every
mangled identifier in it, and render the result with cause chains.

Reads from the given file, or from stdin when no file (or '-') is given.

Examples:
  digression render crash.log
  jvm-app 2>&1 | digression render
  digression render crash.log --crop com.example.App.main
  digression render crash.log --drop 2 --drop-end 1 --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		text, err := readInput(args)
		if err != nil {
			return err
		}

		throwable, err := trace.Parse(text)
		if err != nil {
			return err
		}

		st := trace.Assemble(throwable)

		if renderCrop != "" {
			st, err = applyCrop(st, renderCrop)
			if err != nil {
				return err
			}
		}
		if renderDrop > 0 {
			st = st.Drop(renderDrop)
		}
		if renderDropEnd > 0 {
			st = st.DropFromEnd(renderDropEnd)
		}

		rendered := render.Trace(st, render.Options{Color: colorEnabled(cfg)})
		fmt.Print(rendered)

		if renderSave {
			plain := render.Trace(st, render.Options{Color: false})
			id, err := saveTrace(cfg, st, plain)
			if err != nil {
				return err
			}
			logger.Logger.Info("saved trace to history", "id", id)
			fmt.Fprintf(os.Stderr, "Saved as history entry %d\n", id)
		}

		return nil
	},
}

// readInput returns the trace text from the file argument or stdin.
func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

// applyCrop trims st at the given Class.method boundary. Assembled frames
// carry rewritten names, so the boundary is rewritten the same way before
// comparing.
func applyCrop(st *trace.StackTrace, boundary string) (*trace.StackTrace, error) {
	className, methodName, err := splitBoundary(boundary)
	if err != nil {
		return nil, err
	}
	return st.Crop(demangle.Rewrite(className, false), demangle.Rewrite(methodName, true)), nil
}

// splitBoundary splits "com.example.App.main" into class and method parts.
func splitBoundary(boundary string) (className, methodName string, err error) {
	idx := strings.LastIndex(boundary, ".")
	if idx <= 0 || idx == len(boundary)-1 {
		return "", "", fmt.Errorf("invalid crop boundary %q: expected Class.method", boundary)
	}
	return boundary[:idx], boundary[idx+1:], nil
}

func saveTrace(cfg *config.Config, st *trace.StackTrace, rendered string) (int64, error) {
	store, err := db.Open(cfg.HistoryPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	return store.Save(&db.Entry{
		Component:  st.Component,
		ClassName:  st.ClassName,
		Message:    st.Message.String(),
		FrameCount: len(st.Frames),
		Rendered:   rendered,
	})
}

func init() {
	renderCmd.Flags().StringVar(&renderCrop, "crop", "", "Keep only the frames above the given Class.method boundary, dropping the boundary and everything below it")
	renderCmd.Flags().IntVar(&renderDrop, "drop", 0, "Drop N frames from the top of the trace")
	renderCmd.Flags().IntVar(&renderDropEnd, "drop-end", 0, "Drop N frames from the bottom of the trace")
	renderCmd.Flags().BoolVar(&renderSave, "save", false, "Save the rendered trace to local history")
	rootCmd.AddCommand(renderCmd)
}
