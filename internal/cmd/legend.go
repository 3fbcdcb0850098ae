// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propensive/digression/internal/config"
	"github.com/propensive/digression/internal/render"
)

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Show the glyph legend used in rewritten names",
	Long: `Print the table of glyphs that rewritten identifiers use, with the
JVM construct each one stands for.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Print(render.Legend(render.Options{Color: colorEnabled(cfg)}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(legendCmd)
}
