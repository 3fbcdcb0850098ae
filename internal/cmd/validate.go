// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propensive/digression/internal/name"
)

var validateCmd = &cobra.Command{
	Use:   "validate <name>...",
	Short: "Validate fully-qualified class or package names",
	Long: `Check each argument against the rules for dot-separated JVM names:
no empty segments, no Java reserved words, only word characters, and no
segment starting with a digit.

Exits non-zero if any name is rejected.

Examples:
  digression validate com.example.Main
  digression validate com.example scala.collection.immutable.List`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var firstErr error
		for _, raw := range args {
			validated, err := name.Validate(raw)
			if err != nil {
				fmt.Printf("%s: %v\n", raw, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			if pkg := validated.PackageName(); pkg != "" {
				fmt.Printf("%s: ok (package %s, class %s)\n", raw, pkg, validated.ClassName())
			} else {
				fmt.Printf("%s: ok\n", raw)
			}
		}
		return firstErr
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
