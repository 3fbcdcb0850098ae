// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propensive/digression/internal/demangle"
)

var rewriteMethod bool

var rewriteCmd = &cobra.Command{
	Use:   "rewrite <name>...",
	Short: "Rewrite mangled JVM identifiers into readable form",
	Long: `Rewrite one or more mangled JVM identifiers the way they appear in
rendered traces.

By default names are rewritten in class context, where residual '$'
separators become '#'. Use --method for method context, where they
become '().' and the result gains a '()' suffix.

Examples:
  digression rewrite 'Foo$anonfun$bar$1'
  digression rewrite --method 'apply$mcV$sp'
  digression rewrite 'scala.runtime.java8.JFunction1$mcII$sp'`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, raw := range args {
			fmt.Println(demangle.Rewrite(raw, rewriteMethod))
		}
	},
}

func init() {
	rewriteCmd.Flags().BoolVarP(&rewriteMethod, "method", "m", false, "Rewrite in method context instead of class context")
	rootCmd.AddCommand(rewriteCmd)
}
