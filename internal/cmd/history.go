// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/propensive/digression/internal/config"
	"github.com/propensive/digression/internal/db"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the local trace history",
	Long: `Traces rendered with 'digression render --save' are kept in a local
SQLite database. Use the subcommands to list, show, or clear them.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved traces, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No saved traces.")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%4d  %s  %s/%s  (%d frames)  %s\n",
				e.ID,
				e.Timestamp.Format("2006-01-02 15:04"),
				e.Component,
				e.ClassName,
				e.FrameCount,
				e.Message,
			)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved trace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid history id %q", args[0])
		}

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		entry, err := store.Get(id)
		if err != nil {
			return err
		}
		fmt.Print(entry.Rendered)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved traces",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Clear()
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d trace(s).\n", n)
		return nil
	},
}

func openHistory() (*db.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return db.Open(cfg.HistoryPath)
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of entries to list")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
