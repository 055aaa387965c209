package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/drawdown/internal/output"
	"github.com/rpgo/drawdown/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List runs saved with --record",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <report-id>",
	Short: "Show the scenario summaries of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <report-id>",
	Short: "Remove a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximum runs to list (0 for all)")
	historyCmd.AddCommand(historyShowCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func withHistory(fn func(*store.History) error) error {
	history, err := store.Open(flagHistory)
	if err != nil {
		return err
	}
	defer func() { _ = history.Close() }()
	return fn(history)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	return withHistory(func(h *store.History) error {
		runs, err := h.ListRuns(historyLimit)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output.FormatRunList(runs))
		return nil
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	return withHistory(func(h *store.History) error {
		run, err := h.LoadRun(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output.FormatRun(run))
		return nil
	})
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	return withHistory(func(h *store.History) error {
		if err := h.DeleteRun(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
		return nil
	})
}
