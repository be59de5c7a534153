package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vibe-cli/vibe/internal/config"
	"github.com/vibe-cli/vibe/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent vibe invocations",
	Long: `Show what vibe ran recently: the phrase input, the command it
expanded to, and how the command exited. Records live under the data
directory; 'vibe history clear' deletes them.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded invocation",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to show (0 for all)")
	historyCmd.AddCommand(historyClearCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	paths := config.GetPaths()
	if err := paths.EnsurePaths(); err != nil {
		return err
	}

	entries, err := history.NewRecorder(paths.StoragePath()).List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no history yet")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tINPUT\tCOMMAND\tEXIT\t")
	for _, entry := range entries {
		status := fmt.Sprintf("%d", entry.ExitCode)
		if entry.Error != "" {
			status = entry.Error
		}
		when := entry.Timestamp.Local().Format("2006-01-02 15:04:05")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", when, entry.Input, entry.Command, status)
	}
	return w.Flush()
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	paths := config.GetPaths()
	if err := paths.EnsurePaths(); err != nil {
		return err
	}
	if err := history.NewRecorder(paths.StoragePath()).Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
	return nil
}
