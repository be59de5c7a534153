package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/vibe-cli/vibe/internal/config"
)

var (
	commandsFilter string
	commandsJSON   bool
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List every phrase vibe understands",
	Long: `List the merged phrase table: the builtin git, node, and python
phrases plus any user phrases from phrases.yaml.

Examples:
  vibe commands                    # Everything
  vibe commands --filter 'add*'    # Phrases starting with add
  vibe commands --filter '*stash*' # Phrases mentioning stash
  vibe commands --json             # Machine-readable listing`,
	Args: cobra.NoArgs,
	RunE: runCommands,
}

func init() {
	commandsCmd.Flags().StringVar(&commandsFilter, "filter", "", "Glob pattern to filter phrases")
	commandsCmd.Flags().BoolVar(&commandsJSON, "json", false, "Emit the listing as JSON")
}

type phraseInfo struct {
	Phrase  string `json:"phrase"`
	Source  string `json:"source"`
	Kind    string `json:"kind"`
	Command string `json:"command,omitempty"`
}

func runCommands(cmd *cobra.Command, args []string) error {
	if commandsFilter != "" && !doublestar.ValidatePattern(commandsFilter) {
		return fmt.Errorf("invalid filter pattern %q", commandsFilter)
	}

	paths := config.GetPaths()
	if err := paths.EnsurePaths(); err != nil {
		return err
	}
	table, err := loadTable(paths)
	if err != nil {
		return err
	}

	rows := []phraseInfo{}
	for _, entry := range table.Entries() {
		if commandsFilter != "" {
			ok, err := doublestar.Match(commandsFilter, entry.Phrase)
			if err != nil {
				return fmt.Errorf("filter %q: %w", commandsFilter, err)
			}
			if !ok {
				continue
			}
		}
		rows = append(rows, phraseInfo{
			Phrase:  entry.Phrase,
			Source:  entry.Source,
			Kind:    entry.Template.Kind().String(),
			Command: entry.Template.Describe(),
		})
	}

	if commandsJSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PHRASE\tSOURCE\tKIND\tCOMMAND\t")
	for _, row := range rows {
		display := row.Command
		if display == "" {
			display = "(built from input)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", row.Phrase, row.Source, row.Kind, display)
	}
	return w.Flush()
}
