package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vibe-cli/vibe/internal/config"
	"github.com/vibe-cli/vibe/internal/doctor"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment vibe depends on",
	Long: `Probe git, the JavaScript package managers, python, and the login
shell, and compare the live environment against what the config file
recorded when it was generated.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	paths := config.GetPaths()
	if err := paths.EnsurePaths(); err != nil {
		return err
	}

	report, err := doctor.Run(cmd.Context(), newConfigStore(paths))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	var ok, warn, fail int
	for _, check := range report.Checks {
		switch check.Status {
		case doctor.StatusWarn:
			warn++
		case doctor.StatusFail:
			fail++
		default:
			ok++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t\n", check.Status, check.Name, check.Detail)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if report.Drift != "" {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "environment drift since the config was written (+%d -%d):\n", report.Additions, report.Deletions)
		fmt.Fprint(out, report.Drift)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "run 'vibe config reset' to regenerate the file from this machine")
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d ok, %d warnings, %d failures\n", ok, warn, fail)
	if report.Failed() {
		return ErrReported
	}
	return nil
}
