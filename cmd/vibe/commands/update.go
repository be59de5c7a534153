package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vibe-cli/vibe/internal/update"
)

var updateFeed string

var updateCmd = &cobra.Command{
	Use:   "update [phrase...]",
	Short: "Check whether a newer vibe release exists",
	Long: `With no arguments, ask the release feed whether a newer vibe exists.
Nothing is downloaded or replaced; the check only runs when you ask
for it.

With arguments, the word update belongs to a phrase and is translated
as usual:

  vibe update packages    npm update (yarn/pnpm aware)
  vibe update pip         upgrade pip itself`,
	Args: cobra.ArbitraryArgs,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateFeed, "feed", "", "Override the release feed URL")
	updateCmd.Flags().SetInterspersed(false)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		// "update packages" and friends are phrases, not a release
		// check; only the bare form talks to the feed.
		return runPhrase(cmd, append([]string{"update"}, args...))
	}

	var opts []update.Option
	if updateFeed != "" {
		opts = append(opts, update.WithFeedURL(updateFeed))
	}
	release, err := update.NewChecker(Version, opts...).Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("update check: %w", err)
	}

	out := cmd.OutOrStdout()
	if !release.Newer {
		fmt.Fprintf(out, "vibe %s is up to date (latest release %s)\n", Version, release.Version)
		return nil
	}
	fmt.Fprintf(out, "vibe %s is available (you have %s)\n", release.Version, Version)
	if release.URL != "" {
		fmt.Fprintf(out, "  %s\n", release.URL)
	}
	return nil
}
