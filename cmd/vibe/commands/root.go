// Package commands provides the CLI commands for vibe.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vibe-cli/vibe/internal/command"
	"github.com/vibe-cli/vibe/internal/config"
	"github.com/vibe-cli/vibe/internal/event"
	"github.com/vibe-cli/vibe/internal/executor"
	"github.com/vibe-cli/vibe/internal/history"
	"github.com/vibe-cli/vibe/internal/logging"
	"github.com/vibe-cli/vibe/internal/suggest"
	"github.com/vibe-cli/vibe/internal/sysinfo"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	printLogs bool
	logLevel  string
)

// ErrReported marks a failure whose message already reached the user.
// main exits nonzero without printing it again.
var ErrReported = errors.New("error already reported")

// probeDefaultsTimeout bounds the tool probes that seed a fresh config
// file.
const probeDefaultsTimeout = 10 * time.Second

var logFile *os.File

var rootCmd = &cobra.Command{
	Use:   "vibe [phrase...]",
	Short: "vibe - plain English for your dev tools",
	Long: `vibe turns plain English into git, npm/yarn/pnpm, and pip commands.

Type what you want to do; vibe shows the command it resolved, then
runs it:

  vibe check status                     git status
  vibe add express                      npm install express (yarn or
                                        pnpm when their lockfile is in
                                        the current directory)
  vibe commit with message fix bug      git commit -m "fix bug"
  vibe freeze requirements              pip freeze > requirements.txt

Phrases come from the builtin git, node, and python tables plus an
optional phrases.yaml in the config directory. Run 'vibe commands'
for the full list.`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
	RunE: runPhrase,
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVar(&printLogs, "print-logs", false, "Print logs to stderr instead of the log file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error; default warn)")

	// -v prints the version, matching the literal overrides. Flags
	// after the first phrase word pass through to the phrase untouched.
	rootCmd.Flags().BoolP("version", "v", false, "Print version and exit")
	rootCmd.Flags().SetInterspersed(false)

	// Version template
	rootCmd.SetVersionTemplate(fmt.Sprintf("vibe %s (%s)\n", Version, BuildTime))

	// Add subcommands
	rootCmd.AddCommand(commandsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(updateCmd)
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if logFile != nil {
			logFile.Close()
		}
	}()
	return rootCmd.Execute()
}

// setupLogging initializes the global logger from the persistent flags.
// Without --print-logs, logs land in a file under the state directory
// so stderr carries only vibe's own messages and the tool's output.
func setupLogging() error {
	// A project-local .env may carry VIBE_* settings; real environment
	// variables always win.
	_ = godotenv.Load()

	cfg := logging.DefaultConfig()
	if logLevel != "" {
		cfg.Level = logging.ParseLevel(logLevel)
	}
	if printLogs {
		logging.Init(cfg)
		return nil
	}

	paths := config.GetPaths()
	if err := paths.EnsurePaths(); err != nil {
		logging.Init(cfg)
		return nil
	}
	f, err := logging.InitFile(paths.State, cfg)
	if err != nil {
		logging.Init(cfg)
		return nil
	}
	logFile = f
	return nil
}

// newConfigStore binds the store to the per-user config file. The
// defaults closure only runs when the file is missing or corrupt, so
// the tool probes cost nothing on a normal run.
func newConfigStore(paths *config.Paths) *config.Store {
	return config.NewStore(paths.FilePath(), func() *config.Config {
		ctx, cancel := context.WithTimeout(context.Background(), probeDefaultsTimeout)
		defer cancel()
		sys := sysinfo.Detect()
		return config.Defaults(Version, config.SystemInfo{
			OS:    sys.OS,
			Arch:  sys.Arch,
			Shell: sys.Shell,
		}, sysinfo.DetectPackageManagers(ctx))
	})
}

// loadTable builds the merged phrase table: builtin tables first, then
// the user pack so user phrases shadow builtin ones.
func loadTable(paths *config.Paths) (*command.Table, error) {
	table := command.Builtin()
	packs, err := command.LoadPacks(paths.PhrasesPath())
	if err != nil {
		return nil, err
	}
	table.Merge(packs)
	return table, nil
}

// runPhrase is the translate pipeline: input text to matched phrase to
// concrete command to child process.
func runPhrase(cmd *cobra.Command, args []string) error {
	input := strings.TrimSpace(strings.Join(args, " "))
	if input == "" {
		return cmd.Help()
	}

	// Literal overrides come before any matching so a phrase pack can
	// never shadow them.
	switch command.Normalize(input) {
	case "help":
		return cmd.Help()
	case "version":
		fmt.Fprintf(cmd.OutOrStdout(), "vibe %s (%s)\n", Version, BuildTime)
		return nil
	}

	paths := config.GetPaths()
	if err := paths.EnsurePaths(); err != nil {
		return err
	}
	cfg, err := newConfigStore(paths).Load()
	if err != nil {
		return err
	}
	table, err := loadTable(paths)
	if err != nil {
		return err
	}

	bus := event.NewBus()
	defer bus.Close()
	bus.SubscribeAll(func(e event.Event) {
		logging.Debug().Str("event", string(e.Type)).Msg("pipeline event")
	})
	history.NewRecorder(paths.StoragePath()).Attach(bus)

	// The environment (often a project .env) can veto an opted-in config
	// file, never the reverse.
	tcfg := cfg.Telemetry
	if off, _ := strconv.ParseBool(os.Getenv("VIBE_TELEMETRY_DISABLED")); off {
		tcfg.Enabled = false
	}
	if sender := history.NewSender(tcfg, Version); sender.Enabled() {
		sender.Attach(bus)
	}

	res, err := table.Resolve(input)
	if err != nil {
		if errors.Is(err, command.ErrNoMatch) {
			return reportNoMatch(cmd, bus, input, table)
		}
		return err
	}

	bus.PublishSync(event.Event{Type: event.CommandResolved, Data: event.CommandResolvedData{
		Input:   input,
		Phrase:  res.Phrase,
		Source:  res.Source,
		Command: res.Invocation.Display(),
		Shell:   res.Invocation.UsesShell(),
	}})

	// The announcement goes to stderr so stdout stays the tool's own.
	fmt.Fprintf(cmd.ErrOrStderr(), "$ %s\n", res.Invocation.Display())

	exe := executor.New(executor.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()))
	start := time.Now()
	result, runErr := exe.Run(cmd.Context(), res.Invocation)

	executed := event.CommandExecutedData{
		Input:      input,
		Phrase:     res.Phrase,
		Source:     res.Source,
		Command:    res.Invocation.Display(),
		ExitCode:   result.ExitCode,
		DurationMS: time.Since(start).Milliseconds(),
	}
	var exitErr *executor.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		executed.Error = runErr.Error()
	}
	bus.PublishSync(event.Event{Type: event.CommandExecuted, Data: executed})

	if runErr != nil {
		var notFound *executor.NotFoundError
		if errors.As(runErr, &notFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "vibe: %s: command not found (is it installed and on your PATH?)\n", notFound.Program)
			return ErrReported
		}
		return runErr
	}
	return nil
}

// reportNoMatch prints the unmatched-input message with the closest
// registered phrases and publishes the miss for the listeners.
func reportNoMatch(cmd *cobra.Command, bus *event.Bus, input string, table *command.Table) error {
	matches := suggest.Closest(input, table.Phrases())
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Phrase)
	}

	bus.PublishSync(event.Event{Type: event.CommandUnmatched, Data: event.CommandUnmatchedData{
		Input:       command.Normalize(input),
		Suggestions: names,
	}})

	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "vibe: no matching phrase for %q\n", command.Normalize(input))
	if len(names) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "did you mean:")
		for _, name := range names {
			fmt.Fprintf(out, "  vibe %s\n", name)
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "run 'vibe commands' to list every phrase")
	return ErrReported
}
