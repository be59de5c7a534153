package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vibe-cli/vibe/internal/config"
	"github.com/vibe-cli/vibe/internal/mcp"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the vibe configuration file",
	Long: `Manage the JSON configuration file.

Subcommands:
  show       Print the whole file (default)
  path       Print the file location
  get        Read one value by dotted path
  set        Write one value by dotted path
  reset      Empty the file
  telemetry  Show or change telemetry opt-in
  mcp        Manage MCP server entries

Dotted paths address nested values, so
'vibe config get mcpServers.github.command' reads one field of one
server entry.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"list"},
	Short:   "Print the whole configuration",
	Args:    cobra.NoArgs,
	RunE:    runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Read one value by dotted path",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <path>=<value>",
	Short: "Write one value by dotted path",
	Long: `Write one value by dotted path, creating intermediate objects as
needed. The value is stored as a JSON literal when it parses as one
(true, 42, ["a","b"]) and as a string otherwise.

Examples:
  vibe config set telemetry.enabled=true
  vibe config set mcpServers.github.command npx`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Empty the configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigReset,
}

var configTelemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Show or change telemetry opt-in",
	Long: `Telemetry is off by default. When enabled, an anonymous summary of
each run (phrase, exit code, platform) goes to the configured
endpoint; the typed input and the expanded command never leave the
machine.`,
	Args: cobra.NoArgs,
	RunE: runTelemetryStatus,
}

var configTelemetryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether telemetry is enabled",
	Args:  cobra.NoArgs,
	RunE:  runTelemetryStatus,
}

var configTelemetryEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable anonymous usage reporting",
	Args:  cobra.NoArgs,
	RunE:  runTelemetryEnable,
}

var configTelemetryDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable anonymous usage reporting",
	Args:  cobra.NoArgs,
	RunE:  runTelemetryDisable,
}

var configMCPCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage MCP server entries",
	Long: `Manage the mcpServers map in the configuration file.

Subcommands:
  list     List configured servers
  show     Print one server entry as JSON
  add      Add or replace a server entry
  remove   Delete a server entry
  check    Spawn a server and verify the initialize handshake`,
}

var mcpAddEnv []string

var configMCPListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List configured MCP servers",
	Args:    cobra.NoArgs,
	RunE:    runMCPList,
}

var configMCPShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print one MCP server entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runMCPShow,
}

var configMCPAddCmd = &cobra.Command{
	Use:   "add <name> <command> [args...]",
	Short: "Add or replace an MCP server entry",
	Long: `Add or replace an MCP server entry. Everything after the name is the
command line to spawn; flags meant for the server pass through
untouched, so put --env before the name.

Examples:
  vibe config mcp add github npx -y @modelcontextprotocol/server-github
  vibe config mcp add --env TOKEN={env:GH_TOKEN} github npx -y @modelcontextprotocol/server-github`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMCPAdd,
}

var configMCPRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Delete an MCP server entry",
	Args:    cobra.ExactArgs(1),
	RunE:    runMCPRemove,
}

var configMCPCheckCmd = &cobra.Command{
	Use:   "check [name]",
	Short: "Spawn configured servers and verify the handshake",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMCPCheck,
}

func init() {
	configMCPAddCmd.Flags().StringArrayVar(&mcpAddEnv, "env", nil, "KEY=VALUE environment for the server (repeatable)")
	configMCPAddCmd.Flags().SetInterspersed(false)

	configMCPCmd.AddCommand(configMCPListCmd)
	configMCPCmd.AddCommand(configMCPShowCmd)
	configMCPCmd.AddCommand(configMCPAddCmd)
	configMCPCmd.AddCommand(configMCPRemoveCmd)
	configMCPCmd.AddCommand(configMCPCheckCmd)

	configTelemetryCmd.AddCommand(configTelemetryStatusCmd)
	configTelemetryCmd.AddCommand(configTelemetryEnableCmd)
	configTelemetryCmd.AddCommand(configTelemetryDisableCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configTelemetryCmd)
	configCmd.AddCommand(configMCPCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	store := newConfigStore(config.GetPaths())
	// Load materializes defaults when the file is missing or corrupt.
	if _, err := store.Load(); err != nil {
		return err
	}
	data, err := os.ReadFile(store.Path())
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), newConfigStore(config.GetPaths()).Path())
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, err := newConfigStore(config.GetPaths()).Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, value, err := splitSetArgs(args)
	if err != nil {
		return err
	}
	store := newConfigStore(config.GetPaths())
	if err := store.Set(path, value); err != nil {
		return err
	}
	stored, err := store.Get(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", path, stored)
	return nil
}

// splitSetArgs accepts both 'path=value' and 'path value' spellings.
func splitSetArgs(args []string) (string, string, error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}
	path, value, ok := strings.Cut(args[0], "=")
	if !ok || path == "" {
		return "", "", fmt.Errorf("expected <path>=<value>, got %q", args[0])
	}
	return path, value, nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	store := newConfigStore(config.GetPaths())
	if err := store.Reset(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "configuration reset: %s\n", store.Path())
	return nil
}

func runTelemetryStatus(cmd *cobra.Command, args []string) error {
	cfg, err := newConfigStore(config.GetPaths()).Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !cfg.Telemetry.Enabled {
		fmt.Fprintln(out, "telemetry is disabled")
		return nil
	}
	fmt.Fprintln(out, "telemetry is enabled")
	if cfg.Telemetry.Endpoint != "" {
		fmt.Fprintf(out, "endpoint: %s\n", cfg.Telemetry.Endpoint)
	} else {
		fmt.Fprintln(out, "no endpoint configured, nothing is sent")
	}
	return nil
}

func runTelemetryEnable(cmd *cobra.Command, args []string) error {
	if err := newConfigStore(config.GetPaths()).Set("telemetry.enabled", "true"); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "telemetry enabled")
	fmt.Fprintln(out, "reports go to telemetry.endpoint; set one with 'vibe config set telemetry.endpoint=<url>'")
	return nil
}

func runTelemetryDisable(cmd *cobra.Command, args []string) error {
	if err := newConfigStore(config.GetPaths()).Set("telemetry.enabled", "false"); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "telemetry disabled")
	return nil
}

func runMCPList(cmd *cobra.Command, args []string) error {
	cfg, err := newConfigStore(config.GetPaths()).Load()
	if err != nil {
		return err
	}
	if len(cfg.MCPServers) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no mcp servers configured")
		return nil
	}

	names := make([]string, 0, len(cfg.MCPServers))
	for name := range cfg.MCPServers {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOMMAND\tENV\t")
	for _, name := range names {
		server := cfg.MCPServers[name]
		line := strings.TrimSpace(server.Command + " " + strings.Join(server.Args, " "))
		fmt.Fprintf(w, "%s\t%s\t%d\t\n", name, line, len(server.Env))
	}
	return w.Flush()
}

func runMCPShow(cmd *cobra.Command, args []string) error {
	cfg, err := newConfigStore(config.GetPaths()).Load()
	if err != nil {
		return err
	}
	server, ok := cfg.MCPServers[args[0]]
	if !ok {
		return fmt.Errorf("mcp server %q not found", args[0])
	}
	data, err := json.MarshalIndent(server, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runMCPAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	program, programArgs, err := config.ParseMCPArgs(args[1:])
	if err != nil {
		return err
	}

	var env map[string]string
	for _, pair := range mcpAddEnv {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return fmt.Errorf("expected --env KEY=VALUE, got %q", pair)
		}
		if env == nil {
			env = map[string]string{}
		}
		env[key] = value
	}

	store := newConfigStore(config.GetPaths())
	if err := store.SetMCPServer(name, config.MCPServer{
		Command: program,
		Args:    programArgs,
		Env:     env,
	}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added mcp server %q (%s)\n", name, program)
	return nil
}

func runMCPRemove(cmd *cobra.Command, args []string) error {
	store := newConfigStore(config.GetPaths())
	removed, err := store.RemoveMCPServer(args[0])
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("mcp server %q not found", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed mcp server %q\n", args[0])
	return nil
}

func runMCPCheck(cmd *cobra.Command, args []string) error {
	cfg, err := newConfigStore(config.GetPaths()).Load()
	if err != nil {
		return err
	}

	checker := mcp.NewChecker(Version)
	var results []mcp.CheckResult
	if len(args) == 1 {
		server, ok := cfg.MCPServers[args[0]]
		if !ok {
			return fmt.Errorf("mcp server %q not found", args[0])
		}
		results = append(results, checker.Check(cmd.Context(), args[0], server))
	} else {
		if len(cfg.MCPServers) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no mcp servers configured")
			return nil
		}
		results = checker.CheckAll(cmd.Context(), cfg.MCPServers)
	}

	failed := false
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, result := range results {
		if result.OK {
			fmt.Fprintf(w, "ok\t%s\t%s %s, %d tools\t\n", result.Name, result.ServerName, result.ServerVersion, len(result.Tools))
			continue
		}
		failed = true
		fmt.Fprintf(w, "fail\t%s\t%s\t\n", result.Name, result.Error)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if failed {
		return ErrReported
	}
	return nil
}
