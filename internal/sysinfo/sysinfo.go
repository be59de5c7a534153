// Package sysinfo probes the host environment: operating system,
// login shell, and the versions of tools vibe can drive. New config
// files record a snapshot of these probes.
package sysinfo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/vibe-cli/vibe/internal/logging"
)

// probeTimeout bounds each version probe so a wedged tool cannot hang
// config generation.
const probeTimeout = 2 * time.Second

// Info is a snapshot of the host environment.
type Info struct {
	OS    string
	Arch  string
	Shell string
}

// Detect returns the current host snapshot. The shell is the basename
// of $SHELL as the user logs in with, not the shell used for
// execution.
func Detect() Info {
	return Info{
		OS:    runtime.GOOS,
		Arch:  runtime.GOARCH,
		Shell: ShellName(),
	}
}

// ShellName returns the basename of the user's login shell, or "cmd"
// on Windows where $SHELL is not set.
func ShellName() string {
	if s := os.Getenv("SHELL"); s != "" {
		return filepath.Base(s)
	}
	if runtime.GOOS == "windows" {
		return "cmd"
	}
	return ""
}

// RCFile returns the startup file for a known shell, or "" for shells
// without a conventional one.
func RCFile(shell string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	switch shell {
	case "bash":
		return filepath.Join(home, ".bashrc")
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "fish":
		return filepath.Join(home, ".config", "fish", "config.fish")
	}
	return ""
}

// ToolVersion runs `tool --version` and returns the first line of
// output. ok is false when the tool is not installed or the probe
// fails.
func ToolVersion(ctx context.Context, tool string) (version string, ok bool) {
	if _, err := exec.LookPath(tool); err != nil {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, tool, "--version").Output()
	if err != nil {
		logging.Debug().Err(err).Str("tool", tool).Msg("version probe failed")
		return "", false
	}

	version = strings.TrimSpace(string(out))
	if i := strings.IndexByte(version, '\n'); i >= 0 {
		version = strings.TrimSpace(version[:i])
	}
	return version, version != ""
}

// DetectPackageManagers probes the JavaScript package managers and
// returns name to version for the ones that answered.
func DetectPackageManagers(ctx context.Context) map[string]string {
	found := map[string]string{}
	for _, pm := range []string{"npm", "yarn", "pnpm"} {
		if v, ok := ToolVersion(ctx, pm); ok {
			found[pm] = v
		}
	}
	return found
}
