// Package doctor inspects the environment the translator depends on:
// which tools are installed, whether the config file still matches the
// machine it was generated on, and where shell integration would go.
package doctor

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/vibe-cli/vibe/internal/config"
	"github.com/vibe-cli/vibe/internal/sysinfo"
)

// Status grades a single check.
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Check is the outcome of one probe.
type Check struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Report is the full doctor output.
type Report struct {
	Checks    []Check `json:"checks"`
	Drift     string  `json:"drift,omitempty"`
	Additions int     `json:"additions,omitempty"`
	Deletions int     `json:"deletions,omitempty"`
}

// Failed reports whether any check failed outright.
func (r *Report) Failed() bool {
	for _, check := range r.Checks {
		if check.Status == StatusFail {
			return true
		}
	}
	return false
}

// Run executes every check against the live environment.
func Run(ctx context.Context, store *config.Store) (*Report, error) {
	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}

	report := &Report{}
	report.Checks = append(report.Checks,
		configCheck(store),
		gitCheck(ctx),
		managersCheck(ctx),
		pythonCheck(ctx),
		shellCheck(),
		mcpCheck(cfg),
	)
	report.computeDrift(ctx, cfg)
	if report.Drift != "" {
		report.Checks = append(report.Checks, Check{
			Name:   "config freshness",
			Status: StatusWarn,
			Detail: "recorded environment differs from this machine, run a config reset to refresh",
		})
	} else {
		report.Checks = append(report.Checks, Check{
			Name:   "config freshness",
			Status: StatusOK,
			Detail: "recorded environment matches this machine",
		})
	}
	return report, nil
}

func configCheck(store *config.Store) Check {
	return Check{Name: "config file", Status: StatusOK, Detail: store.Path()}
}

func gitCheck(ctx context.Context) Check {
	version, ok := sysinfo.ToolVersion(ctx, "git")
	if !ok {
		return Check{Name: "git", Status: StatusFail, Detail: "not found on PATH, git phrases will not run"}
	}
	return Check{Name: "git", Status: StatusOK, Detail: version}
}

func managersCheck(ctx context.Context) Check {
	found := sysinfo.DetectPackageManagers(ctx)
	if len(found) == 0 {
		return Check{Name: "package managers", Status: StatusWarn, Detail: "none of npm, yarn, pnpm found on PATH"}
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %s", name, found[name]))
	}
	return Check{Name: "package managers", Status: StatusOK, Detail: strings.Join(parts, ", ")}
}

func pythonCheck(ctx context.Context) Check {
	for _, exe := range []string{"python3", "python"} {
		if _, err := exec.LookPath(exe); err != nil {
			continue
		}
		version, ok := sysinfo.ToolVersion(ctx, exe)
		if !ok {
			version = exe
		}
		return Check{Name: "python", Status: StatusOK, Detail: version}
	}
	return Check{Name: "python", Status: StatusWarn, Detail: "not found on PATH, python phrases will not run"}
}

func shellCheck() Check {
	shell := sysinfo.ShellName()
	if shell == "" {
		return Check{Name: "shell", Status: StatusWarn, Detail: "could not determine login shell"}
	}

	detail := shell
	if rc := sysinfo.RCFile(shell); rc != "" {
		detail = fmt.Sprintf("%s (aliases go in %s)", shell, rc)
	}
	return Check{Name: "shell", Status: StatusOK, Detail: detail}
}

func mcpCheck(cfg *config.Config) Check {
	n := len(cfg.MCPServers)
	if n == 0 {
		return Check{Name: "mcp servers", Status: StatusOK, Detail: "none configured"}
	}
	return Check{
		Name:   "mcp servers",
		Status: StatusOK,
		Detail: fmt.Sprintf("%d configured, verify with the mcp check command", n),
	}
}

// computeDrift diffs the environment recorded in the config file
// against a fresh probe of this machine.
func (r *Report) computeDrift(ctx context.Context, cfg *config.Config) {
	recorded := environmentText(cfg.System, cfg.PackageManagers)

	live := sysinfo.Detect()
	detected := environmentText(config.SystemInfo{
		OS:    live.OS,
		Arch:  live.Arch,
		Shell: live.Shell,
	}, sysinfo.DetectPackageManagers(ctx))

	if recorded == detected {
		return
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(recorded, detected)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var text strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
			r.Additions += countLines(d.Text)
		case diffmatchpatch.DiffDelete:
			prefix = "- "
			r.Deletions += countLines(d.Text)
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			text.WriteString(prefix)
			text.WriteString(line)
			text.WriteByte('\n')
		}
	}
	r.Drift = text.String()
}

// environmentText renders system info and manager versions as one
// line per fact, stable across runs so diffs stay minimal.
func environmentText(sys config.SystemInfo, managers map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "os: %s\n", sys.OS)
	fmt.Fprintf(&b, "arch: %s\n", sys.Arch)
	fmt.Fprintf(&b, "shell: %s\n", sys.Shell)

	names := make([]string, 0, len(managers))
	for name := range managers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s\n", name, managers[name])
	}
	return b.String()
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	lines := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		lines++
	}
	return lines
}
