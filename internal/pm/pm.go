// Package pm resolves which JavaScript package manager a directory
// uses and translates generic actions into manager-native commands.
package pm

import (
	"os"
	"path/filepath"

	"github.com/vibe-cli/vibe/internal/logging"
)

// Manager is a JavaScript package manager.
type Manager string

const (
	Npm  Manager = "npm"
	Yarn Manager = "yarn"
	Pnpm Manager = "pnpm"
)

// Detect probes dir for lockfiles and returns the manager that owns
// the project: yarn.lock wins over pnpm-lock.yaml, and anything else,
// including stat failures, falls back to npm. The probe runs fresh on
// every call; lockfiles appear and disappear between invocations.
func Detect(dir string) Manager {
	m := Npm
	switch {
	case fileExists(filepath.Join(dir, "yarn.lock")):
		m = Yarn
	case fileExists(filepath.Join(dir, "pnpm-lock.yaml")):
		m = Pnpm
	}
	logging.Debug().Str("dir", dir).Str("manager", string(m)).Msg("package manager detected")
	return m
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Exe returns the binary name to invoke.
func (m Manager) Exe() string {
	return string(m)
}

// Install returns the bare dependency install command, used when no
// packages are named.
func (m Manager) Install() []string {
	return []string{m.Exe(), "install"}
}

// Add installs the named packages. dev saves them as development
// dependencies and global installs them machine-wide; yarn spells both
// differently from npm and pnpm.
func (m Manager) Add(pkgs []string, dev, global bool) []string {
	var argv []string
	switch m {
	case Yarn:
		argv = []string{"yarn"}
		if global {
			argv = append(argv, "global")
		}
		argv = append(argv, "add")
		if dev {
			argv = append(argv, "--dev")
		}
	case Pnpm:
		argv = []string{"pnpm", "add"}
		if dev {
			argv = append(argv, "--save-dev")
		}
		if global {
			argv = append(argv, "-g")
		}
	default:
		argv = []string{"npm", "install"}
		if dev {
			argv = append(argv, "--save-dev")
		}
		if global {
			argv = append(argv, "-g")
		}
	}
	return append(argv, pkgs...)
}

// Remove uninstalls the named packages.
func (m Manager) Remove(pkgs []string) []string {
	verb := "remove"
	if m == Npm {
		verb = "uninstall"
	}
	return append([]string{m.Exe(), verb}, pkgs...)
}

// Update upgrades the named packages, or everything when pkgs is
// empty.
func (m Manager) Update(pkgs []string) []string {
	verb := "update"
	if m == Yarn {
		verb = "upgrade"
	}
	return append([]string{m.Exe(), verb}, pkgs...)
}

// RunScript runs a package.json script. yarn invokes scripts directly
// without the run verb.
func (m Manager) RunScript(script string, args []string) []string {
	argv := []string{m.Exe()}
	if m != Yarn {
		argv = append(argv, "run")
	}
	argv = append(argv, script)
	return append(argv, args...)
}
