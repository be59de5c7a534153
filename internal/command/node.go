package command

import (
	"fmt"
	"os"

	"github.com/vibe-cli/vibe/internal/pm"
)

// manager picks the package manager for the current working directory.
// The probe runs at resolution time, never at registration, so moving
// between projects inside one process changes the answer.
func manager() pm.Manager {
	dir, err := os.Getwd()
	if err != nil {
		return pm.Npm
	}
	return pm.Detect(dir)
}

// NodeTable maps package-manager phrases to npm, yarn, or pnpm
// invocations depending on the project's lockfile.
func NodeTable() *Table {
	t := New("node")
	add := func(phrase string, tpl Template) {
		if err := t.Register(phrase, tpl); err != nil {
			panic(err)
		}
	}

	// addPkgs installs named packages. Without packages it degrades to
	// a full dependency install unless a flavor flag was implied, in
	// which case the package name is required.
	addPkgs := func(dev, global bool) Template {
		return gen(func(remainder string) (Invocation, error) {
			words, err := splitArgs(remainder)
			if err != nil {
				return Invocation{}, err
			}
			m := manager()
			if len(words) == 0 {
				if dev || global {
					return Invocation{}, fmt.Errorf("needs a package name")
				}
				return Invocation{Argv: m.Install()}, nil
			}
			return Invocation{Argv: m.Add(words, dev, global)}, nil
		})
	}

	removePkgs := gen(func(remainder string) (Invocation, error) {
		words, err := splitArgs(remainder)
		if err != nil {
			return Invocation{}, err
		}
		if len(words) == 0 {
			return Invocation{}, fmt.Errorf("needs a package name")
		}
		return Invocation{Argv: manager().Remove(words)}, nil
	})

	// script runs a fixed package.json script; trailing input is
	// ignored the way static phrases ignore it.
	script := func(name string) Template {
		return gen(func(string) (Invocation, error) {
			return Invocation{Argv: manager().RunScript(name, nil)}, nil
		})
	}

	runFree := gen(func(remainder string) (Invocation, error) {
		words, err := splitArgs(remainder)
		if err != nil {
			return Invocation{}, err
		}
		if len(words) == 0 {
			return Invocation{Argv: []string{manager().Exe(), "run"}}, nil
		}
		return Invocation{Argv: manager().RunScript(words[0], words[1:])}, nil
	})

	updatePkgs := gen(func(remainder string) (Invocation, error) {
		words, err := splitArgs(remainder)
		if err != nil {
			return Invocation{}, err
		}
		return Invocation{Argv: manager().Update(words)}, nil
	})
	updateAll := gen(func(string) (Invocation, error) {
		return Invocation{Argv: manager().Update(nil)}, nil
	})

	// Project initialization.
	add("init", argv("npm", "init", "-y"))
	add("start node", argv("npm", "init", "-y"))
	add("initialize node", argv("npm", "init", "-y"))
	add("create package", argv("npm", "init", "-y"))
	add("create node project", argv("npm", "init", "-y"))
	add("setup node", argv("npm", "init", "-y"))

	// Package installation.
	add("add", addPkgs(false, false))
	add("add package", addPkgs(false, false))
	add("install", addPkgs(false, false))
	add("install package", addPkgs(false, false))
	add("install all", gen(func(string) (Invocation, error) {
		return Invocation{Argv: manager().Install()}, nil
	}))
	add("i", addPkgs(false, false))
	add("add dev", addPkgs(true, false))
	add("install dev", addPkgs(true, false))
	add("add for development", addPkgs(true, false))
	add("add global", addPkgs(false, true))
	add("install global", addPkgs(false, true))
	add("add globally", addPkgs(false, true))

	// Package removal.
	add("remove", removePkgs)
	add("remove package", removePkgs)
	add("uninstall", removePkgs)
	add("uninstall package", removePkgs)
	add("delete package", removePkgs)

	// Running scripts.
	add("run", runFree)
	add("execute", runFree)
	add("start", script("start"))
	add("dev", script("dev"))
	add("develop", script("dev"))
	add("development", script("dev"))
	add("build", script("build"))
	add("test", script("test"))
	add("lint", script("lint"))
	add("format", script("format"))
	add("deploy", script("deploy"))
	add("preview", script("preview"))
	add("serve", script("serve"))

	// Dependency upkeep.
	add("update", updatePkgs)
	add("upgrade", updatePkgs)
	add("update packages", updateAll)
	add("upgrade packages", updateAll)
	add("outdated", argv("npm", "outdated"))
	add("check updates", argv("npm", "outdated"))
	add("show outdated", argv("npm", "outdated"))
	add("list", argv("npm", "list", "--depth=0"))
	add("list packages", argv("npm", "list", "--depth=0"))
	add("show packages", argv("npm", "list", "--depth=0"))
	add("installed packages", argv("npm", "list", "--depth=0"))

	// Security.
	add("audit", argv("npm", "audit"))
	add("check security", argv("npm", "audit"))
	add("security check", argv("npm", "audit"))
	add("fix vulnerabilities", argv("npm", "audit", "fix"))
	add("fix security", argv("npm", "audit", "fix"))
	add("audit fix", argv("npm", "audit", "fix"))

	// Publishing.
	add("publish", argv("npm", "publish"))
	add("publish package", argv("npm", "publish"))
	add("release", argv("npm", "publish"))
	bump := optArg(func(kind string) []string {
		return []string{"npm", "version", kind}
	}, "npm", "version", "patch")
	add("bump version", bump)
	add("increment version", bump)

	// Registry information and account.
	info := oneArg("a package name", func(pkg string) []string {
		return []string{"npm", "info", pkg}
	})
	add("info", info)
	add("about", info)
	add("details", info)
	add("package info", info)
	add("whoami", argv("npm", "whoami"))
	add("who am i", argv("npm", "whoami"))
	add("login", argv("npm", "login"))
	add("logout", argv("npm", "logout"))
	add("config", optArg(func(key string) []string {
		return []string{"npm", "config", "get", key}
	}, "npm", "config", "list"))
	add("set config", joinSplit("a key and value", "npm", "config", "set"))

	// Cache management.
	add("clean", argv("npm", "cache", "clean", "--force"))
	add("clean cache", argv("npm", "cache", "clean", "--force"))
	add("clear cache", argv("npm", "cache", "clean", "--force"))

	// Dependency inspection; yarn has its own spelling.
	add("why", oneArg("a package name", func(pkg string) []string {
		if manager() == pm.Yarn {
			return []string{"yarn", "why", pkg}
		}
		return []string{"npm", "explain", pkg}
	}))

	// Workspaces.
	workspaces := oneArg("a script name", func(cmd string) []string {
		return []string{manager().Exe(), "workspaces", "run", cmd}
	})
	add("workspaces", workspaces)
	add("run all", workspaces)

	return t
}
