package command

import (
	"fmt"
	"strings"

	"github.com/vibe-cli/vibe/internal/shell"
)

// Builtin returns the merged builtin table. Merge order is git, then
// python, then node: the node table comes last so the package-manager
// verbs own the bare phrases (add, install, remove, run, test) while
// git and python keep their qualified ones.
func Builtin() *Table {
	t := New("builtin")
	t.Merge(GitTable())
	t.Merge(PythonTable())
	t.Merge(NodeTable())
	return t
}

// The builtin tables are compile-time constants, so construction
// failures there are programmer errors and panic via these helpers.

func argv(words ...string) Template {
	t, err := NewArgv(words...)
	if err != nil {
		panic(err)
	}
	return t
}

func sh(line string) Template {
	t, err := NewShell(line)
	if err != nil {
		panic(err)
	}
	return t
}

func gen(fn Generator) Template {
	t, err := NewGenerator(fn)
	if err != nil {
		panic(err)
	}
	return t
}

// oneArg builds a generator that requires a remainder and passes it to
// build as a single argument, spaces and all.
func oneArg(what string, build func(arg string) []string) Template {
	return gen(func(remainder string) (Invocation, error) {
		if remainder == "" {
			return Invocation{}, fmt.Errorf("needs %s", what)
		}
		return Invocation{Argv: build(remainder)}, nil
	})
}

// optArg builds a generator with a fallback command for an empty
// remainder.
func optArg(withArg func(arg string) []string, without ...string) Template {
	return gen(func(remainder string) (Invocation, error) {
		if remainder == "" {
			return Invocation{Argv: append([]string(nil), without...)}, nil
		}
		return Invocation{Argv: withArg(remainder)}, nil
	})
}

// joinSplit builds a generator that shell-splits the remainder and
// appends the words to prefix, so quoted arguments survive as single
// words.
func joinSplit(what string, prefix ...string) Template {
	return gen(func(remainder string) (Invocation, error) {
		words, err := splitArgs(remainder)
		if err != nil {
			return Invocation{}, err
		}
		if len(words) == 0 {
			return Invocation{}, fmt.Errorf("needs %s", what)
		}
		return Invocation{Argv: append(append([]string(nil), prefix...), words...)}, nil
	})
}

// splitArgs splits a remainder into words, honoring quotes. An empty
// remainder yields no words.
func splitArgs(remainder string) ([]string, error) {
	if strings.TrimSpace(remainder) == "" {
		return nil, nil
	}
	return shell.Split(remainder)
}
