package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vibe-cli/vibe/internal/shell"
)

// Kind discriminates the three template forms.
type Kind uint8

const (
	// KindArgv is a fixed argument vector, executed without a shell.
	KindArgv Kind = iota
	// KindShell is a fixed command line, executed through the shell.
	KindShell
	// KindGenerator builds an invocation from the input remainder at
	// resolution time.
	KindGenerator
)

func (k Kind) String() string {
	switch k {
	case KindArgv:
		return "argv"
	case KindShell:
		return "shell"
	case KindGenerator:
		return "generator"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Invocation is a fully resolved command, ready to execute. Exactly
// one of Argv and ShellLine is set.
type Invocation struct {
	Argv      []string
	ShellLine string
}

// UsesShell reports whether the invocation needs shell interpretation.
func (inv Invocation) UsesShell() bool {
	return inv.ShellLine != ""
}

// Display renders the invocation for user-facing output.
func (inv Invocation) Display() string {
	if inv.UsesShell() {
		return inv.ShellLine
	}
	return shell.Join(inv.Argv)
}

// Program returns the executable the invocation targets, best effort
// for shell lines.
func (inv Invocation) Program() string {
	if inv.UsesShell() {
		if p, err := shell.Parse(inv.ShellLine); err == nil {
			return p.Program
		}
		return ""
	}
	if len(inv.Argv) > 0 {
		return inv.Argv[0]
	}
	return ""
}

// Generator builds an invocation from the free text that followed the
// matched phrase. The remainder may be empty; the generator decides
// whether that is acceptable.
type Generator func(remainder string) (Invocation, error)

// Template is the registered definition behind a phrase. The zero
// value is invalid; build templates with NewArgv, NewShell, or
// NewGenerator, which validate at registration time so resolution
// never meets a malformed template.
type Template struct {
	kind  Kind
	argv  []string
	shell string
	gen   Generator
}

// ErrInvalidTemplate reports a template definition rejected at
// registration.
var ErrInvalidTemplate = errors.New("invalid template")

// NewArgv builds a fixed argument vector template.
func NewArgv(words ...string) (Template, error) {
	if len(words) == 0 || strings.TrimSpace(words[0]) == "" {
		return Template{}, fmt.Errorf("%w: empty argument vector", ErrInvalidTemplate)
	}
	return Template{kind: KindArgv, argv: words}, nil
}

// NewShell builds a fixed shell line template. Use it only when the
// line needs shell features; plain commands belong in argv form.
func NewShell(line string) (Template, error) {
	if strings.TrimSpace(line) == "" {
		return Template{}, fmt.Errorf("%w: empty shell line", ErrInvalidTemplate)
	}
	return Template{kind: KindShell, shell: line}, nil
}

// NewGenerator builds a template that computes its invocation from the
// remainder.
func NewGenerator(fn Generator) (Template, error) {
	if fn == nil {
		return Template{}, fmt.Errorf("%w: nil generator", ErrInvalidTemplate)
	}
	return Template{kind: KindGenerator, gen: fn}, nil
}

// Kind returns the template's form.
func (t Template) Kind() Kind {
	return t.kind
}

// Describe renders a static template for listings. Generators have no
// static form and return "".
func (t Template) Describe() string {
	switch t.kind {
	case KindArgv:
		return shell.Join(t.argv)
	case KindShell:
		return t.shell
	}
	return ""
}

func (t Template) valid() bool {
	switch t.kind {
	case KindArgv:
		return len(t.argv) > 0
	case KindShell:
		return t.shell != ""
	case KindGenerator:
		return t.gen != nil
	}
	return false
}

// expand turns the template into a concrete invocation. Static forms
// discard the remainder; only generators consume it. A panicking
// generator is contained and reported as an error.
func (t Template) expand(remainder string) (inv Invocation, err error) {
	switch t.kind {
	case KindArgv:
		return Invocation{Argv: append([]string(nil), t.argv...)}, nil
	case KindShell:
		return Invocation{ShellLine: t.shell}, nil
	case KindGenerator:
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("generator panicked: %v", r)
			}
		}()
		return t.gen(remainder)
	}
	return Invocation{}, fmt.Errorf("%w: kind %v", ErrInvalidTemplate, t.kind)
}
