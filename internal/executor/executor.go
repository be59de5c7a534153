// Package executor runs resolved invocations as child processes and
// classifies how they end.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/vibe-cli/vibe/internal/command"
	"github.com/vibe-cli/vibe/internal/logging"
)

// Result describes a finished child process.
type Result struct {
	ExitCode int
}

// Success reports a clean zero exit.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// NotFoundError reports that the target program is not on the search
// path, distinct from a program that ran and failed.
type NotFoundError struct {
	Program string
	Err     error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: command not found", e.Program)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ExitError reports a child that ran to completion with a non-zero
// code. It is not a crash; the code is propagated verbatim.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Executor spawns child processes. The zero configuration inherits the
// caller's stdio so interactive tools (editors, login prompts) work
// unchanged.
type Executor struct {
	shell  string
	dir    string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option configures an Executor.
type Option func(*Executor)

// WithShell overrides the shell used for shell-line invocations.
func WithShell(shell string) Option {
	return func(e *Executor) { e.shell = shell }
}

// WithDir runs children in dir instead of the current directory.
func WithDir(dir string) Option {
	return func(e *Executor) { e.dir = dir }
}

// WithStdio redirects the child's streams, mainly for tests.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(e *Executor) {
		e.stdin = stdin
		e.stdout = stdout
		e.stderr = stderr
	}
}

// New returns an executor using the detected platform shell.
func New(opts ...Option) *Executor {
	e := &Executor{
		shell:  detectShell(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// detectShell picks the shell for shell-line execution: $SHELL when it
// is POSIX enough, otherwise a platform default.
func detectShell() string {
	if s := os.Getenv("SHELL"); s != "" {
		if s != "/bin/fish" && s != "/usr/bin/fish" &&
			s != "/bin/nu" && s != "/usr/bin/nu" {
			return s
		}
	}

	if runtime.GOOS == "darwin" {
		return "/bin/zsh"
	}
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return comspec
		}
		return "cmd.exe"
	}

	if bash, err := exec.LookPath("bash"); err == nil {
		return bash
	}
	return "/bin/sh"
}

// Run executes an invocation and blocks until it finishes. Argv
// invocations spawn the program directly with no shell interpretation;
// shell lines go through the platform shell. There are no retries and
// no timeout: one attempt, and a hung child is the caller's problem.
// The child shares the process group, so an interrupt reaches parent
// and child together.
func (e *Executor) Run(ctx context.Context, inv command.Invocation) (Result, error) {
	var cmd *exec.Cmd
	var program string

	if inv.UsesShell() {
		program = e.shell
		flag := "-c"
		if runtime.GOOS == "windows" {
			flag = "/c"
		}
		cmd = exec.CommandContext(ctx, e.shell, flag, inv.ShellLine)
	} else {
		if len(inv.Argv) == 0 {
			return Result{ExitCode: 1}, errors.New("empty invocation")
		}
		program = inv.Argv[0]
		cmd = exec.CommandContext(ctx, inv.Argv[0], inv.Argv[1:]...)
	}

	cmd.Dir = e.dir
	cmd.Env = os.Environ()
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	logging.Debug().
		Str("program", program).
		Bool("shell", inv.UsesShell()).
		Str("command", inv.Display()).
		Msg("spawning")

	err := cmd.Run()
	if err == nil {
		return Result{ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		code := exitErr.ExitCode()
		return Result{ExitCode: code}, &ExitError{Code: code}
	case errors.Is(err, exec.ErrNotFound):
		return Result{ExitCode: 1}, &NotFoundError{Program: program, Err: err}
	default:
		return Result{ExitCode: 1}, fmt.Errorf("run %s: %w", program, err)
	}
}
