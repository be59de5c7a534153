// Package shell parses command lines with a real bash grammar so the
// rest of the tool can tell plain argv invocations apart from lines
// that need a shell, split generator arguments the way a shell would,
// and quote argv for display.
package shell

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Parsed describes a command line after analysis.
type Parsed struct {
	// Argv holds the words of the line when Plain is true.
	Argv []string
	// Plain reports that the line is a single call with only literal
	// words: no pipes, redirects, operators, expansions, or
	// assignments. Plain lines can run without a shell.
	Plain bool
	// Program is the first word of the first call, best effort, for
	// labeling and history.
	Program string
}

func newParser() *syntax.Parser {
	return syntax.NewParser(
		syntax.Variant(syntax.LangBash),
		syntax.KeepComments(false),
	)
}

// Parse analyzes a command line.
func Parse(command string) (Parsed, error) {
	file, err := newParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return Parsed{}, fmt.Errorf("parse command: %w", err)
	}

	p := Parsed{Program: firstProgram(file)}

	if len(file.Stmts) != 1 {
		return p, nil
	}
	stmt := file.Stmts[0]
	if len(stmt.Redirs) > 0 || stmt.Background || stmt.Negated || stmt.Coprocess {
		return p, nil
	}
	call, ok := stmt.Cmd.(*syntax.CallExpr)
	if !ok || len(call.Assigns) > 0 || len(call.Args) == 0 {
		return p, nil
	}

	argv := make([]string, 0, len(call.Args))
	for _, word := range call.Args {
		lit, ok := literalWord(word)
		if !ok {
			return p, nil
		}
		argv = append(argv, lit)
	}
	p.Argv = argv
	p.Plain = true
	return p, nil
}

// Split breaks a command line into words, keeping quoted groups
// together. Variable references stay as literal text; the result is
// meant for building argv, not for evaluation.
func Split(command string) ([]string, error) {
	file, err := newParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return nil, fmt.Errorf("parse command: %w", err)
	}
	if len(file.Stmts) != 1 {
		return nil, fmt.Errorf("expected a single command, got %d", len(file.Stmts))
	}
	call, ok := file.Stmts[0].Cmd.(*syntax.CallExpr)
	if !ok {
		return nil, fmt.Errorf("expected a plain command")
	}

	words := make([]string, 0, len(call.Args))
	for _, word := range call.Args {
		words = append(words, renderWord(word))
	}
	return words, nil
}

// firstProgram walks the tree for the first call and returns its
// command word.
func firstProgram(file *syntax.File) string {
	var program string
	syntax.Walk(file, func(node syntax.Node) bool {
		if program != "" {
			return false
		}
		if call, ok := node.(*syntax.CallExpr); ok && len(call.Args) > 0 {
			program = renderWord(call.Args[0])
			return false
		}
		return true
	})
	return program
}

// literalWord renders a word and reports whether every part is plain
// text.
func literalWord(word *syntax.Word) (string, bool) {
	var sb strings.Builder
	for _, part := range word.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(p.Value)
		case *syntax.SglQuoted:
			if p.Dollar {
				return "", false
			}
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, qp := range p.Parts {
				lit, ok := qp.(*syntax.Lit)
				if !ok {
					return "", false
				}
				sb.WriteString(lit.Value)
			}
		default:
			return "", false
		}
	}
	return sb.String(), true
}

// renderWord converts a word to text, leaving expansions as
// placeholders rather than evaluating them.
func renderWord(word *syntax.Word) string {
	var sb strings.Builder
	for _, part := range word.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(p.Value)
		case *syntax.SglQuoted:
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, qp := range p.Parts {
				switch dp := qp.(type) {
				case *syntax.Lit:
					sb.WriteString(dp.Value)
				case *syntax.ParamExp:
					sb.WriteString("$" + dp.Param.Value)
				}
			}
		case *syntax.ParamExp:
			sb.WriteString("$" + p.Param.Value)
		case *syntax.CmdSubst:
			sb.WriteString("$()")
		}
	}
	return sb.String()
}

// Quote escapes a single word for safe display inside a shell-style
// string.
func Quote(word string) string {
	quoted, err := syntax.Quote(word, syntax.LangBash)
	if err != nil {
		return fmt.Sprintf("%q", word)
	}
	return quoted
}

// Join renders argv as a display string, quoting words that need it.
func Join(argv []string) string {
	quoted := make([]string, len(argv))
	for i, word := range argv {
		quoted[i] = Quote(word)
	}
	return strings.Join(quoted, " ")
}
