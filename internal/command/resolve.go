package command

import (
	"errors"
	"fmt"
)

// ErrNoMatch reports input that matched no registered phrase.
var ErrNoMatch = errors.New("no matching command")

// ExpandError reports a generator that failed to produce an
// invocation for its remainder.
type ExpandError struct {
	Phrase string
	Err    error
}

func (e *ExpandError) Error() string {
	return fmt.Sprintf("expand %q: %v", e.Phrase, e.Err)
}

func (e *ExpandError) Unwrap() error {
	return e.Err
}

// Resolution is the outcome of turning input into a runnable command.
type Resolution struct {
	Phrase     string
	Remainder  string
	Source     string
	Invocation Invocation
}

// Resolve matches input against the table and expands the winning
// template. Static templates ignore the remainder; generators receive
// the full remainder as one string. Resolving the same input against
// the same table and filesystem state yields identical results.
func (t *Table) Resolve(input string) (Resolution, error) {
	m, ok := t.Match(input)
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %q", ErrNoMatch, Normalize(input))
	}

	inv, err := m.Entry.Template.expand(m.Remainder)
	if err != nil {
		return Resolution{}, &ExpandError{Phrase: m.Entry.Phrase, Err: err}
	}

	return Resolution{
		Phrase:     m.Entry.Phrase,
		Remainder:  m.Remainder,
		Source:     m.Entry.Source,
		Invocation: inv,
	}, nil
}
