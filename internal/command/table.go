package command

import (
	"fmt"
	"strings"
)

// Entry pairs a registered phrase with its template and the table that
// contributed it.
type Entry struct {
	Phrase   string
	Template Template
	Source   string
}

// Table is an ordered phrase registry. Registration order is
// preserved; re-registering a phrase replaces its template in place,
// so a table merged later shadows an earlier one on collision.
type Table struct {
	name    string
	order   []string
	entries map[string]Entry
}

// New returns an empty table. The name tags entries registered on it
// so merged tables keep their origin.
func New(name string) *Table {
	return &Table{
		name:    name,
		entries: make(map[string]Entry),
	}
}

// Name returns the table's tag.
func (t *Table) Name() string {
	return t.name
}

// Normalize lower-cases input and collapses runs of whitespace, the
// form phrases are registered and matched in.
func Normalize(input string) string {
	return strings.Join(strings.Fields(strings.ToLower(input)), " ")
}

// Register adds a phrase. Phrases are normalized; empty phrases and
// invalid templates are rejected. Registering an existing phrase
// replaces its template and keeps its original position.
func (t *Table) Register(phrase string, tpl Template) error {
	key := Normalize(phrase)
	if key == "" {
		return fmt.Errorf("empty phrase")
	}
	if !tpl.valid() {
		return fmt.Errorf("phrase %q: %w", key, ErrInvalidTemplate)
	}
	t.insert(Entry{Phrase: key, Template: tpl, Source: t.name})
	return nil
}

func (t *Table) insert(e Entry) {
	if _, exists := t.entries[e.Phrase]; !exists {
		t.order = append(t.order, e.Phrase)
	}
	t.entries[e.Phrase] = e
}

// Merge copies every entry of src into t in src's order. Colliding
// phrases take src's template, keeping t's original position. Entries
// keep the source tag of the table that defined them.
func (t *Table) Merge(src *Table) {
	for _, key := range src.order {
		t.insert(src.entries[key])
	}
}

// Get returns the entry registered for an exact phrase.
func (t *Table) Get(phrase string) (Entry, bool) {
	e, ok := t.entries[Normalize(phrase)]
	return e, ok
}

// Len returns the number of registered phrases.
func (t *Table) Len() int {
	return len(t.order)
}

// Entries returns every entry in registration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.entries[key])
	}
	return out
}

// Phrases returns every registered phrase in registration order.
func (t *Table) Phrases() []string {
	return append([]string(nil), t.order...)
}
