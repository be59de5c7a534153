package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchTable(t *testing.T) *Table {
	t.Helper()
	tbl := New("test")
	entries := map[string]Template{
		"add":        argv("npm", "install"),
		"add dev":    argv("npm", "install", "--save-dev"),
		"add global": argv("npm", "install", "-g"),
		"status":     argv("git", "status"),
		"push":       argv("git", "push"),
		"push all":   argv("git", "push", "--all"),
	}
	for phrase, tpl := range entries {
		require.NoError(t, tbl.Register(phrase, tpl))
	}
	return tbl
}

func TestMatchEveryPhraseMatchesItself(t *testing.T) {
	tbl := matchTable(t)
	for _, phrase := range tbl.Phrases() {
		m, ok := tbl.Match(phrase)
		require.True(t, ok, "phrase %q should match itself", phrase)
		assert.Equal(t, phrase, m.Entry.Phrase)
		assert.Equal(t, "", m.Remainder)
	}
}

func TestMatchSeparatedRemainder(t *testing.T) {
	tbl := matchTable(t)
	m, ok := tbl.Match("status --short please")
	require.True(t, ok)
	assert.Equal(t, "status", m.Entry.Phrase)
	assert.Equal(t, "--short please", m.Remainder)
}

func TestMatchExactBeatsLongerAlternatives(t *testing.T) {
	tbl := matchTable(t)
	m, ok := tbl.Match("add")
	require.True(t, ok)
	assert.Equal(t, "add", m.Entry.Phrase)
	assert.Equal(t, "", m.Remainder)
}

func TestMatchLongestPhraseWins(t *testing.T) {
	tbl := matchTable(t)

	m, ok := tbl.Match("add dev express")
	require.True(t, ok)
	assert.Equal(t, "add dev", m.Entry.Phrase, `"add dev" is more specific than "add"`)
	assert.Equal(t, "express", m.Remainder)

	m, ok = tbl.Match("add global typescript")
	require.True(t, ok)
	assert.Equal(t, "add global", m.Entry.Phrase)
	assert.Equal(t, "typescript", m.Remainder)

	m, ok = tbl.Match("add express")
	require.True(t, ok)
	assert.Equal(t, "add", m.Entry.Phrase)
	assert.Equal(t, "express", m.Remainder)
}

func TestMatchBarePrefix(t *testing.T) {
	tbl := matchTable(t)
	m, ok := tbl.Match("pushall")
	require.True(t, ok)
	assert.Equal(t, "push", m.Entry.Phrase)
	assert.Equal(t, "all", m.Remainder)
}

func TestMatchSeparatedBeatsBarePrefix(t *testing.T) {
	tbl := New("test")
	require.NoError(t, tbl.Register("pu", argv("x")))
	require.NoError(t, tbl.Register("push", argv("git", "push")))

	// "push all" continues "push" after a space and "pu" with no
	// separator; the separated match wins even though both fit.
	m, ok := tbl.Match("push all extras")
	require.True(t, ok)
	assert.Equal(t, "push", m.Entry.Phrase)
	assert.Equal(t, "all extras", m.Remainder)
}

func TestMatchNormalizesInput(t *testing.T) {
	tbl := matchTable(t)
	m, ok := tbl.Match("  Add   DEV   express  ")
	require.True(t, ok)
	assert.Equal(t, "add dev", m.Entry.Phrase)
	assert.Equal(t, "express", m.Remainder)
}

func TestMatchMiss(t *testing.T) {
	tbl := matchTable(t)

	_, ok := tbl.Match("nonexistent thing")
	assert.False(t, ok)

	_, ok = tbl.Match("")
	assert.False(t, ok)

	_, ok = tbl.Match("   ")
	assert.False(t, ok)
}

func TestMatchIsPure(t *testing.T) {
	tbl := matchTable(t)
	before := tbl.Len()

	tbl.Match("add dev express")
	tbl.Match("nonexistent thing")

	assert.Equal(t, before, tbl.Len())
	_, ok := tbl.Get("nonexistent thing")
	assert.False(t, ok)
}
