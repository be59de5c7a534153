package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePack(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phrases.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPacksMissingFile(t *testing.T) {
	tbl, err := LoadPacks(filepath.Join(t.TempDir(), "phrases.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
}

func TestLoadPacksPlainStringBecomesArgv(t *testing.T) {
	path := writePack(t, `
phrases:
  ship it: git push origin main
`)
	tbl, err := LoadPacks(path)
	require.NoError(t, err)

	res, err := tbl.Resolve("ship it")
	require.NoError(t, err)
	assert.False(t, res.Invocation.UsesShell())
	assert.Equal(t, []string{"git", "push", "origin", "main"}, res.Invocation.Argv)
	assert.Equal(t, "user", res.Source)
}

func TestLoadPacksShellFeaturesBecomeShell(t *testing.T) {
	path := writePack(t, `
phrases:
  nuke: git clean -fdx && git reset --hard
  save log: git log --oneline > log.txt
`)
	tbl, err := LoadPacks(path)
	require.NoError(t, err)

	res, err := tbl.Resolve("nuke")
	require.NoError(t, err)
	assert.True(t, res.Invocation.UsesShell())
	assert.Equal(t, "git clean -fdx && git reset --hard", res.Invocation.ShellLine)

	res, err = tbl.Resolve("save log")
	require.NoError(t, err)
	assert.True(t, res.Invocation.UsesShell())
}

func TestLoadPacksListBecomesArgvVerbatim(t *testing.T) {
	path := writePack(t, `
phrases:
  greet: ["echo", "hello there"]
`)
	tbl, err := LoadPacks(path)
	require.NoError(t, err)

	res, err := tbl.Resolve("greet")
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "hello there"}, res.Invocation.Argv)
}

func TestLoadPacksSkipsBadEntries(t *testing.T) {
	path := writePack(t, `
phrases:
  good: git status
  bad: ""
  worse: {nested: map}
`)
	tbl, err := LoadPacks(path)
	require.NoError(t, err)

	assert.Equal(t, 1, tbl.Len())
	_, ok := tbl.Get("good")
	assert.True(t, ok)
}

func TestLoadPacksInvalidYAML(t *testing.T) {
	path := writePack(t, "phrases: [not: a: map")
	_, err := LoadPacks(path)
	assert.Error(t, err)
}

func TestLoadPacksShadowBuiltins(t *testing.T) {
	path := writePack(t, `
phrases:
  status: git status --short --branch
`)
	user, err := LoadPacks(path)
	require.NoError(t, err)

	tbl := Builtin()
	tbl.Merge(user)

	res, err := tbl.Resolve("status")
	require.NoError(t, err)
	assert.Equal(t, []string{"git", "status", "--short", "--branch"}, res.Invocation.Argv)
	assert.Equal(t, "user", res.Source)
}
