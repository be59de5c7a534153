package commands

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-cli/vibe/internal/history"
)

func record(t *testing.T, rec *history.Recorder, entry history.Entry) {
	t.Helper()
	_, err := rec.Record(context.Background(), entry)
	require.NoError(t, err)
}

func TestHistoryEmpty(t *testing.T) {
	setTestEnv(t)

	out, _, err := execute(t, "history")
	require.NoError(t, err)
	assert.Equal(t, "no history yet\n", out)
}

func TestHistoryListsNewestFirst(t *testing.T) {
	paths := setTestEnv(t)
	rec := history.NewRecorder(paths.StoragePath())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record(t, rec, history.Entry{ID: "01AAA", Timestamp: base, Input: "check status", Command: "git status"})
	record(t, rec, history.Entry{ID: "01BBB", Timestamp: base.Add(time.Minute), Input: "push", Command: "git push", ExitCode: 1})
	record(t, rec, history.Entry{ID: "01CCC", Timestamp: base.Add(2 * time.Minute), Input: "run lint", Command: "npm run lint"})

	out, _, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "WHEN")
	assert.Contains(t, out, "INPUT")

	newest := strings.Index(out, "run lint")
	oldest := strings.Index(out, "check status")
	require.GreaterOrEqual(t, newest, 0)
	require.GreaterOrEqual(t, oldest, 0)
	assert.Less(t, newest, oldest)
}

func TestHistoryLimit(t *testing.T) {
	paths := setTestEnv(t)
	defer func() { historyLimit = 20 }()
	rec := history.NewRecorder(paths.StoragePath())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record(t, rec, history.Entry{ID: "01AAA", Timestamp: base, Input: "check status", Command: "git status"})
	record(t, rec, history.Entry{ID: "01BBB", Timestamp: base.Add(time.Minute), Input: "push", Command: "git push"})
	record(t, rec, history.Entry{ID: "01CCC", Timestamp: base.Add(2 * time.Minute), Input: "run lint", Command: "npm run lint"})

	out, _, err := execute(t, "history", "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "run lint")
	assert.Contains(t, out, "push")
	assert.NotContains(t, out, "check status")
}

func TestHistoryShowsErrorOverExitCode(t *testing.T) {
	paths := setTestEnv(t)
	rec := history.NewRecorder(paths.StoragePath())

	record(t, rec, history.Entry{
		Input:    "check status",
		Command:  "git status",
		ExitCode: 1,
		Error:    "git: command not found",
	})

	out, _, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "git: command not found")
}

func TestHistoryClear(t *testing.T) {
	paths := setTestEnv(t)
	rec := history.NewRecorder(paths.StoragePath())
	record(t, rec, history.Entry{Input: "push", Command: "git push"})

	out, _, err := execute(t, "history", "clear")
	require.NoError(t, err)
	assert.Equal(t, "history cleared\n", out)

	entries, err := rec.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
