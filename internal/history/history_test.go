package history

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-cli/vibe/internal/config"
	"github.com/vibe-cli/vibe/internal/event"
)

func TestRecordAssignsIDAndTimestamp(t *testing.T) {
	rec := NewRecorder(t.TempDir())
	ctx := context.Background()

	entry, err := rec.Record(ctx, Entry{
		Input:   "check status",
		Phrase:  "check status",
		Source:  "git",
		Command: "git status",
	})
	require.NoError(t, err)
	assert.Len(t, entry.ID, 26)
	assert.False(t, entry.Timestamp.IsZero())

	entries, err := rec.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "git status", entries[0].Command)
}

func TestListNewestFirst(t *testing.T) {
	rec := NewRecorder(t.TempDir())
	ctx := context.Background()

	for _, phrase := range []string{"first", "second", "third"} {
		_, err := rec.Record(ctx, Entry{Phrase: phrase})
		require.NoError(t, err)
	}

	entries, err := rec.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Phrase)
	assert.Equal(t, "second", entries[1].Phrase)
	assert.Equal(t, "first", entries[2].Phrase)
}

func TestListLimit(t *testing.T) {
	rec := NewRecorder(t.TempDir())
	ctx := context.Background()

	for _, phrase := range []string{"a", "b", "c", "d", "e"} {
		_, err := rec.Record(ctx, Entry{Phrase: phrase})
		require.NoError(t, err)
	}

	entries, err := rec.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e", entries[0].Phrase)
	assert.Equal(t, "d", entries[1].Phrase)
}

func TestListEmpty(t *testing.T) {
	rec := NewRecorder(t.TempDir())

	entries, err := rec.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClear(t *testing.T) {
	rec := NewRecorder(t.TempDir())
	ctx := context.Background()

	_, err := rec.Record(ctx, Entry{Phrase: "push"})
	require.NoError(t, err)

	require.NoError(t, rec.Clear(ctx))

	entries, err := rec.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Clearing an empty history is fine.
	require.NoError(t, rec.Clear(ctx))
}

func TestAttachRecordsExecutedEvents(t *testing.T) {
	rec := NewRecorder(t.TempDir())

	bus := event.NewBus()
	defer bus.Close()
	unsub := rec.Attach(bus)
	defer unsub()

	bus.PublishSync(event.Event{
		Type: event.CommandExecuted,
		Data: event.CommandExecutedData{
			Input:    "add express",
			Phrase:   "add",
			Source:   "node",
			Command:  "npm install express",
			ExitCode: 0,
		},
	})

	entries, err := rec.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "add", entries[0].Phrase)
	assert.Equal(t, "npm install express", entries[0].Command)

	// Events of other types are ignored.
	bus.PublishSync(event.Event{Type: event.CommandResolved, Data: event.CommandResolvedData{}})
	entries, err = rec.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSenderDisabledByDefault(t *testing.T) {
	sender := NewSender(config.Telemetry{}, "1.0.0")
	assert.False(t, sender.Enabled())
	assert.NoError(t, sender.Send(context.Background(), Entry{Phrase: "push"}))
}

func TestSenderRequiresEndpoint(t *testing.T) {
	sender := NewSender(config.Telemetry{Enabled: true}, "1.0.0")
	assert.False(t, sender.Enabled())
}

func TestSenderPostsAnonymizedPayload(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := NewSender(config.Telemetry{Enabled: true, Endpoint: server.URL}, "1.2.3")
	require.True(t, sender.Enabled())

	entry := Entry{
		ID:       "01TEST",
		Input:    "commit with message secret stuff",
		Phrase:   "commit with message",
		Source:   "git",
		Command:  "git commit -m secret stuff",
		ExitCode: 0,
	}
	require.NoError(t, sender.Send(context.Background(), entry))

	assert.Equal(t, "commit with message", got["phrase"])
	assert.Equal(t, "git", got["source"])
	assert.Equal(t, "1.2.3", got["version"])

	// Raw input and the expanded command never leave the machine.
	_, hasInput := got["input"]
	_, hasCommand := got["command"]
	assert.False(t, hasInput)
	assert.False(t, hasCommand)
}

func TestSenderAttach(t *testing.T) {
	received := make(chan struct{}, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- struct{}{}
	}))
	defer server.Close()

	sender := NewSender(config.Telemetry{Enabled: true, Endpoint: server.URL}, "1.0.0")

	bus := event.NewBus()
	defer bus.Close()
	unsub := sender.Attach(bus)
	defer unsub()

	bus.PublishSync(event.Event{
		Type: event.CommandExecuted,
		Data: event.CommandExecutedData{Phrase: "push", ExitCode: 0},
	})

	select {
	case <-received:
	default:
		t.Fatal("telemetry endpoint was not called")
	}
}

func TestSenderUnreachableEndpoint(t *testing.T) {
	sender := NewSender(config.Telemetry{Enabled: true, Endpoint: "http://127.0.0.1:1/vibe"}, "1.0.0")
	require.True(t, sender.Enabled())

	err := sender.Send(context.Background(), Entry{Phrase: "push"})
	assert.Error(t, err)
}
