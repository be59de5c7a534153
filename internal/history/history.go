// Package history records executed commands so users can review what
// their phrases actually ran.
package history

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/vibe-cli/vibe/internal/event"
	"github.com/vibe-cli/vibe/internal/logging"
	"github.com/vibe-cli/vibe/internal/storage"
)

// Entry is one recorded invocation.
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Input      string    `json:"input"`
	Phrase     string    `json:"phrase"`
	Source     string    `json:"source"`
	Command    string    `json:"command"`
	ExitCode   int       `json:"exitCode"`
	DurationMS int64     `json:"durationMs,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Recorder persists entries under a data directory. Construct one and
// pass it where needed; there is no package-level instance.
type Recorder struct {
	store *storage.Store
}

// NewRecorder creates a recorder rooted at dataDir.
func NewRecorder(dataDir string) *Recorder {
	return &Recorder{store: storage.New(dataDir)}
}

// Record persists the entry, assigning an ID and timestamp when they
// are empty. ULID keys make directory order chronological.
func (r *Recorder) Record(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = ulid.Make().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if err := r.store.Put(ctx, []string{"entries", entry.ID}, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns recorded entries, newest first. A limit of zero or
// less returns everything. Unreadable entries are skipped.
func (r *Recorder) List(ctx context.Context, limit int) ([]Entry, error) {
	keys, err := r.store.List(ctx, []string{"entries"})
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(keys) > limit {
		keys = keys[len(keys)-limit:]
	}

	entries := make([]Entry, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		var entry Entry
		if err := r.store.Get(ctx, []string{"entries", keys[i]}, &entry); err != nil {
			logging.Debug().Str("key", keys[i]).Err(err).Msg("skipping unreadable history entry")
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Clear deletes every recorded entry.
func (r *Recorder) Clear(ctx context.Context) error {
	keys, err := r.store.List(ctx, []string{"entries"})
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := r.store.Delete(ctx, []string{"entries", key}); err != nil {
			return err
		}
	}
	return nil
}

// Attach subscribes the recorder to command.executed events on bus
// and returns the unsubscribe function. Recording failures are logged
// and never propagate; history must not break the command itself.
func (r *Recorder) Attach(bus *event.Bus) func() {
	return bus.Subscribe(event.CommandExecuted, func(e event.Event) {
		data, ok := e.Data.(event.CommandExecutedData)
		if !ok {
			return
		}
		entry := Entry{
			Input:      data.Input,
			Phrase:     data.Phrase,
			Source:     data.Source,
			Command:    data.Command,
			ExitCode:   data.ExitCode,
			DurationMS: data.DurationMS,
			Error:      data.Error,
		}
		if _, err := r.Record(context.Background(), entry); err != nil {
			logging.Warn().Err(err).Msg("failed to record history entry")
		}
	})
}
