package history

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/vibe-cli/vibe/internal/config"
	"github.com/vibe-cli/vibe/internal/event"
	"github.com/vibe-cli/vibe/internal/logging"
)

const telemetryTimeout = 2 * time.Second

// telemetryPayload is what actually leaves the machine. Raw input and
// the expanded command stay local; only the matched phrase and outcome
// are reported.
type telemetryPayload struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Phrase     string    `json:"phrase"`
	Source     string    `json:"source"`
	ExitCode   int       `json:"exitCode"`
	DurationMS int64     `json:"durationMs,omitempty"`
	OS         string    `json:"os"`
	Arch       string    `json:"arch"`
	Version    string    `json:"version"`
}

// Sender posts anonymized usage reports to a configured endpoint.
// Disabled unless the user opted in and set an endpoint.
type Sender struct {
	endpoint string
	version  string
	client   *http.Client
}

// NewSender creates a sender from the telemetry config. When the
// config leaves telemetry off, the sender is inert.
func NewSender(cfg config.Telemetry, version string) *Sender {
	s := &Sender{version: version}
	if cfg.Enabled && cfg.Endpoint != "" {
		s.endpoint = cfg.Endpoint
		s.client = &http.Client{Timeout: telemetryTimeout}
	}
	return s
}

// Enabled reports whether reports will actually be sent.
func (s *Sender) Enabled() bool {
	return s.client != nil
}

// Send posts one report. Best effort: a failed or slow endpoint costs
// at most the client timeout and is only logged. Disabled senders
// return immediately.
func (s *Sender) Send(ctx context.Context, entry Entry) error {
	if !s.Enabled() {
		return nil
	}

	payload := telemetryPayload{
		ID:         entry.ID,
		Timestamp:  entry.Timestamp,
		Phrase:     entry.Phrase,
		Source:     entry.Source,
		ExitCode:   entry.ExitCode,
		DurationMS: entry.DurationMS,
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		Version:    s.version,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Attach subscribes the sender to command.executed events on bus and
// returns the unsubscribe function. Failures are logged at debug; an
// unreachable endpoint must not surface to the user.
func (s *Sender) Attach(bus *event.Bus) func() {
	return bus.Subscribe(event.CommandExecuted, func(e event.Event) {
		data, ok := e.Data.(event.CommandExecutedData)
		if !ok {
			return
		}
		entry := Entry{
			Phrase:     data.Phrase,
			Source:     data.Source,
			ExitCode:   data.ExitCode,
			DurationMS: data.DurationMS,
		}
		if err := s.Send(context.Background(), entry); err != nil {
			logging.Debug().Err(err).Msg("telemetry send failed")
		}
	})
}
