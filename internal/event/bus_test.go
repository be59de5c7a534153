package event

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBusSubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var received Event
	var wg sync.WaitGroup
	wg.Add(1)

	unsub := bus.Subscribe(CommandResolved, func(e Event) {
		received = e
		wg.Done()
	})
	defer unsub()

	bus.Publish(Event{Type: CommandResolved, Data: CommandResolvedData{Phrase: "check status"}})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if received.Type != CommandResolved {
			t.Errorf("Type = %v, want CommandResolved", received.Type)
		}
		data, ok := received.Data.(CommandResolvedData)
		if !ok || data.Phrase != "check status" {
			t.Errorf("Data = %#v, want resolved phrase", received.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBusSubscribeAll(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var count int32
	var wg sync.WaitGroup
	wg.Add(3)

	unsub := bus.SubscribeAll(func(e Event) {
		atomic.AddInt32(&count, 1)
		wg.Done()
	})
	defer unsub()

	bus.Publish(Event{Type: CommandResolved})
	bus.Publish(Event{Type: CommandExecuted})
	bus.Publish(Event{Type: CommandUnmatched})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if atomic.LoadInt32(&count) != 3 {
			t.Errorf("count = %d, want 3", count)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for events")
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var count int32
	unsub := bus.Subscribe(CommandExecuted, func(e Event) {
		atomic.AddInt32(&count, 1)
	})

	bus.PublishSync(Event{Type: CommandExecuted})
	if atomic.LoadInt32(&count) != 1 {
		t.Errorf("count = %d before unsubscribe, want 1", count)
	}

	unsub()

	bus.PublishSync(Event{Type: CommandExecuted})
	if atomic.LoadInt32(&count) != 1 {
		t.Errorf("count = %d after unsubscribe, want 1", count)
	}
}

func TestBusPublishSyncCompletesBeforeReturn(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var received []Type
	bus.Subscribe(CommandResolved, func(e Event) {
		received = append(received, e.Type)
	})
	bus.Subscribe(CommandExecuted, func(e Event) {
		received = append(received, e.Type)
	})

	bus.PublishSync(Event{Type: CommandResolved})
	bus.PublishSync(Event{Type: CommandExecuted})

	if len(received) != 2 {
		t.Fatalf("received %d events, want 2", len(received))
	}
	if received[0] != CommandResolved || received[1] != CommandExecuted {
		t.Errorf("order = %v", received)
	}
}

func TestBusTypeFiltering(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var resolved, executed int32
	bus.Subscribe(CommandResolved, func(e Event) {
		atomic.AddInt32(&resolved, 1)
	})
	bus.Subscribe(CommandExecuted, func(e Event) {
		atomic.AddInt32(&executed, 1)
	})

	bus.PublishSync(Event{Type: CommandResolved})
	bus.PublishSync(Event{Type: CommandResolved})
	bus.PublishSync(Event{Type: CommandExecuted})

	if atomic.LoadInt32(&resolved) != 2 {
		t.Errorf("resolved = %d, want 2", resolved)
	}
	if atomic.LoadInt32(&executed) != 1 {
		t.Errorf("executed = %d, want 1", executed)
	}
}

func TestBusMultipleSubscribers(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var count int32
	for i := 0; i < 3; i++ {
		bus.Subscribe(CommandExecuted, func(e Event) {
			atomic.AddInt32(&count, 1)
		})
	}

	bus.PublishSync(Event{Type: CommandExecuted})

	if atomic.LoadInt32(&count) != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestBusNoSubscribers(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	bus.Publish(Event{Type: CommandResolved})
	bus.PublishSync(Event{Type: CommandResolved})
}

func TestBusClosedBusDropsEverything(t *testing.T) {
	bus := NewBus()

	var count int32
	bus.Subscribe(CommandExecuted, func(e Event) {
		atomic.AddInt32(&count, 1)
	})

	if err := bus.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	bus.PublishSync(Event{Type: CommandExecuted})
	if atomic.LoadInt32(&count) != 0 {
		t.Errorf("count = %d after close, want 0", count)
	}

	// Subscribing after close is a no-op.
	unsub := bus.Subscribe(CommandExecuted, func(e Event) {
		atomic.AddInt32(&count, 1)
	})
	unsub()
}

func TestBusWatermillMirror(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	messages, err := bus.PubSub().Subscribe(ctx, string(CommandExecuted))
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	bus.PublishSync(Event{
		Type: CommandExecuted,
		Data: CommandExecutedData{Phrase: "push", ExitCode: 0},
	})

	select {
	case msg := <-messages:
		var decoded struct {
			Type Type `json:"type"`
			Data struct {
				Phrase string `json:"phrase"`
			} `json:"data"`
		}
		if err := json.Unmarshal(msg.Payload, &decoded); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if decoded.Type != CommandExecuted || decoded.Data.Phrase != "push" {
			t.Errorf("payload = %s", msg.Payload)
		}
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("timed out waiting for mirrored message")
	}
}

func TestBusConcurrentSubscribePublish(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var count int32
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsub := bus.Subscribe(CommandExecuted, func(e Event) {
				atomic.AddInt32(&count, 1)
			})
			defer unsub()

			for j := 0; j < 10; j++ {
				bus.PublishSync(Event{Type: CommandExecuted})
			}
		}()
	}

	wg.Wait()
	if atomic.LoadInt32(&count) == 0 {
		t.Error("no events delivered")
	}
}
