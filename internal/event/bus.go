package event

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Type identifies a kind of event.
type Type string

const (
	CommandResolved  Type = "command.resolved"
	CommandExecuted  Type = "command.executed"
	CommandUnmatched Type = "command.unmatched"
)

// Event is a typed notification with an arbitrary payload.
type Event struct {
	Type Type `json:"type"`
	Data any  `json:"data"`
}

// Subscriber receives events.
type Subscriber func(event Event)

type subscriberEntry struct {
	id uint64
	fn Subscriber
}

// Bus fans events out to subscribers. Direct function calls keep the
// payload types intact; the same events are mirrored onto a watermill
// gochannel, one topic per event type, for consumers that want a
// message stream instead.
type Bus struct {
	mu sync.RWMutex

	pubsub *gochannel.GoChannel

	subscribers map[Type][]subscriberEntry
	global      []subscriberEntry

	nextID uint64
	closed bool
}

// NewBus creates a bus. There is no process-wide instance; the CLI
// builds one per run and closes it when the pipeline finishes, so
// tests never share subscriber state.
func NewBus() *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{
				OutputChannelBuffer: 100,
				Persistent:          false,
			},
			watermill.NopLogger{},
		),
		subscribers: make(map[Type][]subscriberEntry),
	}
}

func (b *Bus) newID() uint64 {
	return atomic.AddUint64(&b.nextID, 1)
}

// Subscribe registers fn for one event type and returns its
// unsubscribe function.
func (b *Bus) Subscribe(t Type, fn Subscriber) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}

	id := b.newID()
	b.subscribers[t] = append(b.subscribers[t], subscriberEntry{id: id, fn: fn})

	return func() {
		b.unsubscribe(t, id)
	}
}

// SubscribeAll registers fn for every event type and returns its
// unsubscribe function.
func (b *Bus) SubscribeAll(fn Subscriber) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}

	id := b.newID()
	b.global = append(b.global, subscriberEntry{id: id, fn: fn})

	return func() {
		b.unsubscribeGlobal(id)
	}
}

func (b *Bus) unsubscribe(t Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[t]
	for i, entry := range subs {
		if entry.id == id {
			b.subscribers[t] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

func (b *Bus) unsubscribeGlobal(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, entry := range b.global {
		if entry.id == id {
			b.global = append(b.global[:i], b.global[i+1:]...)
			break
		}
	}
}

// Publish delivers the event asynchronously, one goroutine per
// subscriber, so a slow subscriber never stalls the publisher.
func (b *Bus) Publish(event Event) {
	subs, ok := b.collect(event.Type)
	if !ok {
		return
	}
	for _, sub := range subs {
		go sub(event)
	}
	b.forward(event)
}

// PublishSync delivers the event in the caller's goroutine and returns
// after every subscriber has run. Use it when the process is about to
// exit and the handlers must finish first.
func (b *Bus) PublishSync(event Event) {
	subs, ok := b.collect(event.Type)
	if !ok {
		return
	}
	for _, sub := range subs {
		sub(event)
	}
	b.forward(event)
}

// collect snapshots the subscriber list under the read lock.
func (b *Bus) collect(t Type) ([]Subscriber, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, false
	}
	subs := make([]Subscriber, 0, len(b.subscribers[t])+len(b.global))
	for _, entry := range b.subscribers[t] {
		subs = append(subs, entry.fn)
	}
	for _, entry := range b.global {
		subs = append(subs, entry.fn)
	}
	return subs, true
}

// forward mirrors the event onto the watermill topic named after its
// type. Dropped silently when nothing listens or the payload does not
// marshal.
func (b *Bus) forward(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	_ = b.pubsub.Publish(string(event.Type), msg)
}

// Close shuts the bus down; further publishes and subscribes are
// no-ops.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.subscribers = make(map[Type][]subscriberEntry)
	b.global = nil
	b.mu.Unlock()

	return b.pubsub.Close()
}

// PubSub exposes the underlying watermill channel so callers can
// consume events as a message stream.
func (b *Bus) PubSub() *gochannel.GoChannel {
	return b.pubsub
}
