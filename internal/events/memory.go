package events

import (
	"context"
	"sync"
)

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, []byte) error { return nil }
func (NoopPublisher) Close() error                                  { return nil }

type Published struct {
	RoutingKey string
	Payload    []byte
}

// MemoryPublisher keeps published events in order, for tests and local runs.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Published
	Err    error
}

func (m *MemoryPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.events = append(m.events, Published{RoutingKey: routingKey, Payload: payload})
	return nil
}

func (m *MemoryPublisher) Close() error { return nil }

// Events returns a copy of everything published so far.
func (m *MemoryPublisher) Events() []Published {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Published, len(m.events))
	copy(out, m.events)
	return out
}

// Keys returns the routing keys published so far, in order.
func (m *MemoryPublisher) Keys() []string {
	evs := m.Events()
	keys := make([]string, len(evs))
	for i, e := range evs {
		keys[i] = e.RoutingKey
	}
	return keys
}
