// Package testutil provides in-memory test doubles shared across packages.
package testutil

import (
	"errors"
	"sync"
)

// Event is one named send captured by a RecorderChannel.
type Event struct {
	Name    string
	Payload any
}

// RecorderChannel satisfies the lobby Channel interface and records every
// send, so tests can assert on broadcast behavior without a live socket.
type RecorderChannel struct {
	mu     sync.Mutex
	id     string
	events []Event
	stale  bool
}

// NewChannel creates a RecorderChannel with the given connection id.
func NewChannel(id string) *RecorderChannel {
	return &RecorderChannel{id: id}
}

func (c *RecorderChannel) ID() string { return c.id }

// Send records the event. After GoStale it records nothing and returns an
// error, imitating a dead connection.
func (c *RecorderChannel) Send(event string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale {
		return errors.New("channel is stale")
	}
	c.events = append(c.events, Event{Name: event, Payload: payload})
	return nil
}

// GoStale makes every subsequent Send fail.
func (c *RecorderChannel) GoStale() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale = true
}

// Events returns a copy of everything recorded so far.
func (c *RecorderChannel) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// EventNames returns just the recorded event names, in order.
func (c *RecorderChannel) EventNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.events))
	for _, e := range c.events {
		names = append(names, e.Name)
	}
	return names
}

// Last returns the most recent event, if any.
func (c *RecorderChannel) Last() (Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.events) == 0 {
		return Event{}, false
	}
	return c.events[len(c.events)-1], true
}

// CountOf returns how many times the named event was recorded.
func (c *RecorderChannel) CountOf(event string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.events {
		if e.Name == event {
			n++
		}
	}
	return n
}

// Reset discards everything recorded so far.
func (c *RecorderChannel) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}
