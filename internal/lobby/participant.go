// Package lobby implements the room and connection lifecycle core: the
// room registry, the room aggregate, and the controller that translates
// inbound channel events into membership mutations and broadcasts,
// including grace-period reconnection handling.
package lobby

import (
	"time"

	"github.com/google/uuid"
)

// Channel is the outbound half of a participant's connection. Send must not
// block awaiting acknowledgement; a delivery failure is reported via the
// error and tolerated by callers. ID identifies the underlying connection
// and changes when a participant reconnects.
type Channel interface {
	ID() string
	Send(event string, payload any) error
}

// Participant is a named actor bound to at most one room. The ID is a
// stable identity token issued at first join; the channel (and with it the
// connection id) is replaced on reconnection.
type Participant struct {
	// ID is stable across reconnects and is what clients see in
	// RoomInfo.Players and gameActionReceived.playerId.
	ID     string
	Name   string
	IsHost bool
	// IsBot is always false; the field exists for wire compatibility.
	IsBot bool
	Ready bool
	// Connected is false during the reconnection grace window.
	Connected bool
	// DisconnectedAt is set when Connected flips to false and zeroed on
	// reconnection.
	DisconnectedAt time.Time

	ch Channel
}

func newParticipant(ch Channel, name string, isHost bool) *Participant {
	return &Participant{
		ID:        uuid.NewString(),
		Name:      name,
		IsHost:    isHost,
		Connected: true,
		ch:        ch,
	}
}

// ConnID returns the current connection identifier. During the grace window
// it still names the dropped connection.
func (p *Participant) ConnID() string {
	return p.ch.ID()
}

// rebind attaches a fresh channel after a reconnection and clears the
// disconnect markers.
func (p *Participant) rebind(ch Channel) {
	p.ch = ch
	p.Connected = true
	p.DisconnectedAt = time.Time{}
}

// send delivers an event to this participant, best-effort.
func (p *Participant) send(event string, payload any) {
	_ = p.ch.Send(event, payload)
}

func (p *Participant) info() PlayerInfo {
	return PlayerInfo{
		ID:     p.ID,
		Name:   p.Name,
		IsHost: p.IsHost,
		IsBot:  p.IsBot,
		Ready:  p.Ready,
	}
}
