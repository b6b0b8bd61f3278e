package lobby

import (
	"crypto/rand"
	"fmt"
)

const roomIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxIDAttempts bounds collision regeneration before CreateRoom gives up.
const maxIDAttempts = 32

// Registry is the process-wide mapping from room id to room. It owns every
// room it holds: rooms are created here and deleted here once empty, never
// retained empty. Not safe for concurrent use on its own; the Controller
// serializes all access.
type Registry struct {
	rooms    map[string]*Room
	capacity int
	idLength int
}

// NewRegistry creates an empty registry producing rooms with the given
// participant capacity and id length.
//
// Precondition: capacity >= 1; idLength >= 1.
func NewRegistry(capacity, idLength int) *Registry {
	return &Registry{
		rooms:    make(map[string]*Room),
		capacity: capacity,
		idLength: idLength,
	}
}

// CreateRoom generates a fresh collision-checked room id, inserts an empty
// room, and returns it. Ids are uppercase alphanumeric; on the vanishingly
// rare exhaustion of maxIDAttempts an error is returned rather than an
// existing room being clobbered.
func (g *Registry) CreateRoom() (*Room, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := g.newRoomID()
		if err != nil {
			return nil, err
		}
		if _, taken := g.rooms[id]; taken {
			continue
		}
		room := newRoom(id, g.capacity)
		g.rooms[id] = room
		return room, nil
	}
	return nil, fmt.Errorf("generating room id: %d attempts exhausted", maxIDAttempts)
}

func (g *Registry) newRoomID() (string, error) {
	buf := make([]byte, g.idLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = roomIDAlphabet[int(b)%len(roomIDAlphabet)]
	}
	return string(buf), nil
}

// Get returns the room for the given id.
func (g *Registry) Get(id string) (*Room, bool) {
	room, ok := g.rooms[id]
	return room, ok
}

// DeleteIfEmpty removes the entry iff its participant count is zero.
// Deleting an absent or non-empty room is a no-op.
func (g *Registry) DeleteIfEmpty(id string) {
	if room, ok := g.rooms[id]; ok && room.Len() == 0 {
		delete(g.rooms, id)
	}
}

// FindByConn scans all rooms for the participant owning connID. Used by
// the disconnect path, where only the connection id is known.
func (g *Registry) FindByConn(connID string) (*Room, *Participant) {
	for _, room := range g.rooms {
		if p := room.FindByConn(connID); p != nil {
			return room, p
		}
	}
	return nil, nil
}

// Len returns the number of live rooms.
func (g *Registry) Len() int {
	return len(g.rooms)
}
