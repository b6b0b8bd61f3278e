package lobby

// Room is an in-memory aggregate of up to Capacity participants plus an
// opaque game-state blob. Participants are kept in join order, which is
// also the host-eligibility order. A Room is not safe for concurrent use
// on its own; the Controller serializes all access.
type Room struct {
	ID       string
	Capacity int
	// Started is monotonic: once true it never reverts.
	Started bool
	// GameState is nil until the game starts; afterwards it is only
	// shallow-merged, never replaced wholesale.
	GameState map[string]any

	participants []*Participant
}

func newRoom(id string, capacity int) *Room {
	return &Room{ID: id, Capacity: capacity}
}

// AddParticipant appends a new participant, assigning host to the first
// one in. Returns ErrRoomFull when the room is at capacity.
func (r *Room) AddParticipant(ch Channel, name string) (*Participant, error) {
	if len(r.participants) >= r.Capacity {
		return nil, ErrRoomFull
	}
	p := newParticipant(ch, name, len(r.participants) == 0)
	r.participants = append(r.participants, p)
	return p, nil
}

// FindByConn returns the participant whose current connection id matches,
// or nil.
func (r *Room) FindByConn(connID string) *Participant {
	for _, p := range r.participants {
		if p.ConnID() == connID {
			return p
		}
	}
	return nil
}

// FindByName returns the first participant (in join order) with the given
// display name, or nil. Used for reconnection matching; names are not
// required to be unique, so the first match wins.
func (r *Room) FindByName(name string) *Participant {
	for _, p := range r.participants {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (r *Room) findByID(id string) *Participant {
	for _, p := range r.participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Remove deletes the participant owning connID. If the removed participant
// was host and others remain, the earliest-joined remaining participant is
// promoted and receives a single hostChanged notification. Reports whether
// a removal occurred.
func (r *Room) Remove(connID string) bool {
	for i, p := range r.participants {
		if p.ConnID() != connID {
			continue
		}
		r.participants = append(r.participants[:i], r.participants[i+1:]...)
		if p.IsHost && len(r.participants) > 0 {
			promoted := r.participants[0]
			promoted.IsHost = true
			promoted.send(EventHostChanged, HostChangedPayload{IsHost: true})
		}
		return true
	}
	return false
}

// Broadcast sends event/payload to every participant's current channel
// except the one identified by excludeConnID (empty string excludes
// nobody). A stale channel failing to accept the send never blocks
// delivery to the rest.
func (r *Room) Broadcast(event string, payload any, excludeConnID string) {
	for _, p := range r.participants {
		if excludeConnID != "" && p.ConnID() == excludeConnID {
			continue
		}
		p.send(event, payload)
	}
}

// MergeState shallow-merges partial into the game state: new top-level
// keys over existing, last write wins. No conflict resolution across
// concurrent updaters is attempted.
func (r *Room) MergeState(partial map[string]any) {
	if r.GameState == nil {
		r.GameState = make(map[string]any, len(partial))
	}
	for k, v := range partial {
		r.GameState[k] = v
	}
}

// Len returns the participant count.
func (r *Room) Len() int {
	return len(r.participants)
}

// Participants returns the participants in join order. The returned slice
// is a copy; the pointed-to participants are shared.
func (r *Room) Participants() []*Participant {
	out := make([]*Participant, len(r.participants))
	copy(out, r.participants)
	return out
}

// Snapshot returns the channel-safe projection of the room, suitable for
// broadcasting.
func (r *Room) Snapshot() RoomInfo {
	players := make([]PlayerInfo, 0, len(r.participants))
	for _, p := range r.participants {
		players = append(players, p.info())
	}
	return RoomInfo{
		RoomID:        r.ID,
		Players:       players,
		IsGameStarted: r.Started,
		MaxPlayers:    r.Capacity,
	}
}
