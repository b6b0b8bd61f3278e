package lobby

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultGracePeriod is the window after a disconnect during which a
// participant's seat is preserved for reconnection.
const DefaultGracePeriod = 60 * time.Second

// Controller translates inbound channel events into registry and room
// mutations and outbound broadcasts. A single mutex serializes every
// handler and every grace-timer expiry, so one event is fully handled,
// broadcasts included, before the next begins.
type Controller struct {
	mu       sync.Mutex
	registry *Registry
	grace    time.Duration
	logger   *zap.Logger

	// timers maps participant id to its armed grace timer. Reconnection
	// stops and drops the entry; expiry drops it before acting.
	timers map[string]*graceTimer
}

// NewController creates a Controller over the given registry.
//
// Precondition: registry and logger must be non-nil; grace must be > 0
// (DefaultGracePeriod in production, shortened in tests).
func NewController(registry *Registry, grace time.Duration, logger *zap.Logger) *Controller {
	return &Controller{
		registry: registry,
		grace:    grace,
		logger:   logger,
		timers:   make(map[string]*graceTimer),
	}
}

// HandleCreateRoom allocates a room with the requester as its sole (host)
// participant and replies with the room id and snapshot.
func (c *Controller) HandleCreateRoom(ch Channel, playerName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.registry.CreateRoom()
	if err != nil {
		c.logger.Error("creating room", zap.Error(err))
		_ = ch.Send(EventError, ErrorPayload{Message: "Failed to create room"})
		return
	}
	if _, err := room.AddParticipant(ch, playerName); err != nil {
		// Unreachable for a fresh room; reported for completeness.
		c.reject(ch, ErrRoomFull)
		return
	}

	_ = ch.Send(EventRoomCreated, RoomCreatedPayload{RoomID: room.ID, RoomInfo: room.Snapshot()})
	c.logger.Info("room created",
		zap.String("room", room.ID),
		zap.String("player", playerName),
	)
}

// HandleJoinRoom admits a new participant, or rebinds a returning one
// whose display name matches a disconnected seat.
func (c *Controller) HandleJoinRoom(ch Channel, roomID, playerName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.registry.Get(roomID)
	if !ok {
		c.reject(ch, ErrRoomNotFound)
		return
	}

	if p := room.FindByName(playerName); p != nil && !p.Connected {
		c.reattach(room, p, ch)
		return
	}
	if room.Started {
		c.reject(ch, ErrGameAlreadyStarted)
		return
	}
	if _, err := room.AddParticipant(ch, playerName); err != nil {
		c.reject(ch, ErrRoomFull)
		return
	}

	_ = ch.Send(EventRoomJoined, RoomJoinedPayload{RoomID: room.ID, RoomInfo: room.Snapshot()})
	room.Broadcast(EventPlayerJoined, RoomEventPayload{RoomInfo: room.Snapshot()}, ch.ID())
	c.logger.Info("player joined",
		zap.String("room", room.ID),
		zap.String("player", playerName),
	)
}

// HandleRejoinRoom is the explicit reconnection path: it only rebinds an
// already-disconnected seat and never creates a new participant. Failures
// are reported via rejoinFailed rather than error.
func (c *Controller) HandleRejoinRoom(ch Channel, roomID, playerName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.registry.Get(roomID)
	if !ok {
		_ = ch.Send(EventRejoinFailed, RejoinFailedPayload{Message: ErrRoomNotFound.Message})
		return
	}
	p := room.FindByName(playerName)
	if p == nil || p.Connected {
		_ = ch.Send(EventRejoinFailed, RejoinFailedPayload{Message: ErrPlayerNotFound.Message})
		return
	}
	c.reattach(room, p, ch)
}

// reattach rebinds a returning participant to a fresh channel, disarms any
// pending grace timer, and replays the room (and, once started, the game
// state) to the new channel. Caller must hold c.mu.
func (c *Controller) reattach(room *Room, p *Participant, ch Channel) {
	if t, ok := c.timers[p.ID]; ok {
		t.Stop()
		delete(c.timers, p.ID)
	}
	p.rebind(ch)

	if room.Started {
		_ = ch.Send(EventRejoinSuccess, RejoinSuccessPayload{
			RoomID:    room.ID,
			RoomInfo:  room.Snapshot(),
			GameState: room.GameState,
		})
	} else {
		_ = ch.Send(EventRoomJoined, RoomJoinedPayload{RoomID: room.ID, RoomInfo: room.Snapshot()})
	}
	room.Broadcast(EventPlayerJoined, RoomEventPayload{RoomInfo: room.Snapshot()}, ch.ID())
	c.logger.Info("player reconnected",
		zap.String("room", room.ID),
		zap.String("player", p.Name),
	)
}

// HandleToggleReady flips the caller's ready flag and broadcasts the
// updated snapshot to everyone, caller included.
func (c *Controller) HandleToggleReady(ch Channel, roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.registry.Get(roomID)
	if !ok {
		return
	}
	p := room.FindByConn(ch.ID())
	if p == nil {
		return
	}
	p.Ready = !p.Ready
	room.Broadcast(EventRoomUpdate, RoomEventPayload{RoomInfo: room.Snapshot()}, "")
}

// HandleStartGame starts the game on behalf of the host. The initial game
// state is the caller-supplied payload with numPlayers, playerNames, and
// playerIds computed from the eligible (ready-or-host) participants;
// computed keys win over caller-supplied ones.
func (c *Controller) HandleStartGame(ch Channel, roomID string, initial map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.registry.Get(roomID)
	if !ok {
		return
	}
	p := room.FindByConn(ch.ID())
	if p == nil || !p.IsHost {
		c.reject(ch, ErrNotHost)
		return
	}

	var names []string
	var ids []string
	for _, e := range room.Participants() {
		if e.Ready || e.IsHost {
			names = append(names, e.Name)
			ids = append(ids, e.ID)
		}
	}
	if len(ids) < 2 {
		c.reject(ch, ErrInsufficientPlayers)
		return
	}

	room.Started = true
	state := make(map[string]any, len(initial)+3)
	for k, v := range initial {
		state[k] = v
	}
	state["numPlayers"] = len(ids)
	state["playerNames"] = names
	state["playerIds"] = ids
	room.GameState = state

	room.Broadcast(EventGameStarted, GameStartedPayload{GameState: state, RoomInfo: room.Snapshot()}, "")
	c.logger.Info("game started",
		zap.String("room", room.ID),
		zap.Int("players", len(ids)),
	)
}

// HandleGameStateUpdate shallow-merges the partial state and syncs it to
// everyone except the sender. A no-op when the room is absent or the game
// has not started.
func (c *Controller) HandleGameStateUpdate(ch Channel, roomID string, partial map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.registry.Get(roomID)
	if !ok || !room.Started {
		return
	}
	room.MergeState(partial)
	room.Broadcast(EventGameStateSync, GameStateSyncPayload{GameState: room.GameState}, ch.ID())
}

// HandleGameAction relays an opaque action to everyone except the sender.
// Action semantics are never inspected here.
func (c *Controller) HandleGameAction(ch Channel, roomID, action string, actionData any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.registry.Get(roomID)
	if !ok || !room.Started {
		return
	}
	p := room.FindByConn(ch.ID())
	if p == nil {
		return
	}
	room.Broadcast(EventGameActionReceived, GameActionPayload{
		Action:   action,
		PlayerID: p.ID,
		Data:     actionData,
	}, ch.ID())
}

// HandleChatMessage broadcasts a chat line, stamped server-side, to every
// participant including the sender. A no-op when the sender is not a
// participant of the room.
func (c *Controller) HandleChatMessage(ch Channel, roomID, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.registry.Get(roomID)
	if !ok {
		return
	}
	p := room.FindByConn(ch.ID())
	if p == nil {
		return
	}
	room.Broadcast(EventChatMessage, ChatMessagePayload{
		PlayerName: p.Name,
		Message:    message,
		Timestamp:  time.Now().UnixMilli(),
	}, "")
}

// HandleDisconnect reacts to the transport reporting a dropped connection.
// Before the game starts the seat is released immediately; afterwards the
// participant is soft-deleted and a grace timer is armed so a reconnection
// within the window keeps the seat.
func (c *Controller) HandleDisconnect(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, p := c.registry.FindByConn(connID)
	if p == nil || !p.Connected {
		return
	}

	if !room.Started {
		c.removeAndNotify(room, p)
		return
	}

	p.Connected = false
	p.DisconnectedAt = time.Now()
	roomID, participantID := room.ID, p.ID
	c.timers[participantID] = newGraceTimer(c.grace, func() {
		c.expireGrace(roomID, participantID)
	})
	c.logger.Info("player disconnected, grace timer armed",
		zap.String("room", roomID),
		zap.String("player", p.Name),
		zap.Duration("grace", c.grace),
	)
}

// expireGrace runs when a grace timer fires. The Connected re-check makes
// a timer that lost the race against a reconnection a no-op.
func (c *Controller) expireGrace(roomID, participantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.timers, participantID)
	room, ok := c.registry.Get(roomID)
	if !ok {
		return
	}
	p := room.findByID(participantID)
	if p == nil || p.Connected {
		return
	}
	c.logger.Info("grace period expired",
		zap.String("room", roomID),
		zap.String("player", p.Name),
	)
	c.removeAndNotify(room, p)
}

// removeAndNotify permanently removes p from room, deleting the room if it
// empties and otherwise telling the remaining participants. Caller must
// hold c.mu.
func (c *Controller) removeAndNotify(room *Room, p *Participant) {
	if !room.Remove(p.ConnID()) {
		return
	}
	if room.Len() == 0 {
		c.registry.DeleteIfEmpty(room.ID)
		c.logger.Info("room deleted", zap.String("room", room.ID))
		return
	}
	room.Broadcast(EventPlayerLeft, RoomEventPayload{RoomInfo: room.Snapshot()}, "")
}

func (c *Controller) reject(ch Channel, err *RejectError) {
	_ = ch.Send(EventError, ErrorPayload{Code: err.Code, Message: err.Message})
}
