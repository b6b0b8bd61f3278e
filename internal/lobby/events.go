package lobby

// Outbound event names (server → client).
const (
	EventRoomCreated        = "roomCreated"
	EventRoomJoined         = "roomJoined"
	EventRejoinSuccess      = "rejoinSuccess"
	EventRejoinFailed       = "rejoinFailed"
	EventPlayerJoined       = "playerJoined"
	EventPlayerLeft         = "playerLeft"
	EventRoomUpdate         = "roomUpdate"
	EventHostChanged        = "hostChanged"
	EventGameStarted        = "gameStarted"
	EventGameStateSync      = "gameStateSync"
	EventGameActionReceived = "gameActionReceived"
	EventChatMessage        = "chatMessage"
	EventPong               = "pong"
	EventError              = "error"
)

// PlayerInfo is the channel-safe projection of a single participant.
type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
	IsBot  bool   `json:"isBot"`
	Ready  bool   `json:"ready"`
}

// RoomInfo is the channel-safe projection of a room, broadcast to clients.
// It carries no channel handles or timers.
type RoomInfo struct {
	RoomID        string       `json:"roomId"`
	Players       []PlayerInfo `json:"players"`
	IsGameStarted bool         `json:"isGameStarted"`
	MaxPlayers    int          `json:"maxPlayers"`
}

type RoomCreatedPayload struct {
	RoomID   string   `json:"roomId"`
	RoomInfo RoomInfo `json:"roomInfo"`
}

type RoomJoinedPayload struct {
	RoomID   string   `json:"roomId"`
	RoomInfo RoomInfo `json:"roomInfo"`
}

type RejoinSuccessPayload struct {
	RoomID    string         `json:"roomId"`
	RoomInfo  RoomInfo       `json:"roomInfo"`
	GameState map[string]any `json:"gameState"`
}

type RejoinFailedPayload struct {
	Message string `json:"message"`
}

type RoomEventPayload struct {
	RoomInfo RoomInfo `json:"roomInfo"`
}

type HostChangedPayload struct {
	IsHost bool `json:"isHost"`
}

type GameStartedPayload struct {
	GameState map[string]any `json:"gameState"`
	RoomInfo  RoomInfo       `json:"roomInfo"`
}

type GameStateSyncPayload struct {
	GameState map[string]any `json:"gameState"`
}

type GameActionPayload struct {
	Action   string `json:"action"`
	PlayerID string `json:"playerId"`
	Data     any    `json:"data"`
}

type ChatMessagePayload struct {
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
}

type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}
