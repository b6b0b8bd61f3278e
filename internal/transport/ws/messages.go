package ws

import "encoding/json"

// Inbound event names (client → server).
const (
	TypeCreateRoom      = "createRoom"
	TypeJoinRoom        = "joinRoom"
	TypeRejoinRoom      = "rejoinRoom"
	TypeToggleReady     = "toggleReady"
	TypeStartGame       = "startGame"
	TypeGameStateUpdate = "gameStateUpdate"
	TypeGameAction      = "gameAction"
	TypeChatMessage     = "chatMessage"
	TypePing            = "ping"
)

// envelope is the outbound wire frame.
type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// inboundEnvelope defers payload decoding until the type is known.
type inboundEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type createRoomRequest struct {
	PlayerName string `json:"playerName"`
}

type joinRoomRequest struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type toggleReadyRequest struct {
	RoomID string `json:"roomId"`
}

type startGameRequest struct {
	RoomID    string         `json:"roomId"`
	GameState map[string]any `json:"gameState"`
}

type gameStateUpdateRequest struct {
	RoomID    string         `json:"roomId"`
	GameState map[string]any `json:"gameState"`
}

type gameActionRequest struct {
	RoomID     string `json:"roomId"`
	Action     string `json:"action"`
	ActionData any    `json:"actionData"`
}

type chatMessageRequest struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}
