package lobby

// RejectError is a recoverable, user-facing failure reported back to the
// originating channel as an "error" (or "rejoinFailed") event. It never
// terminates the connection. Code is a stable machine-readable identifier;
// Message is the text shown to the player.
type RejectError struct {
	Code    string
	Message string
}

func (e *RejectError) Error() string { return e.Message }

var (
	ErrRoomNotFound        = &RejectError{Code: "ROOM_NOT_FOUND", Message: "Room not found"}
	ErrRoomFull            = &RejectError{Code: "ROOM_FULL", Message: "Room is full"}
	ErrGameAlreadyStarted  = &RejectError{Code: "GAME_ALREADY_STARTED", Message: "Game already started"}
	ErrNotHost             = &RejectError{Code: "NOT_HOST", Message: "Only host can start the game"}
	ErrInsufficientPlayers = &RejectError{Code: "INSUFFICIENT_PLAYERS", Message: "Need at least 2 ready players to start"}
	ErrPlayerNotFound      = &RejectError{Code: "PLAYER_NOT_FOUND", Message: "Player not found in room"}
)
