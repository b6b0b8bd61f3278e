// Package ws exposes the lobby over a WebSocket endpoint. Each client
// connection exchanges named JSON event frames; the read loop dispatches
// inbound events to the lobby controller and reports the eventual
// disconnect.
package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cardtable/lobby/internal/config"
	"github.com/cardtable/lobby/internal/lobby"
)

// Server upgrades HTTP requests to WebSocket connections and bridges them
// to the lobby controller.
type Server struct {
	upgrader websocket.Upgrader
	ctrl     *lobby.Controller
	logger   *zap.Logger

	readLimit    int64
	writeTimeout time.Duration
	pingInterval time.Duration
}

// NewServer creates a Server over the given controller.
//
// Precondition: ctrl and logger must be non-nil.
func NewServer(ctrl *lobby.Controller, cfg config.WSConfig, logger *zap.Logger) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		ctrl:         ctrl,
		logger:       logger,
		readLimit:    cfg.ReadLimit,
		writeTimeout: cfg.WriteTimeout,
		pingInterval: cfg.PingInterval,
	}
}

// HandleWS upgrades the request and services the connection until the
// peer goes away, then reports the disconnect to the controller.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	sock, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	c := newConn(uuid.NewString(), sock, s.writeTimeout)
	s.logger.Info("player connected", zap.String("conn", c.ID()))

	go s.pingLoop(c)
	s.readLoop(c)

	_ = c.Close()
	s.ctrl.HandleDisconnect(c.ID())
	s.logger.Info("player connection closed", zap.String("conn", c.ID()))
}

func (s *Server) readLoop(c *conn) {
	c.sock.SetReadLimit(s.readLimit)
	_ = c.sock.SetReadDeadline(time.Now().Add(2 * s.pingInterval))
	c.sock.SetPongHandler(func(string) error {
		return c.sock.SetReadDeadline(time.Now().Add(2 * s.pingInterval))
	})

	for {
		_, data, err := c.sock.ReadMessage()
		if err != nil {
			return
		}
		var env inboundEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.logger.Debug("dropping malformed frame", zap.String("conn", c.ID()), zap.Error(err))
			continue
		}
		s.dispatch(c, env)
	}
}

// dispatch decodes the typed payload and forwards to the controller.
// Malformed or unknown frames are dropped, never fatal.
func (s *Server) dispatch(c *conn, env inboundEnvelope) {
	switch env.Type {
	case TypeCreateRoom:
		var req createRoomRequest
		if s.decode(c, env, &req) {
			s.ctrl.HandleCreateRoom(c, req.PlayerName)
		}
	case TypeJoinRoom:
		var req joinRoomRequest
		if s.decode(c, env, &req) {
			s.ctrl.HandleJoinRoom(c, req.RoomID, req.PlayerName)
		}
	case TypeRejoinRoom:
		var req joinRoomRequest
		if s.decode(c, env, &req) {
			s.ctrl.HandleRejoinRoom(c, req.RoomID, req.PlayerName)
		}
	case TypeToggleReady:
		var req toggleReadyRequest
		if s.decode(c, env, &req) {
			s.ctrl.HandleToggleReady(c, req.RoomID)
		}
	case TypeStartGame:
		var req startGameRequest
		if s.decode(c, env, &req) {
			s.ctrl.HandleStartGame(c, req.RoomID, req.GameState)
		}
	case TypeGameStateUpdate:
		var req gameStateUpdateRequest
		if s.decode(c, env, &req) {
			s.ctrl.HandleGameStateUpdate(c, req.RoomID, req.GameState)
		}
	case TypeGameAction:
		var req gameActionRequest
		if s.decode(c, env, &req) {
			s.ctrl.HandleGameAction(c, req.RoomID, req.Action, req.ActionData)
		}
	case TypeChatMessage:
		var req chatMessageRequest
		if s.decode(c, env, &req) {
			s.ctrl.HandleChatMessage(c, req.RoomID, req.Message)
		}
	case TypePing:
		// Liveness probe: echo the payload back untouched.
		_ = c.Send(lobby.EventPong, env.Payload)
	default:
		s.logger.Debug("dropping unknown event",
			zap.String("conn", c.ID()),
			zap.String("type", env.Type),
		)
	}
}

func (s *Server) decode(c *conn, env inboundEnvelope, dst any) bool {
	if len(env.Payload) == 0 {
		s.logger.Debug("dropping frame without payload",
			zap.String("conn", c.ID()),
			zap.String("type", env.Type),
		)
		return false
	}
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		s.logger.Debug("dropping undecodable payload",
			zap.String("conn", c.ID()),
			zap.String("type", env.Type),
			zap.Error(err),
		)
		return false
	}
	return true
}

// pingLoop writes control pings at the configured cadence so dead peers
// fail the read deadline.
func (s *Server) pingLoop(c *conn) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			err := c.sock.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.writeTimeout))
			c.mu.Unlock()
			if err != nil {
				return
			}
		case <-c.Done():
			return
		}
	}
}
