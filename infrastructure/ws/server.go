// Package ws is the websocket transport. It accepts connections,
// binds each one to a session in the requested room, and shuttles
// frames in both directions. All chat semantics live in the session;
// this package only owns connection lifecycle and framing.
package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"groupchat/contract"
	"groupchat/moderation"
	"groupchat/runtime"
)

type Server struct {
	log            *slog.Logger
	registry       *runtime.Registry
	quips          contract.QuipProvider
	censor         *moderation.Moderator
	upgrader       websocket.Upgrader
	sendBufferSize int
}

func NewServer(log *slog.Logger, registry *runtime.Registry,
	quips contract.QuipProvider, censor *moderation.Moderator,
	sendBufferSize int) *Server {
	return &Server{
		log:      log,
		registry: registry,
		quips:    quips,
		censor:   censor,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sendBufferSize: sendBufferSize,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /chat/{room}", s.handleChat)
	return mux
}

// handleChat upgrades the connection and runs it until the client goes
// away. One session per connection, bound to its room for life.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	roomName := r.PathValue("room")
	if roomName == "" {
		http.Error(w, "room name required", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "error", err)
		return
	}

	room := s.registry.Get(roomName)
	client := NewClient(s.log, conn, s.sendBufferSize)
	session := runtime.NewSession(s.log, room, client, s.quips, s.censor)

	s.log.Info("connection established", "room", roomName, "session_id", session.ID().String())
	client.Serve(r.Context(), session)
}
