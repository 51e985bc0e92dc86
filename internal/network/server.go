package network

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server upgrades operator-console HTTP connections to websockets and
// hands them to the hub.
type Server struct {
	hub    *Hub
	logger *zap.Logger
}

var upgrader = websocket.Upgrader{
	// The console runs on the venue LAN; any origin may connect.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewServer creates the websocket server and its hub. The handler is the
// injection point for the application logic.
func NewServer(handler EventHandler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		hub:    NewHub(handler),
		logger: logger,
	}
}

// Hub returns the server's hub, so callers can run it and broadcast.
func (s *Server) Hub() *Hub {
	return s.hub
}

// WSHandler is the HTTP entry point for console connections.
func (s *Server) WSHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("console upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		conn:   conn,
		hub:    s.hub,
		send:   make(chan Message, 256),
		logger: s.logger,
	}
	client.hub.register <- client

	go client.writeLoop()
	go client.readLoop()
}
