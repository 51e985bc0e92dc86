// Package console is the operator-facing side of the server: it turns
// websocket commands into session-manager calls and pushes match
// progress back out to every connected console.
package console

import (
	"go.uber.org/zap"

	"wamserver/internal/game"
	"wamserver/internal/network"
)

// Inbound command types.
const (
	CmdCreateSession = "CREATE_SESSION"
	CmdStopSession   = "STOP_SESSION"
	CmdStatus        = "STATUS"
)

// Outbound event types.
const (
	EvtSessionCreated  = "SESSION_CREATED"
	EvtRoundUpdate     = "ROUND_UPDATE"
	EvtSessionFinished = "SESSION_FINISHED"
	EvtStatus          = "STATUS"
	EvtCommandError    = "COMMAND_ERROR"
)

type sessionCreatedPayload struct {
	SessionID string `json:"sessionId"`
}

type commandErrorPayload struct {
	Command string `json:"command"`
	Error   string `json:"error"`
}

// Handler implements network.EventHandler for operator consoles and
// game.Observer for session progress.
type Handler struct {
	manager *game.Manager
	hub     *network.Hub
	logger  *zap.Logger
}

// NewHandler creates the console handler. BindHub must be called before
// the hub runs.
func NewHandler(manager *game.Manager, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// BindHub wires the hub used for broadcasts.
func (h *Handler) BindHub(hub *network.Hub) {
	h.hub = hub
}

// --- network.EventHandler ---

// OnConnect greets a new console with the current status.
func (h *Handler) OnConnect(c *network.Client) {
	h.logger.Info("console connected", zap.String("remote", c.RemoteAddr()))
	h.sendStatus(c)
}

func (h *Handler) OnDisconnect(c *network.Client) {
	h.logger.Info("console disconnected", zap.String("remote", c.RemoteAddr()))
}

// OnMessage routes one operator command. Manager errors come back as
// COMMAND_ERROR events, never as dropped connections.
func (h *Handler) OnMessage(c *network.Client, msg network.Message) {
	switch msg.Type {
	case CmdCreateSession:
		id, err := h.manager.CreateSession()
		if err != nil {
			h.sendError(c, msg.Type, err)
			return
		}
		h.send(c, EvtSessionCreated, sessionCreatedPayload{SessionID: id})

	case CmdStopSession:
		if err := h.manager.StopSession(); err != nil {
			h.sendError(c, msg.Type, err)
		}

	case CmdStatus:
		h.sendStatus(c)

	default:
		h.logger.Warn("unknown console command", zap.String("type", msg.Type))
	}
}

// --- game.Observer ---

// OnRoundUpdate broadcasts the round state to every console.
func (h *Handler) OnRoundUpdate(s game.Snapshot) {
	h.broadcast(EvtRoundUpdate, s)
}

// OnSessionFinished broadcasts the final outcome to every console.
func (h *Handler) OnSessionFinished(s game.Snapshot) {
	h.broadcast(EvtSessionFinished, s)
}

// --- helpers ---

func (h *Handler) sendStatus(c *network.Client) {
	h.send(c, EvtStatus, h.manager.Status())
}

func (h *Handler) sendError(c *network.Client, command string, err error) {
	h.logger.Warn("console command rejected", zap.String("command", command), zap.Error(err))
	h.send(c, EvtCommandError, commandErrorPayload{Command: command, Error: err.Error()})
}

func (h *Handler) send(c *network.Client, msgType string, payload any) {
	msg, err := network.NewMessage(msgType, payload)
	if err != nil {
		h.logger.Error("failed to encode console message", zap.String("type", msgType), zap.Error(err))
		return
	}
	select {
	case c.Send() <- msg:
	default:
		h.logger.Warn("console send queue full, dropping message", zap.String("type", msgType))
	}
}

func (h *Handler) broadcast(msgType string, payload any) {
	if h.hub == nil {
		return
	}
	msg, err := network.NewMessage(msgType, payload)
	if err != nil {
		h.logger.Error("failed to encode broadcast", zap.String("type", msgType), zap.Error(err))
		return
	}
	h.hub.Broadcast(msg)
}
