package game

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wamserver/internal/device"
)

// Manager is the actor owning the single active session and the pad
// pool. All commands go through its request channel, so the active
// session slot is only ever touched by the manager goroutine.
type Manager struct {
	pool        *device.Pool
	tuning      Tuning
	readTimeout time.Duration
	observer    Observer
	logger      *zap.Logger

	requestCh chan managerMessage

	active        *Session
	activeClients []*device.Client
}

// NewManager creates a manager over the given pad pool. Call Run on its
// own goroutine before issuing commands.
func NewManager(pool *device.Pool, tuning Tuning, readTimeout time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		pool:        pool,
		tuning:      tuning,
		readTimeout: readTimeout,
		logger:      logger,
		requestCh:   make(chan managerMessage),
	}
}

// SetObserver wires the session observer. Must be called before Run.
func (m *Manager) SetObserver(o Observer) {
	m.observer = o
}

// --- Actor messages ---

type managerMessage interface {
	isManagerMessage()
}

type createSessionRequest struct {
	reply chan createSessionReply
}

func (createSessionRequest) isManagerMessage() {}

type createSessionReply struct {
	id  string
	err error
}

type stopSessionRequest struct {
	reply chan error
}

func (stopSessionRequest) isManagerMessage() {}

type statusRequest struct {
	reply chan Status
}

func (statusRequest) isManagerMessage() {}

type sessionDone struct {
	session *Session
}

func (sessionDone) isManagerMessage() {}

// Status is the operator-facing view of the manager.
type Status struct {
	Active        bool      `json:"active"`
	SessionID     string    `json:"sessionId,omitempty"`
	StartedAt     time.Time `json:"startedAt,omitempty"`
	ConnectedPads int       `json:"connectedPads"`
	AvailablePads int       `json:"availablePads"`
}

// --- Public actor API ---

// CreateSession binds two available pads into a new session and starts
// it. Fails with ErrSessionAlreadyRunning or ErrInsufficientClients.
func (m *Manager) CreateSession() (string, error) {
	reply := make(chan createSessionReply)
	m.requestCh <- createSessionRequest{reply: reply}
	res := <-reply
	return res.id, res.err
}

// StopSession cancels the active session. Fails with ErrNoActiveSession.
func (m *Manager) StopSession() error {
	reply := make(chan error)
	m.requestCh <- stopSessionRequest{reply: reply}
	return <-reply
}

// Status reports the manager's current state.
func (m *Manager) Status() Status {
	reply := make(chan Status)
	m.requestCh <- statusRequest{reply: reply}
	return <-reply
}

// Run is the actor loop.
func (m *Manager) Run() {
	m.logger.Info("session manager started")
	for msg := range m.requestCh {
		switch req := msg.(type) {
		case createSessionRequest:
			req.reply <- m.handleCreate()
		case stopSessionRequest:
			req.reply <- m.handleStop()
		case statusRequest:
			req.reply <- m.handleStatus()
		case sessionDone:
			m.handleDone(req.session)
		}
	}
}

func (m *Manager) handleCreate() createSessionReply {
	if m.active != nil {
		return createSessionReply{err: ErrSessionAlreadyRunning}
	}
	clients, ok := m.pool.Acquire(2)
	if !ok {
		return createSessionReply{err: ErrInsufficientClients}
	}

	id := uuid.NewString()
	sess := NewSession(id, clients, SessionConfig{
		Tuning:      m.tuning,
		ReadTimeout: m.readTimeout,
		Observer:    m.observer,
		Logger:      m.logger,
		OnDone: func(s *Session) {
			m.requestCh <- sessionDone{session: s}
		},
	})
	m.active = sess
	m.activeClients = clients
	go sess.Run()

	m.logger.Info("session created",
		zap.String("session", id),
		zap.String("pad1", clients[0].Name()),
		zap.String("pad2", clients[1].Name()),
	)
	return createSessionReply{id: id}
}

func (m *Manager) handleStop() error {
	if m.active == nil {
		return ErrNoActiveSession
	}
	m.active.Cancel()
	return nil
}

func (m *Manager) handleStatus() Status {
	st := Status{
		Active:        m.active != nil,
		ConnectedPads: m.pool.Size(),
		AvailablePads: m.pool.Available(),
	}
	if m.active != nil {
		st.SessionID = m.active.ID()
		st.StartedAt = m.active.StartedAt()
	}
	return st
}

// handleDone releases the finished session's pads back to the pool.
func (m *Manager) handleDone(s *Session) {
	if m.active != s {
		return
	}
	m.pool.Release(m.activeClients...)
	m.logger.Info("session slot released",
		zap.String("session", s.ID()),
		zap.String("reason", s.Info().Reason().String()),
	)
	m.active = nil
	m.activeClients = nil
}
