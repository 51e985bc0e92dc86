package game

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"wamserver/internal/device"
	"wamserver/internal/game/item"
	"wamserver/internal/protocol"
)

// State is the session lifecycle stage. Once finished a session is
// terminal and immutable.
type State int32

const (
	StateCreated State = iota
	StateSetup
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateSetup:
		return "setup"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

const defaultReadTimeout = 10 * time.Second

// SessionConfig wires a session's collaborators and tuning.
type SessionConfig struct {
	Tuning      Tuning
	ReadTimeout time.Duration
	Observer    Observer
	// OnDone fires once after the session finished, on the session
	// goroutine. The manager uses it to reclaim the pads.
	OnDone func(*Session)
	Logger *zap.Logger
}

// Session runs one two-player match to a terminal outcome on its own
// goroutine. The only cross-goroutine state is the cancel flag and the
// lifecycle stage; everything else belongs to the session goroutine
// alone, so none of it is locked.
type Session struct {
	id          string
	startedAt   time.Time
	tuning      Tuning
	readTimeout time.Duration

	clients []*device.Client
	players []*Player
	info    *GameInfo
	rng     *rand.Rand
	round   int

	observer Observer
	onDone   func(*Session)
	logger   *zap.Logger

	cancelRequested atomic.Bool
	state           atomic.Int32
}

// NewSession binds a session to its pads. Run starts the match.
func NewSession(id string, clients []*device.Client, cfg SessionConfig) *Session {
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	s := &Session{
		id:          id,
		startedAt:   time.Now().UTC(),
		tuning:      cfg.Tuning,
		readTimeout: cfg.ReadTimeout,
		clients:     clients,
		rng:         rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(len(clients)))),
		observer:    cfg.Observer,
		onDone:      cfg.OnDone,
		logger:      cfg.Logger.With(zap.String("session", id)),
	}
	s.state.Store(int32(StateCreated))
	return s
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// StartedAt returns the session's creation time.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// State returns the current lifecycle stage.
func (s *Session) State() State { return State(s.state.Load()) }

// Cancel requests a cooperative shutdown. Settable from any goroutine;
// the session loop observes it at the next round boundary, so an
// in-flight report wait still runs to its own deadline first.
func (s *Session) Cancel() {
	s.cancelRequested.Store(true)
}

// Info exposes the match outcome. Only safe to read once the session
// reached StateFinished.
func (s *Session) Info() *GameInfo { return s.info }

// Run executes the session to completion. Call it on a dedicated
// goroutine; it returns when the match reached a terminal state.
func (s *Session) Run() {
	defer func() {
		if s.onDone != nil {
			s.onDone(s)
		}
	}()

	s.state.Store(int32(StateSetup))
	if len(s.clients) != 2 {
		s.logger.Warn("improper pad count, cancelling startup", zap.Int("pads", len(s.clients)))
		s.info = newGameInfo(nil, s.rng)
		s.info.finish(FinishInvalidPlayerCount)
		s.state.Store(int32(StateFinished))
		s.notifyFinished()
		return
	}

	s.players = make([]*Player, 0, len(s.clients))
	for i, c := range s.clients {
		s.players = append(s.players, newPlayer(c, s, i))
	}
	for _, p := range s.players {
		if err := p.NotifyConnected(); err != nil {
			s.logger.Warn("pad-bind notification failed", zap.String("player", p.Name()), zap.Error(err))
		}
	}
	s.info = newGameInfo(s.players, s.rng)
	s.state.Store(int32(StateRunning))
	s.logger.Info("session running",
		zap.String("player1", s.players[0].Name()),
		zap.String("player2", s.players[1].Name()),
	)

	for !s.info.finished {
		s.round++
		s.playRound()
		s.notifyRound()
		if s.cancelRequested.Load() && !s.info.finished {
			s.logger.Info("shutdown command observed, closing session")
			s.info.finish(FinishOperatorShutdown)
		}
	}

	s.state.Store(int32(StateFinished))
	s.logger.Info("session finished",
		zap.String("reason", s.info.reason.String()),
		zap.Int("rounds", s.round),
		zap.Duration("playtime", time.Since(s.startedAt)),
	)
	s.notifyFinished()
}

// playRound is one generate -> transmit -> collect -> resolve cycle.
func (s *Session) playRound() {
	maps := s.info.buildRandomMaps(s.rng)
	for _, p := range s.players {
		if err := p.SendRound(maps[p.Name()]); err != nil {
			// The pad will miss this round; its report wait times out and
			// resolves as no-hit.
			s.logger.Warn("round map send failed", zap.String("player", p.Name()), zap.Error(err))
		}
	}
	s.resolveReports(s.collectReports())
}

type roundReport struct {
	data protocol.ClientData
	err  error
}

// collectReports waits for both pads in parallel, each read bounded by
// its own deadline so a stalled pad cannot starve the other or the loop.
func (s *Session) collectReports() []roundReport {
	reports := make([]roundReport, len(s.players))
	var wg sync.WaitGroup
	for i, p := range s.players {
		wg.Add(1)
		go func(i int, p *Player) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), s.readTimeout)
			defer cancel()
			data, err := p.ReceiveReport(ctx)
			reports[i] = roundReport{data: data, err: err}
		}(i, p)
	}
	wg.Wait()
	return reports
}

// resolveReports applies both reports in fixed slot order. Both were
// collected before any effect runs, and a terminal effect stops the
// round, so simultaneous knockouts resolve deterministically.
func (s *Session) resolveReports(reports []roundReport) {
	for i, rep := range reports {
		if s.info.finished {
			break
		}
		acting := s.players[i]
		opponent := s.players[1-i]

		hit := item.Blank
		switch {
		case rep.err != nil:
			// Timed out or malformed: that player's round degrades to
			// no-hit, the match goes on.
			s.logger.Warn("pad report degraded to no-hit",
				zap.String("player", acting.Name()),
				zap.Error(rep.err),
			)
		case rep.data.IsHit && rep.data.HitIndex != protocol.NoIndex:
			hit = acting.CurrentMap()[rep.data.HitIndex]
		}
		s.applyItem(hit, acting, opponent)
	}
}

// onPlayerDeath handles the death transition raised by Player.Damage.
// With exactly two players the survivor wins and the match ends.
func (s *Session) onPlayerDeath(dead *Player) {
	for _, p := range s.players {
		if p != dead {
			s.info.setWinner(p)
		}
	}
	s.info.setLoser(dead)
	s.info.finish(FinishPlayerWin)
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		SessionID: s.id,
		Round:     s.round,
		Finished:  s.info.finished,
	}
	for _, p := range s.players {
		snap.Players = append(snap.Players, PlayerState{
			Name:   p.Name(),
			Slot:   p.Slot(),
			Health: p.Health(),
			Map:    p.CurrentMap(),
		})
	}
	if s.info.finished {
		snap.Reason = s.info.reason.String()
	}
	if s.info.winner != nil {
		snap.Winner = s.info.winner.Name()
	}
	if s.info.loser != nil {
		snap.Loser = s.info.loser.Name()
	}
	return snap
}

func (s *Session) notifyRound() {
	if s.observer != nil {
		s.observer.OnRoundUpdate(s.snapshot())
	}
}

func (s *Session) notifyFinished() {
	if s.observer != nil {
		s.observer.OnSessionFinished(s.snapshot())
	}
}
