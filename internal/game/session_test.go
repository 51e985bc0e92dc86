package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"wamserver/internal/device"
	"wamserver/internal/game/item"
	"wamserver/internal/protocol"
)

// recordingObserver captures every snapshot a session publishes.
type recordingObserver struct {
	mu       sync.Mutex
	rounds   []Snapshot
	finished []Snapshot
}

func (o *recordingObserver) OnRoundUpdate(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rounds = append(o.rounds, s)
}

func (o *recordingObserver) OnSessionFinished(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished = append(o.finished, s)
}

func (o *recordingObserver) finalSnapshots() []Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Snapshot, len(o.finished))
	copy(out, o.finished)
	return out
}

func (o *recordingObserver) roundCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.rounds)
}

func newFakePads(n int) ([]*device.Client, []*device.FakeTransport) {
	clients := make([]*device.Client, n)
	fakes := make([]*device.FakeTransport, n)
	names := []string{"left", "right", "extra"}
	for i := 0; i < n; i++ {
		fakes[i] = device.NewFakeTransport()
		clients[i] = device.NewClient(names[i], i, fakes[i], zap.NewNop())
	}
	return clients, fakes
}

// newBoundSession builds a session with its players already bound, so
// round internals can be driven directly without running the match loop.
func newBoundSession(t *testing.T, tuning Tuning) (*Session, []*device.FakeTransport) {
	t.Helper()
	clients, fakes := newFakePads(2)
	s := NewSession("test-session", clients, SessionConfig{
		Tuning:      tuning,
		ReadTimeout: 50 * time.Millisecond,
	})
	for i, c := range clients {
		s.players = append(s.players, newPlayer(c, s, i))
	}
	s.info = newGameInfo(s.players, s.rng)
	return s, fakes
}

func filledMap(it item.Item) item.Map {
	var m item.Map
	for i := range m {
		m[i] = it
	}
	return m
}

func TestResolveReportsAppliesBothHits(t *testing.T) {
	s, _ := newBoundSession(t, DefaultTuning())
	s.players[0].SendRound(filledMap(item.AttackOpponent))
	s.players[1].SendRound(filledMap(item.AttackOpponent))

	s.resolveReports([]roundReport{
		{data: protocol.ClientData{IsHit: true, HitIndex: 0}},
		{data: protocol.ClientData{IsHit: true, HitIndex: 5}},
	})

	if got := s.players[0].Health(); got != 90 {
		t.Errorf("player 0 health = %d, want 90", got)
	}
	if got := s.players[1].Health(); got != 90 {
		t.Errorf("player 1 health = %d, want 90", got)
	}
	if s.info.Finished() {
		t.Error("session finished after a single exchange")
	}
}

func TestResolveReportsRepeatedAttacksKeepMatchRunning(t *testing.T) {
	s, _ := newBoundSession(t, DefaultTuning())
	s.players[0].SendRound(filledMap(item.AttackOpponent))
	s.players[1].SendRound(filledMap(item.Blank))

	for i := 0; i < 5; i++ {
		s.resolveReports([]roundReport{
			{data: protocol.ClientData{IsHit: true, HitIndex: i}},
			{data: protocol.ClientData{IsHit: false, HitIndex: protocol.NoIndex}},
		})
	}

	if got := s.players[1].Health(); got != 50 {
		t.Errorf("player 1 health after five attack hits = %d, want 50", got)
	}
	if s.info.Finished() {
		t.Error("match must keep running above the death floor")
	}
}

func TestResolveReportsHealEffects(t *testing.T) {
	s, _ := newBoundSession(t, Tuning{MaxHealth: 100, HealAmount: 20, AttackDamage: 30})
	s.players[0].Damage()
	if got := s.players[0].Health(); got != 70 {
		t.Fatalf("player 0 health after setup damage = %d, want 70", got)
	}

	s.players[0].SendRound(filledMap(item.HealSelf))
	s.players[1].SendRound(filledMap(item.HealOpponent))

	s.resolveReports([]roundReport{
		{data: protocol.ClientData{IsHit: true, HitIndex: 1}},
		{data: protocol.ClientData{IsHit: true, HitIndex: 7}},
	})

	// 70 + 20 self-heal + 20 opponent-heal, clamped at max.
	if got := s.players[0].Health(); got != 100 {
		t.Errorf("player 0 health = %d, want 100", got)
	}
	if got := s.players[1].Health(); got != 100 {
		t.Errorf("player 1 health = %d, want 100", got)
	}
}

func TestResolveReportsNoHitLeavesStateAlone(t *testing.T) {
	s, _ := newBoundSession(t, DefaultTuning())
	s.players[0].SendRound(filledMap(item.AttackOpponent))
	s.players[1].SendRound(filledMap(item.AttackOpponent))

	s.resolveReports([]roundReport{
		{data: protocol.ClientData{IsHit: false, HitIndex: protocol.NoIndex}},
		{data: protocol.ClientData{IsHit: false, HitIndex: protocol.NoIndex}},
	})

	for i, p := range s.players {
		if p.Health() != 100 {
			t.Errorf("player %d health = %d, want 100", i, p.Health())
		}
	}
}

func TestResolveReportsDegradesErrorToNoHit(t *testing.T) {
	s, _ := newBoundSession(t, DefaultTuning())
	s.players[0].SendRound(filledMap(item.AttackOpponent))
	s.players[1].SendRound(filledMap(item.AttackOpponent))

	s.resolveReports([]roundReport{
		{err: context.DeadlineExceeded},
		{data: protocol.ClientData{IsHit: true, HitIndex: 2}},
	})

	if got := s.players[0].Health(); got != 90 {
		t.Errorf("player 0 health = %d, want 90", got)
	}
	if got := s.players[1].Health(); got != 100 {
		t.Errorf("player 1 health = %d, want 100 after its opponent timed out", got)
	}
}

func TestResolveReportsSimultaneousKnockout(t *testing.T) {
	s, _ := newBoundSession(t, Tuning{MaxHealth: 100, HealAmount: 20, AttackDamage: 100})
	s.players[0].SendRound(filledMap(item.AttackOpponent))
	s.players[1].SendRound(filledMap(item.AttackOpponent))

	s.resolveReports([]roundReport{
		{data: protocol.ClientData{IsHit: true, HitIndex: 0}},
		{data: protocol.ClientData{IsHit: true, HitIndex: 0}},
	})

	// Player 0's report resolves first and ends the match; player 1's
	// report must never run.
	if !s.info.Finished() {
		t.Fatal("session not finished after a lethal hit")
	}
	if s.info.Reason() != FinishPlayerWin {
		t.Fatalf("finish reason = %s, want %s", s.info.Reason(), FinishPlayerWin)
	}
	if s.info.Winner() != s.players[0] || s.info.Loser() != s.players[1] {
		t.Errorf("winner %v loser %v, want players[0] and players[1]",
			s.info.Winner().Name(), s.info.Loser().Name())
	}
	if got := s.players[0].Health(); got != 100 {
		t.Errorf("winner health = %d, want untouched 100", got)
	}
	if got := s.players[1].Health(); got != 0 {
		t.Errorf("loser health = %d, want 0", got)
	}
}

func TestRunRejectsWrongPadCount(t *testing.T) {
	clients, _ := newFakePads(1)
	obs := &recordingObserver{}
	s := NewSession("short-session", clients, SessionConfig{
		Tuning:   DefaultTuning(),
		Observer: obs,
	})

	s.Run()

	if s.State() != StateFinished {
		t.Fatalf("state = %s, want %s", s.State(), StateFinished)
	}
	if s.Info().Reason() != FinishInvalidPlayerCount {
		t.Fatalf("finish reason = %s, want %s", s.Info().Reason(), FinishInvalidPlayerCount)
	}
	final := obs.finalSnapshots()
	if len(final) != 1 {
		t.Fatalf("got %d finish notifications, want 1", len(final))
	}
	if final[0].Reason != "INVALID_PLAYER_COUNT" {
		t.Errorf("snapshot reason = %q, want INVALID_PLAYER_COUNT", final[0].Reason)
	}
	if obs.roundCount() != 0 {
		t.Errorf("got %d round updates before setup failed, want 0", obs.roundCount())
	}
}

func TestRunOperatorShutdown(t *testing.T) {
	clients, fakes := newFakePads(2)
	obs := &recordingObserver{}
	done := make(chan struct{})
	s := NewSession("shutdown-session", clients, SessionConfig{
		Tuning:      DefaultTuning(),
		ReadTimeout: 20 * time.Millisecond,
		Observer:    obs,
		OnDone:      func(*Session) { close(done) },
	})

	// Neither pad ever answers; every round degrades to no-hit until the
	// cancel flag is observed at a round boundary.
	s.Cancel()
	go s.Run()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after Cancel")
	}

	if s.State() != StateFinished {
		t.Fatalf("state = %s, want %s", s.State(), StateFinished)
	}
	if s.Info().Reason() != FinishOperatorShutdown {
		t.Fatalf("finish reason = %s, want %s", s.Info().Reason(), FinishOperatorShutdown)
	}
	if s.Info().Winner() != nil {
		t.Error("operator shutdown must not declare a winner")
	}
	if obs.roundCount() < 1 {
		t.Error("expected at least one round before the cancel took effect")
	}

	// Each pad's first frame is the bind preset blinking its slot.
	for i, want := range []string{"s;000000000", "s;111111111"} {
		sent := fakes[i].Sent()
		if len(sent) == 0 || sent[0] != want {
			t.Errorf("pad %d first frame = %v, want %q", i, sent, want)
		}
	}
}

// drivePad plays one pad: it decodes every round map the session sends
// and answers with a hit on an attack tile when the map has one.
func drivePad(tr *device.FakeTransport, stop <-chan struct{}) {
	seen := 0
	for {
		select {
		case <-stop:
			return
		default:
		}
		for _, frame := range tr.Sent()[seen:] {
			seen++
			data, err := protocol.DecodeServerData(frame)
			if err != nil {
				continue
			}
			if data.Map == filledMap(data.Map[0]) {
				// Bind preset; not a playable round.
				continue
			}
			report := protocol.ClientData{HitIndex: protocol.NoIndex}
			for i, it := range data.Map {
				if it == item.AttackOpponent {
					report = protocol.ClientData{IsHit: true, HitIndex: i}
					break
				}
			}
			tr.Replies <- report.Encode()
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRunPlaysToPlayerWin(t *testing.T) {
	clients, fakes := newFakePads(2)
	obs := &recordingObserver{}
	done := make(chan struct{})
	s := NewSession("win-session", clients, SessionConfig{
		Tuning:      Tuning{MaxHealth: 100, HealAmount: 20, AttackDamage: 50},
		ReadTimeout: 250 * time.Millisecond,
		Observer:    obs,
		OnDone:      func(*Session) { close(done) },
	})

	stop := make(chan struct{})
	defer close(stop)
	for _, tr := range fakes {
		go drivePad(tr, stop)
	}
	go s.Run()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("session did not reach a terminal state")
	}

	if s.Info().Reason() != FinishPlayerWin {
		t.Fatalf("finish reason = %s, want %s", s.Info().Reason(), FinishPlayerWin)
	}
	final := obs.finalSnapshots()
	if len(final) != 1 {
		t.Fatalf("got %d finish notifications, want 1", len(final))
	}
	snap := final[0]
	if !snap.Finished || snap.Reason != "PLAYER_WIN" {
		t.Fatalf("final snapshot = %+v, want finished PLAYER_WIN", snap)
	}
	if snap.Winner == "" || snap.Loser == "" || snap.Winner == snap.Loser {
		t.Fatalf("winner %q loser %q", snap.Winner, snap.Loser)
	}
	for _, p := range snap.Players {
		if p.Name == snap.Loser && p.Health != 0 {
			t.Errorf("loser %q health = %d, want 0", p.Name, p.Health)
		}
	}
}
