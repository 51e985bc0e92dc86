package game

import (
	"math/rand/v2"
	"testing"
)

func TestFinishReasonString(t *testing.T) {
	tests := []struct {
		reason FinishReason
		want   string
	}{
		{FinishUnspecified, "UNSPECIFIED"},
		{FinishPlayerWin, "PLAYER_WIN"},
		{FinishInvalidPlayerCount, "INVALID_PLAYER_COUNT"},
		{FinishOperatorShutdown, "OPERATOR_SHUTDOWN"},
		{FinishReason(42), "UNSPECIFIED"},
	}
	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("FinishReason(%d).String() = %q, want %q", tt.reason, got, tt.want)
		}
	}
}

func TestGameInfoFinishTwicePanics(t *testing.T) {
	info := newGameInfo(nil, rand.New(rand.NewPCG(1, 2)))
	info.finish(FinishOperatorShutdown)

	if !info.Finished() || info.Reason() != FinishOperatorShutdown {
		t.Fatalf("finished %v reason %s", info.Finished(), info.Reason())
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second finish")
		}
	}()
	info.finish(FinishPlayerWin)
}

func TestGameInfoSetWinnerNilPanics(t *testing.T) {
	info := newGameInfo(nil, rand.New(rand.NewPCG(1, 2)))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on nil winner")
		}
	}()
	info.setWinner(nil)
}

func TestGameInfoBuildRandomMaps(t *testing.T) {
	s, _ := newBoundSession(t, DefaultTuning())

	maps := s.info.buildRandomMaps(s.rng)
	if len(maps) != 2 {
		t.Fatalf("got %d maps, want one per player", len(maps))
	}
	for _, p := range s.players {
		if _, ok := maps[p.Name()]; !ok {
			t.Errorf("no map drawn for player %q", p.Name())
		}
	}
}
