package game

import (
	"fmt"
	"math/rand/v2"

	"wamserver/internal/game/item"
)

// FinishReason says why a session reached its terminal state.
type FinishReason int

const (
	// FinishUnspecified means the session has not finished.
	FinishUnspecified FinishReason = iota
	// FinishPlayerWin means one player drove the other to the death floor.
	FinishPlayerWin
	// FinishInvalidPlayerCount means setup could not bind exactly two pads.
	FinishInvalidPlayerCount
	// FinishOperatorShutdown means the operator cancelled the match.
	FinishOperatorShutdown
)

func (r FinishReason) String() string {
	switch r {
	case FinishPlayerWin:
		return "PLAYER_WIN"
	case FinishInvalidPlayerCount:
		return "INVALID_PLAYER_COUNT"
	case FinishOperatorShutdown:
		return "OPERATOR_SHUTDOWN"
	default:
		return "UNSPECIFIED"
	}
}

// GameInfo is the per-match state: both players, their current round
// layouts and the finish outcome. Owned exclusively by the session
// goroutine; finishing twice is a programming error and panics.
type GameInfo struct {
	players map[string]*Player
	maps    map[string]item.Map

	finished bool
	reason   FinishReason
	winner   *Player
	loser    *Player
}

func newGameInfo(players []*Player, rng *rand.Rand) *GameInfo {
	info := &GameInfo{
		players: make(map[string]*Player, len(players)),
		maps:    make(map[string]item.Map, len(players)),
	}
	for _, p := range players {
		info.players[p.Name()] = p
	}
	info.buildRandomMaps(rng)
	return info
}

// buildRandomMaps draws a fresh independent layout for every player and
// returns the new layouts keyed by player name.
func (g *GameInfo) buildRandomMaps(rng *rand.Rand) map[string]item.Map {
	for name := range g.players {
		g.maps[name] = item.NewRandomMap(rng)
	}
	return g.maps
}

// Finished reports whether the match reached a terminal state.
func (g *GameInfo) Finished() bool { return g.finished }

// Reason returns the finish reason, FinishUnspecified while running.
func (g *GameInfo) Reason() FinishReason { return g.reason }

// Winner returns the winning player, nil unless finished with PLAYER_WIN.
func (g *GameInfo) Winner() *Player { return g.winner }

// Loser returns the losing player, nil unless finished with PLAYER_WIN.
func (g *GameInfo) Loser() *Player { return g.loser }

func (g *GameInfo) setWinner(p *Player) {
	if p == nil {
		panic("game: winner must be a player")
	}
	g.winner = p
}

func (g *GameInfo) setLoser(p *Player) {
	if p == nil {
		panic("game: loser must be a player")
	}
	g.loser = p
}

func (g *GameInfo) finish(reason FinishReason) {
	if g.finished {
		panic(fmt.Sprintf("game: finish(%s) on an already finished match", reason))
	}
	g.finished = true
	g.reason = reason
}
