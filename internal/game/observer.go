package game

import "wamserver/internal/game/item"

// PlayerState is one player's slice of a snapshot.
type PlayerState struct {
	Name   string   `json:"name"`
	Slot   int      `json:"slot"`
	Health int      `json:"health"`
	Map    item.Map `json:"map"`
}

// Snapshot is the immutable view of a match handed to observers. It is a
// value copy: observers run on their own goroutines and must never touch
// live session state.
type Snapshot struct {
	SessionID string        `json:"sessionId"`
	Round     int           `json:"round"`
	Players   []PlayerState `json:"players"`
	Finished  bool          `json:"finished"`
	Reason    string        `json:"finishReason,omitempty"`
	Winner    string        `json:"winner,omitempty"`
	Loser     string        `json:"loser,omitempty"`
}

// Observer receives session progress. Both calls happen on the session
// goroutine, so implementations should hand work off quickly.
type Observer interface {
	OnRoundUpdate(s Snapshot)
	OnSessionFinished(s Snapshot)
}

// MultiObserver fans notifications out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnRoundUpdate(s Snapshot) {
	for _, o := range m {
		o.OnRoundUpdate(s)
	}
}

func (m MultiObserver) OnSessionFinished(s Snapshot) {
	for _, o := range m {
		o.OnSessionFinished(s)
	}
}
