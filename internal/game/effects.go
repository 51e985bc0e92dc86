package game

import (
	"fmt"

	"wamserver/internal/game/item"
)

// applyItem dispatches the effect of the tile the acting player hit. The
// switch is exhaustive over the item set: BlockOpponent stays an explicit
// no-op branch until tile blocking ships, and an unknown item is an
// invariant violation, not a skippable case.
func (s *Session) applyItem(hit item.Item, acting, opponent *Player) {
	switch hit {
	case item.Blank:
		// No effect.
	case item.HealSelf:
		acting.Heal()
	case item.BlockOpponent:
		// TODO: disable a tile on the opponent's panel for one round once
		// the pad firmware can render blocked tiles.
	case item.AttackOpponent:
		opponent.Damage()
	case item.HealOpponent:
		opponent.Heal()
	default:
		panic(fmt.Sprintf("game: unknown tile item %d", hit))
	}
}
