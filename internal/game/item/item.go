package item

// Item is one of the fixed tile items a mole panel can display.
// The numeric value doubles as the wire code sent inside a round map frame.
type Item uint8

const (
	// Blank is an empty tile. Hitting it has no effect.
	Blank Item = 0
	// HealSelf restores health to the player who hit it.
	HealSelf Item = 1
	// BlockOpponent will temporarily disable a tile on the opponent's
	// panel. The effect is not implemented yet and resolves as a no-op.
	BlockOpponent Item = 2
	// AttackOpponent damages the opposing player.
	AttackOpponent Item = 4
	// HealOpponent restores health to the opposing player.
	HealOpponent Item = 5
)

// Items is the closed set of valid tile items.
var Items = [...]Item{Blank, HealSelf, BlockOpponent, AttackOpponent, HealOpponent}

// Code returns the single ASCII digit used for this item on the wire.
func (i Item) Code() byte {
	return '0' + byte(i)
}

// FromCode maps a wire digit back to an Item. ok is false for digits
// outside the known set.
func FromCode(c byte) (Item, bool) {
	for _, it := range Items {
		if it.Code() == c {
			return it, true
		}
	}
	return Blank, false
}

func (i Item) String() string {
	switch i {
	case Blank:
		return "BLANK"
	case HealSelf:
		return "HEAL_SELF"
	case BlockOpponent:
		return "BLOCK_OPPONENT"
	case AttackOpponent:
		return "ATTACK_OPPONENT"
	case HealOpponent:
		return "HEAL_OPPONENT"
	default:
		return "UNKNOWN"
	}
}
