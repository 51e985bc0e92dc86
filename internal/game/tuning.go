package game

// MinHealth is the death floor. Unlike the other health constants it is
// not tunable: the death predicate is health <= MinHealth.
const MinHealth = 0

// Tuning holds the health constants for a match. Max health and heal
// amount are still being balanced per playtest, so they load from config
// instead of being hard-coded.
type Tuning struct {
	MaxHealth    int
	HealAmount   int
	AttackDamage int
}

// DefaultTuning returns the values the cabinets currently run with.
func DefaultTuning() Tuning {
	return Tuning{
		MaxHealth:    100,
		HealAmount:   20,
		AttackDamage: 10,
	}
}
