package item

import "math/rand/v2"

// MapSize is the number of tiles on a player panel (3x3, flattened
// bottom-to-top, left-to-right).
const MapSize = 9

// Map is one round's tile layout for a single player.
type Map [MapSize]Item

type weightedItem struct {
	Item   Item
	Weight int
}

// itemDistribution holds the relative spawn weight of each item.
// The weights sum to 100 but are treated as relative.
var itemDistribution = []weightedItem{
	{Item: Blank, Weight: 50},
	{Item: HealSelf, Weight: 15},
	{Item: BlockOpponent, Weight: 5},
	{Item: AttackOpponent, Weight: 20},
	{Item: HealOpponent, Weight: 10},
}

var totalWeight int

func init() {
	totalWeight = 0
	for _, wi := range itemDistribution {
		totalWeight += wi.Weight
	}
}

// Roll draws a single item from the weighted distribution.
func Roll(r *rand.Rand) Item {
	roll := r.IntN(totalWeight)
	for _, wi := range itemDistribution {
		roll -= wi.Weight
		if roll < 0 {
			return wi.Item
		}
	}
	return itemDistribution[len(itemDistribution)-1].Item
}

// NewRandomMap draws a full 9-tile layout, each tile independently
// with replacement.
func NewRandomMap(r *rand.Rand) Map {
	var m Map
	for i := range m {
		m[i] = Roll(r)
	}
	return m
}
