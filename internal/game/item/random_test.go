package item

import (
	"math/rand/v2"
	"testing"
)

// With 100k draws the sample frequencies sit well inside one percentage
// point of the configured weights, so the tolerance below is loose
// enough to never flake and tight enough to catch a wrong weight table.
func TestRollMatchesDistribution(t *testing.T) {
	const draws = 100000
	r := rand.New(rand.NewPCG(7, 11))

	counts := make(map[Item]int)
	for i := 0; i < draws; i++ {
		counts[Roll(r)]++
	}

	want := map[Item]float64{
		Blank:          0.50,
		HealSelf:       0.15,
		BlockOpponent:  0.05,
		AttackOpponent: 0.20,
		HealOpponent:   0.10,
	}
	for it, p := range want {
		got := float64(counts[it]) / draws
		if diff := got - p; diff < -0.01 || diff > 0.01 {
			t.Errorf("item %s frequency %.4f, want %.2f within 0.01", it, got, p)
		}
	}

	if len(counts) != len(Items) {
		t.Errorf("saw %d distinct items in %d draws, want %d", len(counts), draws, len(Items))
	}
}

func TestNewRandomMapDrawsValidTiles(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	seen := make(map[Item]bool)
	for i := 0; i < 100; i++ {
		m := NewRandomMap(r)
		for tile, it := range m {
			if _, ok := FromCode(it.Code()); !ok {
				t.Fatalf("map %d tile %d holds unknown item %d", i, tile, it)
			}
			seen[it] = true
		}
	}

	// 900 independent draws must produce more than one distinct item.
	if len(seen) < 2 {
		t.Errorf("100 maps produced only %d distinct items", len(seen))
	}
}
