package item

import "testing"

func TestItemCodeRoundTrip(t *testing.T) {
	for _, it := range Items {
		got, ok := FromCode(it.Code())
		if !ok {
			t.Errorf("FromCode(%q) not ok for item %s", it.Code(), it)
			continue
		}
		if got != it {
			t.Errorf("FromCode(%q) = %s, want %s", it.Code(), got, it)
		}
	}
}

func TestFromCodeRejectsUnknownCodes(t *testing.T) {
	for _, c := range []byte{'3', '6', '7', '8', '9', 'a', ';', ' '} {
		if _, ok := FromCode(c); ok {
			t.Errorf("FromCode(%q) ok, want rejection", c)
		}
	}
}

func TestItemString(t *testing.T) {
	tests := []struct {
		item Item
		want string
	}{
		{Blank, "BLANK"},
		{HealSelf, "HEAL_SELF"},
		{BlockOpponent, "BLOCK_OPPONENT"},
		{AttackOpponent, "ATTACK_OPPONENT"},
		{HealOpponent, "HEAL_OPPONENT"},
		{Item(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.item.String(); got != tt.want {
			t.Errorf("Item(%d).String() = %q, want %q", tt.item, got, tt.want)
		}
	}
}
