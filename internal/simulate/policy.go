package simulate

import "github.com/deckforgeapp/deckforge/internal/cards"

// Mana is the simplified mana state for one turn: lands tap for one mana
// each, and the color pool is the union of the colors of lands in play.
type Mana struct {
	Available int
	Colors    map[cards.Color]bool
}

// CanPay reports whether the card's cost is payable: total cost within
// the available count and every required color present in the pool.
func (m Mana) CanPay(c cards.Card) bool {
	if c.Cost.Total() > m.Available {
		return false
	}
	for _, color := range c.Cost.Colors() {
		if !m.Colors[color] {
			return false
		}
	}
	return true
}

// CountSuffices reports whether raw mana count alone would cover the
// cost, ignoring colors. Used for color-screw detection.
func (m Mana) CountSuffices(c cards.Card) bool {
	return c.Cost.Total() <= m.Available
}

// Policy decides the land drop and cast order each turn. The simulator
// consumes a Policy so sequencing variants (hold-up, curve-aware) can be
// swapped in without touching the turn loop.
type Policy interface {
	// ChooseLand returns the hand index of the land to play, or -1 to
	// decline the drop.
	ChooseLand(hand []cards.Card) int

	// ChooseCast returns the hand index of the next card to cast given
	// the remaining mana, or -1 when nothing should be cast. The
	// simulator calls it repeatedly within a turn.
	ChooseCast(hand []cards.Card, mana Mana) int
}

// GreedyPolicy is the default fixed strategy: play the first land in hand
// order, then repeatedly cast the most expensive affordable card. Ties on
// cost break toward the earlier hand position.
type GreedyPolicy struct{}

func (GreedyPolicy) ChooseLand(hand []cards.Card) int {
	for i, c := range hand {
		if c.IsLand() {
			return i
		}
	}
	return -1
}

func (GreedyPolicy) ChooseCast(hand []cards.Card, mana Mana) int {
	best := -1
	for i, c := range hand {
		if c.IsLand() || !mana.CanPay(c) {
			continue
		}
		if best == -1 || c.Cost.Total() > hand[best].Cost.Total() {
			best = i
		}
	}
	return best
}
