// Package simulate runs randomized early-game playouts ("goldfishing")
// of a fixed decklist: shuffle, draw, land drops and greedy casts over a
// small turn horizon, recording a trace per game. No win/loss condition
// is modeled; the traces measure consistency and tempo only.
package simulate

import "github.com/deckforgeapp/deckforge/internal/cards"

// TurnRecord captures what happened on one simulated turn.
type TurnRecord struct {
	Turn         int
	LandPlayed   bool
	LandMissed   bool
	ColorScrewed bool
	Spells       []cards.Card
	ManaSpent    int

	// Actions is a human-readable narrative of the turn, useful for
	// verbose output and debugging policies.
	Actions []string
}

// GameTrace is the full record of one playout.
type GameTrace struct {
	Turns []TurnRecord

	// Board holds the creatures in play at the end of the horizon.
	Board []cards.Card
}

// SpellsCast returns the number of non-land cards cast across all turns.
func (t *GameTrace) SpellsCast() int {
	total := 0
	for _, turn := range t.Turns {
		total += len(turn.Spells)
	}
	return total
}

// ManaSpent returns the total mana spent across all turns.
func (t *GameTrace) ManaSpent() int {
	total := 0
	for _, turn := range t.Turns {
		total += turn.ManaSpent
	}
	return total
}

// MissedLandDrops returns the number of turns whose land drop went
// unused.
func (t *GameTrace) MissedLandDrops() int {
	total := 0
	for _, turn := range t.Turns {
		if turn.LandMissed {
			total++
		}
	}
	return total
}

// ColorScrewTurns returns the number of turns flagged color-screwed.
func (t *GameTrace) ColorScrewTurns() int {
	total := 0
	for _, turn := range t.Turns {
		if turn.ColorScrewed {
			total++
		}
	}
	return total
}
