// Package score reduces a game trace to a composite fitness number plus
// its component sub-metrics. Scoring is pure: same trace, same breakdown.
package score

import (
	"github.com/deckforgeapp/deckforge/internal/cards"
	"github.com/deckforgeapp/deckforge/internal/simulate"
)

// Weights configure the composite formula. Positive terms add, penalty
// weights subtract.
type Weights struct {
	SpellsCast     float64 `toml:"spells_cast" yaml:"spells_cast" json:"spells_cast"`
	ManaSpent      float64 `toml:"mana_spent" yaml:"mana_spent" json:"mana_spent"`
	BoardPressure  float64 `toml:"board_pressure" yaml:"board_pressure" json:"board_pressure"`
	SpellImpact    float64 `toml:"spell_impact" yaml:"spell_impact" json:"spell_impact"`
	Interaction    float64 `toml:"interaction" yaml:"interaction" json:"interaction"`
	CardDraw       float64 `toml:"card_draw" yaml:"card_draw" json:"card_draw"`
	Finisher       float64 `toml:"finisher" yaml:"finisher" json:"finisher"`
	MissedLandDrop float64 `toml:"missed_land_drop" yaml:"missed_land_drop" json:"missed_land_drop"`
	ColorScrew     float64 `toml:"color_screw" yaml:"color_screw" json:"color_screw"`
}

// DefaultWeights prefer proactive starts: casting spells dominates, raw
// mana use is a small bonus, and screwed or land-starved turns are
// penalized.
func DefaultWeights() Weights {
	return Weights{
		SpellsCast:     1.5,
		ManaSpent:      0.2,
		BoardPressure:  0.3,
		SpellImpact:    1.0,
		Interaction:    0.75,
		CardDraw:       0.5,
		Finisher:       1.0,
		MissedLandDrop: 0.25,
		ColorScrew:     0.5,
	}
}

// Breakdown holds the raw value of every scoring term alongside the
// weighted composite Total. Raw terms are retained for reporting and for
// per-deck averaging.
type Breakdown struct {
	SpellsCast      float64
	ManaSpent       float64
	BoardPressure   float64
	SpellImpact     float64
	Interaction     float64
	CardDraw        float64
	Finishers       float64
	MissedLandDrops float64
	ColorScrewTurns float64
	Total           float64
}

// Score derives a Breakdown from one trace under the given weights.
func Score(trace *simulate.GameTrace, w Weights) Breakdown {
	var b Breakdown

	b.SpellsCast = float64(trace.SpellsCast())
	b.ManaSpent = float64(trace.ManaSpent())
	b.MissedLandDrops = float64(trace.MissedLandDrops())
	b.ColorScrewTurns = float64(trace.ColorScrewTurns())

	for _, creature := range trace.Board {
		b.BoardPressure += float64(creature.Power+creature.Toughness) + creature.Impact
	}

	for _, turn := range trace.Turns {
		for _, card := range turn.Spells {
			if !card.IsCreature() {
				b.SpellImpact += card.Impact
			}
			if card.HasTag(cards.TagRemoval) || card.HasTag(cards.TagCounter) {
				b.Interaction++
			}
			if card.HasTag(cards.TagCardDraw) {
				b.CardDraw++
			}
			if card.HasTag(cards.TagFinisher) {
				b.Finishers++
			}
		}
	}

	b.Total = b.SpellsCast*w.SpellsCast +
		b.ManaSpent*w.ManaSpent +
		b.BoardPressure*w.BoardPressure +
		b.SpellImpact*w.SpellImpact +
		b.Interaction*w.Interaction +
		b.CardDraw*w.CardDraw +
		b.Finishers*w.Finisher -
		b.MissedLandDrops*w.MissedLandDrop -
		b.ColorScrewTurns*w.ColorScrew

	return b
}
