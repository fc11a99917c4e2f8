package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deckforgeapp/deckforge/internal/cards"
	"github.com/deckforgeapp/deckforge/internal/simulate"
)

func sampleTrace() *simulate.GameTrace {
	bolt := cards.Card{
		Name:     "Lightning Bolt",
		Category: cards.CategorySpell,
		Cost:     cards.ManaCost{Symbols: []cards.Color{cards.Red}},
		Impact:   1,
		Tags:     []string{cards.TagRemoval},
	}
	divination := cards.Card{
		Name:     "Divination",
		Category: cards.CategorySpell,
		Cost:     cards.ManaCost{Generic: 2, Symbols: []cards.Color{cards.Blue}},
		Impact:   0.5,
		Tags:     []string{cards.TagCardDraw},
	}
	bear := cards.Card{
		Name:      "Grizzly Bears",
		Category:  cards.CategoryCreature,
		Cost:      cards.ManaCost{Generic: 1, Symbols: []cards.Color{cards.Green}},
		Power:     2,
		Toughness: 2,
		Impact:    0.5,
	}

	return &simulate.GameTrace{
		Turns: []simulate.TurnRecord{
			{Turn: 1, LandPlayed: true},
			{Turn: 2, LandPlayed: true, Spells: []cards.Card{bear}, ManaSpent: 2},
			{Turn: 3, LandPlayed: true, Spells: []cards.Card{bolt, divination}, ManaSpent: 4},
			{Turn: 4, LandMissed: true, ColorScrewed: true},
		},
		Board: []cards.Card{bear},
	}
}

func TestScoreBreakdown(t *testing.T) {
	b := Score(sampleTrace(), DefaultWeights())

	assert.Equal(t, 3.0, b.SpellsCast)
	assert.Equal(t, 6.0, b.ManaSpent)
	assert.Equal(t, 4.5, b.BoardPressure)
	assert.Equal(t, 1.5, b.SpellImpact)
	assert.Equal(t, 1.0, b.Interaction)
	assert.Equal(t, 1.0, b.CardDraw)
	assert.Equal(t, 0.0, b.Finishers)
	assert.Equal(t, 1.0, b.MissedLandDrops)
	assert.Equal(t, 1.0, b.ColorScrewTurns)

	want := 3*1.5 + 6*0.2 + 4.5*0.3 + 1.5*1.0 + 1*0.75 + 1*0.5 - 1*0.25 - 1*0.5
	assert.InDelta(t, want, b.Total, 1e-9)
}

func TestScoreIsPure(t *testing.T) {
	trace := sampleTrace()
	first := Score(trace, DefaultWeights())
	second := Score(trace, DefaultWeights())
	assert.Equal(t, first, second)
}

func TestScoreEmptyTrace(t *testing.T) {
	b := Score(&simulate.GameTrace{}, DefaultWeights())
	assert.Zero(t, b.Total)
}

func TestScorePenaltiesSubtract(t *testing.T) {
	trace := &simulate.GameTrace{
		Turns: []simulate.TurnRecord{
			{Turn: 1, LandMissed: true},
			{Turn: 2, LandMissed: true, ColorScrewed: true},
		},
	}
	b := Score(trace, DefaultWeights())
	assert.Negative(t, b.Total)
	assert.Equal(t, 2.0, b.MissedLandDrops)
	assert.Equal(t, 1.0, b.ColorScrewTurns)
}

func TestScoreWeightSensitivity(t *testing.T) {
	trace := sampleTrace()

	heavy := DefaultWeights()
	heavy.SpellsCast = 10
	assert.Greater(t, Score(trace, heavy).Total, Score(trace, DefaultWeights()).Total)

	harsh := DefaultWeights()
	harsh.ColorScrew = 10
	assert.Less(t, Score(trace, harsh).Total, Score(trace, DefaultWeights()).Total)
}
