package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforgeapp/deckforge/internal/cards"
)

func TestCountPossibleExact(t *testing.T) {
	pool := burnPool(t)

	dc := CountPossible(pool, 18, nil, 0)
	assert.False(t, dc.Estimated)
	assert.Equal(t, 83, dc.Total)
	assert.Equal(t, 83, dc.LowerBound)
	assert.Equal(t, 83, dc.UpperBound)
}

func TestCountPossibleCutoff(t *testing.T) {
	pool := burnPool(t)

	dc := CountPossible(pool, 18, nil, 5)
	assert.True(t, dc.Estimated)
	assert.Equal(t, 5, dc.Total)
	assert.Equal(t, 5, dc.UpperBound)
}

func TestCountPossibleRulesBounds(t *testing.T) {
	pool := burnPool(t)
	rules := &Rules{MaxLands: intp(16)}

	exact := CountPossible(pool, 18, rules, 0)
	assert.False(t, exact.Estimated)
	// Rules reject the two-card splits that put 17 copies in one land plus
	// 17 or 18 total lands; everything else survives.
	assert.Less(t, exact.Total, 83)
	assert.Equal(t, exact.LowerBound, exact.UpperBound)

	est := CountPossible(pool, 18, rules, 5)
	assert.True(t, est.Estimated)
	assert.LessOrEqual(t, est.LowerBound, est.UpperBound)
	assert.Equal(t, 5, est.UpperBound)
}

func TestCountPossibleUnreachable(t *testing.T) {
	pool, err := cards.NewPool(
		cards.Card{Name: "Bolt", Category: cards.CategorySpell, MaxCopies: 4},
	)
	require.NoError(t, err)

	dc := CountPossible(pool, 18, nil, 0)
	assert.Zero(t, dc.Total)
	assert.False(t, dc.Estimated)
}

func TestCountPossibleMatchesEnumerate(t *testing.T) {
	pool, err := cards.NewPool(
		cards.Card{Name: "Forest", Category: cards.CategoryLand, MaxCopies: 4},
		cards.Card{Name: "Elf", Category: cards.CategoryCreature, Power: 1, Toughness: 1, MaxCopies: 4},
		cards.Card{Name: "Bolt", Category: cards.CategorySpell, MaxCopies: 4},
	)
	require.NoError(t, err)
	rules := &Rules{MinLands: intp(1), MinCreatures: intp(1)}

	dc := CountPossible(pool, 6, rules, 0)
	result, err := Enumerate(pool, Options{DeckSize: 6, Rules: rules}, nil)
	require.NoError(t, err)
	assert.Equal(t, len(result.Decks), dc.Total)
}
