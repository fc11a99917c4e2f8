package deckimport

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforgeapp/deckforge/internal/cards"
)

// fakeResolver serves canned metadata keyed by name.
type fakeResolver struct {
	cards map[string]cards.Card
}

func (f *fakeResolver) Resolve(_ context.Context, name string) (cards.Card, error) {
	card, ok := f.cards[name]
	if !ok {
		return cards.Card{}, errors.New("unknown card")
	}
	return card, nil
}

func testResolver() *fakeResolver {
	return &fakeResolver{cards: map[string]cards.Card{
		"Mountain": {
			Name:     "Mountain",
			Category: cards.CategoryLand,
			Colors:   []cards.Color{cards.Red},
		},
		"Lightning Bolt": {
			Name:     "Lightning Bolt",
			Category: cards.CategorySpell,
			Cost:     cards.ManaCost{Symbols: []cards.Color{cards.Red}},
		},
		"Dragon's Hoard": {
			Name:     "Dragon's Hoard",
			Category: cards.CategorySpell,
			Cost:     cards.ManaCost{Generic: 3},
		},
	}}
}

func TestBuildPoolBounds(t *testing.T) {
	entries := []Entry{
		{Name: "Mountain"},
		{Name: "Lightning Bolt", Count: 4, HasCount: true},
		{Name: "Dragon's Hoard", Count: 6, HasCount: true},
	}

	pool, err := BuildPool(context.Background(), entries, testResolver(), BuildOptions{DeckSize: 18})
	require.NoError(t, err)
	require.Equal(t, 3, pool.Len())

	// Bare basic land fills any number of remaining slots.
	mountain, ok := pool.ByName("Mountain")
	require.True(t, ok)
	assert.True(t, mountain.BasicLand)
	assert.Equal(t, 0, mountain.MinCopies)
	assert.Equal(t, 18, mountain.MaxCopies)

	bolt, ok := pool.ByName("Lightning Bolt")
	require.True(t, ok)
	assert.Equal(t, 0, bolt.MinCopies)
	assert.Equal(t, 4, bolt.MaxCopies)

	// Non-basic counts above four are capped.
	hoard, ok := pool.ByName("Dragon's Hoard")
	require.True(t, ok)
	assert.Equal(t, 4, hoard.MaxCopies)
}

func TestBuildPoolFixedPinsCounts(t *testing.T) {
	entries := []Entry{
		{Name: "Mountain", Count: 14, HasCount: true},
		{Name: "Lightning Bolt", Count: 4, HasCount: true},
	}

	pool, err := BuildPool(context.Background(), entries, testResolver(), BuildOptions{Fixed: true})
	require.NoError(t, err)

	mountain, ok := pool.ByName("Mountain")
	require.True(t, ok)
	assert.Equal(t, 14, mountain.MinCopies)
	assert.Equal(t, 14, mountain.MaxCopies)
}

func TestBuildPoolFixedRequiresCounts(t *testing.T) {
	entries := []Entry{{Name: "Mountain"}}
	_, err := BuildPool(context.Background(), entries, testResolver(), BuildOptions{Fixed: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "counts are required")
}

func TestBuildPoolImpactOverride(t *testing.T) {
	entries := []Entry{
		{Name: "Lightning Bolt", Count: 4, HasCount: true, Impact: 2.5},
	}

	pool, err := BuildPool(context.Background(), entries, testResolver(), BuildOptions{DeckSize: 18})
	require.NoError(t, err)

	bolt, ok := pool.ByName("Lightning Bolt")
	require.True(t, ok)
	assert.Equal(t, 2.5, bolt.Impact)
}

func TestBuildPoolResolveFailure(t *testing.T) {
	entries := []Entry{{Name: "Storm Crow", Count: 4, HasCount: true}}
	_, err := BuildPool(context.Background(), entries, testResolver(), BuildOptions{DeckSize: 18})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `resolve "Storm Crow"`)
}

func TestFixedCounts(t *testing.T) {
	entries := []Entry{
		{Name: "Mountain", Count: 10, HasCount: true},
		{Name: "Lightning Bolt", Count: 4, HasCount: true},
		{Name: "Mountain", Count: 4, HasCount: true},
	}
	counts := FixedCounts(entries)
	assert.Equal(t, map[string]int{"Mountain": 14, "Lightning Bolt": 4}, counts)
}
