package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforgeapp/deckforge/internal/cards"
)

func intp(v int) *int { return &v }

func burnPool(t *testing.T) *cards.Pool {
	t.Helper()
	pool, err := cards.NewPool(
		cards.Card{Name: "Forest", Category: cards.CategoryLand, Colors: []cards.Color{cards.Green}, MaxCopies: 17, BasicLand: true},
		cards.Card{Name: "Mountain", Category: cards.CategoryLand, Colors: []cards.Color{cards.Red}, MaxCopies: 17, BasicLand: true},
		cards.Card{Name: "CardA", Category: cards.CategorySpell, Cost: cards.ManaCost{Generic: 1, Symbols: []cards.Color{cards.Red}}, MaxCopies: 4},
	)
	require.NoError(t, err)
	return pool
}

func TestEnumerateBurnPool(t *testing.T) {
	pool := burnPool(t)

	result, err := Enumerate(pool, Options{DeckSize: 18}, nil)
	require.NoError(t, err)
	assert.False(t, result.Truncated)

	// Compositions of 18 over Forest 0-17, Mountain 0-17, CardA 0-4:
	// for each CardA count c the lands split 18-c ways within their caps,
	// giving 17+18+17+16+15 = 83 decks.
	assert.Len(t, result.Decks, 83)
	assert.Equal(t, 83, result.Examined)

	for _, deck := range result.Decks {
		assert.Equal(t, 18, deck.Size())
		assert.LessOrEqual(t, deck.Count("CardA"), 4)
		assert.LessOrEqual(t, deck.Count("Forest"), 17)
		assert.LessOrEqual(t, deck.Count("Mountain"), 17)
	}
}

func TestEnumerateRespectsDeckRules(t *testing.T) {
	pool, err := cards.NewPool(
		cards.Card{Name: "Forest", Category: cards.CategoryLand, MaxCopies: 4},
		cards.Card{Name: "Elf", Category: cards.CategoryCreature, Power: 1, Toughness: 1, MaxCopies: 4},
		cards.Card{Name: "Bolt", Category: cards.CategorySpell, Cost: cards.ManaCost{Generic: 1}, MaxCopies: 4},
	)
	require.NoError(t, err)

	rules := &Rules{
		MinLands: intp(2), MaxLands: intp(4),
		MinCreatures: intp(1), MaxCreatures: intp(3),
	}
	result, err := Enumerate(pool, Options{DeckSize: 6, Rules: rules}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, result.Decks)

	for _, deck := range result.Decks {
		lands := deck.Lands()
		creatures := deck.Creatures()
		assert.GreaterOrEqual(t, lands, 2)
		assert.LessOrEqual(t, lands, 4)
		assert.GreaterOrEqual(t, creatures, 1)
		assert.LessOrEqual(t, creatures, 3)
	}
}

func TestEnumerateCapTruncates(t *testing.T) {
	pool := burnPool(t)

	result, err := Enumerate(pool, Options{DeckSize: 18, Limit: 10}, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Examined)
	assert.LessOrEqual(t, len(result.Decks), 10)
	assert.True(t, result.Truncated)
}

func TestEnumerateCapCountsRejectedCompositions(t *testing.T) {
	pool := burnPool(t)

	// Rules nothing can satisfy: every composition is examined, none
	// accepted, and the cap still bounds the work.
	rules := &Rules{MinCreatures: intp(1)}
	result, err := Enumerate(pool, Options{DeckSize: 18, Limit: 10, Rules: rules}, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Examined)
	assert.Empty(t, result.Decks)
}

func TestEnumerateEmptyPool(t *testing.T) {
	pool, err := cards.NewPool()
	require.NoError(t, err)

	result, err := Enumerate(pool, Options{DeckSize: 18}, nil)
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.False(t, result.Truncated)
	assert.Equal(t, 0, result.Examined)
}

func TestEnumerateUnreachableDeckSize(t *testing.T) {
	pool, err := cards.NewPool(
		cards.Card{Name: "Bolt", Category: cards.CategorySpell, MaxCopies: 4},
	)
	require.NoError(t, err)

	result, err := Enumerate(pool, Options{DeckSize: 18}, nil)
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestEnumerateForcedUniqueDeck(t *testing.T) {
	pool, err := cards.NewPool(
		cards.Card{Name: "Mountain", Category: cards.CategoryLand, MinCopies: 14, MaxCopies: 14},
		cards.Card{Name: "Bolt", Category: cards.CategorySpell, MinCopies: 4, MaxCopies: 4},
	)
	require.NoError(t, err)

	result, err := Enumerate(pool, Options{DeckSize: 18}, nil)
	require.NoError(t, err)
	require.Len(t, result.Decks, 1)
	assert.False(t, result.Truncated)
	assert.Equal(t, 14, result.Decks[0].Count("Mountain"))
	assert.Equal(t, 4, result.Decks[0].Count("Bolt"))
}

func TestEnumerateInvalidOptions(t *testing.T) {
	pool := burnPool(t)

	_, err := Enumerate(pool, Options{DeckSize: 0}, nil)
	require.Error(t, err)

	_, err = Enumerate(pool, Options{DeckSize: 18, Limit: -1}, nil)
	require.Error(t, err)
}

func TestEnumerateProgress(t *testing.T) {
	pool := burnPool(t)

	var calls [][2]int
	_, err := Enumerate(pool, Options{DeckSize: 18, Limit: 10}, func(done, total int) {
		calls = append(calls, [2]int{done, total})
	})
	require.NoError(t, err)
	require.NotEmpty(t, calls)
	assert.Equal(t, [2]int{0, 10}, calls[0])
	assert.Equal(t, [2]int{10, 10}, calls[len(calls)-1])
}

func TestEnumerateSeededOrderIsDeterministic(t *testing.T) {
	pool := burnPool(t)
	seed := int64(5)
	opts := Options{DeckSize: 18, Limit: 20, Seed: &seed}

	first, err := Enumerate(pool, opts, nil)
	require.NoError(t, err)
	second, err := Enumerate(pool, opts, nil)
	require.NoError(t, err)

	require.Len(t, second.Decks, len(first.Decks))
	for i := range first.Decks {
		assert.Equal(t, first.Decks[i].Entries(), second.Decks[i].Entries())
	}
	for _, deck := range first.Decks {
		assert.Equal(t, 18, deck.Size())
	}
}

func BenchmarkEnumerate(b *testing.B) {
	pool, err := cards.NewPool(
		cards.Card{Name: "Forest", Category: cards.CategoryLand, MaxCopies: 17, BasicLand: true},
		cards.Card{Name: "Mountain", Category: cards.CategoryLand, MaxCopies: 17, BasicLand: true},
		cards.Card{Name: "Llanowar Elves", Category: cards.CategoryCreature, MaxCopies: 4},
		cards.Card{Name: "Lightning Bolt", Category: cards.CategorySpell, MaxCopies: 4},
		cards.Card{Name: "Giant Growth", Category: cards.CategorySpell, MaxCopies: 4},
	)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Enumerate(pool, Options{DeckSize: 18, Limit: 5000}, nil); err != nil {
			b.Fatal(err)
		}
	}
}
