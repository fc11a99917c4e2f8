package deckimport

import (
	"context"
	"fmt"

	"github.com/deckforgeapp/deckforge/internal/cards"
)

// Resolver supplies card metadata for names the decklist does not
// describe. The catalog client with its cache sits behind this interface.
type Resolver interface {
	Resolve(ctx context.Context, name string) (cards.Card, error)
}

// BuildOptions control how parsed entries become a searchable pool.
type BuildOptions struct {
	// DeckSize caps the copy range of uncapped basic lands.
	DeckSize int

	// Fixed pins every count exactly (min = max = count) instead of
	// treating the list as a pool. Every entry must carry a count.
	Fixed bool
}

// BuildPool resolves every entry's metadata and assigns copy bounds: in
// pool mode counted cards range 0..count (non-basics capped at 4), bare
// names are basic lands ranging 0..deck size; in fixed mode counts are
// pinned as written.
func BuildPool(ctx context.Context, entries []Entry, resolver Resolver, opts BuildOptions) (*cards.Pool, error) {
	list := make([]cards.Card, 0, len(entries))
	for _, entry := range entries {
		if opts.Fixed && !entry.HasCount {
			return nil, fmt.Errorf("card %q: counts are required for fixed decklists", entry.Name)
		}

		card, err := resolver.Resolve(ctx, entry.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", entry.Name, err)
		}
		if entry.Impact != 0 {
			card.Impact = entry.Impact
		}
		if cards.BasicLandNames[card.Name] {
			card.BasicLand = true
		}

		switch {
		case opts.Fixed:
			card.MinCopies = entry.Count
			card.MaxCopies = entry.Count
		case entry.HasCount:
			card.MinCopies = 0
			card.MaxCopies = entry.Count
			if !card.BasicLand && card.MaxCopies > 4 {
				card.MaxCopies = 4
			}
		default:
			card.MinCopies = 0
			if card.BasicLand {
				card.MaxCopies = opts.DeckSize
			} else {
				card.MaxCopies = 4
			}
		}

		list = append(list, card)
	}
	return cards.NewPool(list...)
}

// FixedCounts extracts the pinned per-name counts from entries for
// constructing a fixed decklist.
func FixedCounts(entries []Entry) map[string]int {
	counts := make(map[string]int, len(entries))
	for _, entry := range entries {
		counts[entry.Name] += entry.Count
	}
	return counts
}
