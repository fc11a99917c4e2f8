package cards

import (
	"fmt"
	"sort"
	"strings"
)

// Decklist assigns a copy count to every card of a pool. Counts are laid
// out in pool order, sum to the configured deck size and respect each
// card's copy bounds. Decklists are produced either by the deck search or
// by FixedDecklist for pinned imports; once built they are never mutated.
type Decklist struct {
	pool   *Pool
	counts []int
}

// Entry pairs a card with its chosen copy count.
type Entry struct {
	Card  Card
	Count int
}

// FixedDeckError reports a pinned decklist that violates a card's copy
// bounds or the target deck size. Unlike search rejections this is fatal:
// no search can correct a pinned count.
type FixedDeckError struct {
	Card  string // empty when the problem is the overall size
	Count int
	Min   int
	Max   int
	Size  int
	Want  int
}

func (e *FixedDeckError) Error() string {
	if e.Card != "" {
		return fmt.Sprintf("fixed deck: %d copies of %q outside allowed range [%d, %d]",
			e.Count, e.Card, e.Min, e.Max)
	}
	return fmt.Sprintf("fixed deck: %d cards, want exactly %d", e.Size, e.Want)
}

// NewDecklist wraps a counts slice already validated by the deck search.
// The slice is copied; the pool is shared.
func NewDecklist(pool *Pool, counts []int) Decklist {
	dup := make([]int, len(counts))
	copy(dup, counts)
	return Decklist{pool: pool, counts: dup}
}

// FixedDecklist builds a decklist from pinned per-name counts, enforcing
// every card bound and the exact deck size. Names absent from the map get
// zero copies.
func FixedDecklist(pool *Pool, counts map[string]int, deckSize int) (Decklist, error) {
	laid := make([]int, pool.Len())
	for name, count := range counts {
		i, ok := pool.index[name]
		if !ok {
			return Decklist{}, fmt.Errorf("fixed deck: card %q not in pool", name)
		}
		laid[i] = count
	}
	total := 0
	for i, count := range laid {
		c := pool.Card(i)
		if count < c.MinCopies || count > c.MaxCopies {
			return Decklist{}, &FixedDeckError{
				Card: c.Name, Count: count, Min: c.MinCopies, Max: c.MaxCopies,
			}
		}
		total += count
	}
	if total != deckSize {
		return Decklist{}, &FixedDeckError{Size: total, Want: deckSize}
	}
	return NewDecklist(pool, laid), nil
}

// Pool returns the shared pool the decklist is laid out over.
func (d Decklist) Pool() *Pool { return d.pool }

// Size returns the total number of cards.
func (d Decklist) Size() int {
	total := 0
	for _, c := range d.counts {
		total += c
	}
	return total
}

// Count returns the copies of the named card, zero if absent.
func (d Decklist) Count(name string) int {
	i, ok := d.pool.index[name]
	if !ok {
		return 0
	}
	return d.counts[i]
}

// CountAt returns the copies of the card at pool position i.
func (d Decklist) CountAt(i int) int { return d.counts[i] }

// Lands returns the total land count.
func (d Decklist) Lands() int {
	total := 0
	for i, count := range d.counts {
		if d.pool.Card(i).IsLand() {
			total += count
		}
	}
	return total
}

// Creatures returns the total creature count.
func (d Decklist) Creatures() int {
	total := 0
	for i, count := range d.counts {
		if d.pool.Card(i).IsCreature() {
			total += count
		}
	}
	return total
}

// Entries returns the cards with nonzero counts, in pool order.
func (d Decklist) Entries() []Entry {
	entries := make([]Entry, 0, len(d.counts))
	for i, count := range d.counts {
		if count > 0 {
			entries = append(entries, Entry{Card: d.pool.Card(i), Count: count})
		}
	}
	return entries
}

// Flatten expands the decklist into one element per physical copy, in
// pool order. The simulator shuffles this expansion.
func (d Decklist) Flatten() []Card {
	out := make([]Card, 0, d.Size())
	for i, count := range d.counts {
		card := d.pool.Card(i)
		for j := 0; j < count; j++ {
			out = append(out, card)
		}
	}
	return out
}

// String renders the decklist as "4x Bolt, 17x Mountain" with lands last,
// matching the usual decklist reading order.
func (d Decklist) String() string {
	entries := d.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return !entries[i].Card.IsLand() && entries[j].Card.IsLand()
	})
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%dx %s", e.Count, e.Card.Name))
	}
	return strings.Join(parts, ", ")
}
