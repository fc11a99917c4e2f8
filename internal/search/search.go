// Package search enumerates legal decklists over a card pool: every
// combination of per-card copy counts that sums to the target deck size,
// respects each card's copy bounds and satisfies optional whole-deck
// rules, subject to a brute-force cap.
package search

import (
	"fmt"
	"math/rand"

	"github.com/deckforgeapp/deckforge/internal/cards"
)

// Rules are optional whole-deck guardrails applied to a candidate's land
// and creature totals. Nil fields are unconstrained; a nil *Rules allows
// everything.
type Rules struct {
	MinLands     *int `toml:"min_lands" yaml:"min_lands" json:"min_lands"`
	MaxLands     *int `toml:"max_lands" yaml:"max_lands" json:"max_lands"`
	MinCreatures *int `toml:"min_creatures" yaml:"min_creatures" json:"min_creatures"`
	MaxCreatures *int `toml:"max_creatures" yaml:"max_creatures" json:"max_creatures"`
}

// Allows reports whether the given land and creature totals satisfy the
// rules.
func (r *Rules) Allows(lands, creatures int) bool {
	if r == nil {
		return true
	}
	if r.MinLands != nil && lands < *r.MinLands {
		return false
	}
	if r.MaxLands != nil && lands > *r.MaxLands {
		return false
	}
	if r.MinCreatures != nil && creatures < *r.MinCreatures {
		return false
	}
	if r.MaxCreatures != nil && creatures > *r.MaxCreatures {
		return false
	}
	return true
}

// Options configure one enumeration run.
type Options struct {
	// DeckSize is the exact total every candidate must reach.
	DeckSize int

	// Limit caps the number of complete compositions examined; zero means
	// unlimited. Rule-rejected compositions still count toward the cap,
	// so search cost stays predictable even under tight rules.
	Limit int

	// Rules filters candidates after they count toward the cap.
	Rules *Rules

	// Seed, when non-nil, shuffles the order each card's count options
	// are explored in. A capped search then samples a different slice of
	// the space per seed while staying reproducible. Nil keeps ascending
	// counts in pool order.
	Seed *int64
}

// ProgressFunc receives (done, total) updates during enumeration. Total
// is the cap when one is set, otherwise zero (unknown).
type ProgressFunc func(done, total int)

// Result is the outcome of one enumeration run.
type Result struct {
	// Decks are the accepted candidates, in exploration order.
	Decks []cards.Decklist

	// Examined counts complete compositions reached, accepted or not.
	Examined int

	// Truncated is true when the cap stopped the search while at least
	// one further composition remained.
	Truncated bool
}

// Empty reports whether no legal decklist exists under the given bounds
// and rules. This is a reportable outcome, not a fault.
func (r *Result) Empty() bool { return len(r.Decks) == 0 }

// Enumerate walks the bounded composition space over the pool. Counts are
// assigned card by card in pool order, pruning any branch whose partial
// sum can no longer reach the deck size exactly.
func Enumerate(pool *cards.Pool, opts Options, progress ProgressFunc) (*Result, error) {
	if opts.DeckSize <= 0 {
		return nil, fmt.Errorf("deck size must be positive, got %d", opts.DeckSize)
	}
	if opts.Limit < 0 {
		return nil, fmt.Errorf("brute force limit cannot be negative, got %d", opts.Limit)
	}

	res := &Result{}
	if progress != nil {
		progress(0, opts.Limit)
	}
	if pool.Len() == 0 || !pool.CanReach(opts.DeckSize) {
		return res, nil
	}

	n := pool.Len()
	// suffixMin[i] / suffixMax[i] are the least and greatest sums cards
	// i..n-1 can still contribute.
	suffixMin := make([]int, n+1)
	suffixMax := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		suffixMin[i] = suffixMin[i+1] + pool.Card(i).MinCopies
		suffixMax[i] = suffixMax[i+1] + pool.Card(i).MaxCopies
	}

	options := countOptions(pool, opts.Seed)
	counts := make([]int, n)

	var walk func(idx, sum int) bool
	walk = func(idx, sum int) bool {
		if idx == n {
			if opts.Limit > 0 && res.Examined >= opts.Limit {
				res.Truncated = true
				return false
			}
			res.Examined++
			if opts.Rules.Allows(landTotal(pool, counts), creatureTotal(pool, counts)) {
				res.Decks = append(res.Decks, cards.NewDecklist(pool, counts))
			}
			if progress != nil {
				progress(res.Examined, opts.Limit)
			}
			return true
		}
		for _, c := range options[idx] {
			next := sum + c
			if next+suffixMin[idx+1] > opts.DeckSize {
				continue
			}
			if next+suffixMax[idx+1] < opts.DeckSize {
				continue
			}
			counts[idx] = c
			if !walk(idx+1, next) {
				return false
			}
		}
		return true
	}
	walk(0, 0)

	if progress != nil {
		progress(res.Examined, opts.Limit)
	}
	return res, nil
}

// countOptions returns, per card, the copy counts to try in exploration
// order: ascending by default, deterministically shuffled under a seed.
func countOptions(pool *cards.Pool, seed *int64) [][]int {
	options := make([][]int, pool.Len())
	var rng *rand.Rand
	if seed != nil {
		rng = rand.New(rand.NewSource(*seed))
	}
	for i := 0; i < pool.Len(); i++ {
		c := pool.Card(i)
		opts := make([]int, 0, c.MaxCopies-c.MinCopies+1)
		for v := c.MinCopies; v <= c.MaxCopies; v++ {
			opts = append(opts, v)
		}
		if rng != nil {
			rng.Shuffle(len(opts), func(a, b int) {
				opts[a], opts[b] = opts[b], opts[a]
			})
		}
		options[i] = opts
	}
	return options
}

func landTotal(pool *cards.Pool, counts []int) int {
	total := 0
	for i, c := range counts {
		if pool.Card(i).IsLand() {
			total += c
		}
	}
	return total
}

func creatureTotal(pool *cards.Pool, counts []int) int {
	total := 0
	for i, c := range counts {
		if pool.Card(i).IsCreature() {
			total += c
		}
	}
	return total
}
