package search

import "github.com/deckforgeapp/deckforge/internal/cards"

// DeckCount summarizes how many legal decklists a pool admits. Counting
// the full space can be as expensive as enumerating it, so the count is
// cut off once it reaches estimateCutoff and flagged as an estimate.
type DeckCount struct {
	// Total is the exact count, or the cutoff when Estimated is true.
	Total int

	// LowerBound counts compositions that also satisfied the rules;
	// UpperBound counts all compositions reached. They differ only for
	// estimated counts under rules.
	LowerBound int
	UpperBound int

	// Estimated is true when counting stopped at the cutoff.
	Estimated bool
}

// CountPossible counts compositions of deckSize under the pool's bounds,
// reporting how many also pass the rules. A cutoff of zero counts the
// whole space.
func CountPossible(pool *cards.Pool, deckSize int, rules *Rules, estimateCutoff int) DeckCount {
	dc := DeckCount{}
	if pool.Len() == 0 || deckSize <= 0 || !pool.CanReach(deckSize) {
		return dc
	}

	n := pool.Len()
	suffixMin := make([]int, n+1)
	suffixMax := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		suffixMin[i] = suffixMin[i+1] + pool.Card(i).MinCopies
		suffixMax[i] = suffixMax[i+1] + pool.Card(i).MaxCopies
	}

	counts := make([]int, n)
	var walk func(idx, sum int) bool
	walk = func(idx, sum int) bool {
		if idx == n {
			dc.UpperBound++
			if rules.Allows(landTotal(pool, counts), creatureTotal(pool, counts)) {
				dc.LowerBound++
			}
			if estimateCutoff > 0 && dc.UpperBound >= estimateCutoff {
				dc.Estimated = true
				return false
			}
			return true
		}
		c := pool.Card(idx)
		for v := c.MinCopies; v <= c.MaxCopies; v++ {
			next := sum + v
			if next+suffixMin[idx+1] > deckSize {
				break // counts only grow from here
			}
			if next+suffixMax[idx+1] < deckSize {
				continue
			}
			counts[idx] = v
			if !walk(idx+1, next) {
				return false
			}
		}
		return true
	}
	walk(0, 0)

	if dc.Estimated {
		dc.Total = dc.UpperBound
	} else {
		dc.Total = dc.LowerBound
		dc.UpperBound = dc.LowerBound
	}
	return dc
}
