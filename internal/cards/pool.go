package cards

import "fmt"

// Pool is the ordered universe of candidate cards the deck search draws
// from. Insertion order is significant: it fixes the search order and the
// count layout of every Decklist built over the pool. A Pool is read-only
// after construction and safe to share across goroutines.
type Pool struct {
	cards []Card
	index map[string]int
}

// NewPool builds a pool from the given cards, validating each card and
// rejecting duplicate names.
func NewPool(list ...Card) (*Pool, error) {
	p := &Pool{
		cards: make([]Card, 0, len(list)),
		index: make(map[string]int, len(list)),
	}
	for _, c := range list {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := p.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate card %q in pool", c.Name)
		}
		p.index[c.Name] = len(p.cards)
		p.cards = append(p.cards, c)
	}
	return p, nil
}

// Len returns the number of distinct cards in the pool.
func (p *Pool) Len() int { return len(p.cards) }

// Card returns the card at position i in pool order.
func (p *Pool) Card(i int) Card { return p.cards[i] }

// ByName looks up a card by name.
func (p *Pool) ByName(name string) (Card, bool) {
	i, ok := p.index[name]
	if !ok {
		return Card{}, false
	}
	return p.cards[i], true
}

// MinTotal is the smallest deck size the pool's bounds can produce.
func (p *Pool) MinTotal() int {
	total := 0
	for _, c := range p.cards {
		total += c.MinCopies
	}
	return total
}

// MaxTotal is the largest deck size the pool's bounds can produce.
func (p *Pool) MaxTotal() int {
	total := 0
	for _, c := range p.cards {
		total += c.MaxCopies
	}
	return total
}

// CanReach reports whether any combination of per-card counts can sum to
// the given deck size.
func (p *Pool) CanReach(deckSize int) bool {
	return p.MinTotal() <= deckSize && deckSize <= p.MaxTotal()
}
