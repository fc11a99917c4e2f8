package simulate

import (
	"fmt"
	"math/rand"

	"github.com/deckforgeapp/deckforge/internal/cards"
)

const openingHandSize = 7

// Config holds the parameters for simulating one decklist.
type Config struct {
	// Games is the number of independent playouts.
	Games int

	// Turns is the horizon: the playout ends after this many turns.
	Turns int

	// Seed is the base for the default seed stream.
	Seed int64

	// OnTheDraw draws a card on turn one as well. Off by default, per
	// the convention that the player on the play skips the first draw.
	OnTheDraw bool
}

// Simulator runs playouts of a single decklist under a fixed policy. The
// zero policy is GreedyPolicy.
type Simulator struct {
	deck   cards.Decklist
	policy Policy
}

// New creates a Simulator. A nil policy defaults to GreedyPolicy.
func New(deck cards.Decklist, policy Policy) *Simulator {
	if policy == nil {
		policy = GreedyPolicy{}
	}
	return &Simulator{deck: deck, policy: policy}
}

// Run executes cfg.Games independent playouts, seeding each from the
// stream. A nil stream uses SplitMixStream(cfg.Seed).
func (s *Simulator) Run(cfg Config, seeds SeedStream) []*GameTrace {
	if seeds == nil {
		seeds = SplitMixStream(cfg.Seed)
	}
	traces := make([]*GameTrace, cfg.Games)
	for game := 0; game < cfg.Games; game++ {
		rng := rand.New(rand.NewSource(seeds(game)))
		traces[game] = s.Playout(rng, cfg.Turns, cfg.OnTheDraw)
	}
	return traces
}

// PlayoutSeeded runs one playout from a fresh generator seeded with the
// given value. Convenient for callers that schedule playouts themselves.
func (s *Simulator) PlayoutSeeded(seed int64, turns int, onTheDraw bool) *GameTrace {
	return s.Playout(rand.New(rand.NewSource(seed)), turns, onTheDraw)
}

// Playout simulates one game from a fresh shuffle. The rng is the only
// source of non-determinism: identical rng state and decklist produce an
// identical trace.
func (s *Simulator) Playout(rng *rand.Rand, turns int, onTheDraw bool) *GameTrace {
	library := s.deck.Flatten()
	rng.Shuffle(len(library), func(i, j int) {
		library[i], library[j] = library[j], library[i]
	})

	hand := make([]cards.Card, 0, openingHandSize)
	for len(hand) < openingHandSize && len(library) > 0 {
		hand = append(hand, library[0])
		library = library[1:]
	}

	trace := &GameTrace{Turns: make([]TurnRecord, 0, turns)}
	var battlefieldLands []cards.Card

	for turn := 1; turn <= turns; turn++ {
		rec := TurnRecord{Turn: turn}

		if (turn > 1 || onTheDraw) && len(library) > 0 {
			hand = append(hand, library[0])
			library = library[1:]
			rec.Actions = append(rec.Actions, "Drew a card")
		}

		// One land drop per turn.
		if i := s.policy.ChooseLand(hand); i >= 0 && hand[i].IsLand() {
			land := hand[i]
			hand = append(hand[:i], hand[i+1:]...)
			battlefieldLands = append(battlefieldLands, land)
			rec.LandPlayed = true
			rec.Actions = append(rec.Actions, fmt.Sprintf("Played %s", land.Name))
		} else {
			rec.LandMissed = true
			rec.Actions = append(rec.Actions, "Missed land drop")
		}

		mana := Mana{
			Available: len(battlefieldLands),
			Colors:    make(map[cards.Color]bool),
		}
		for _, land := range battlefieldLands {
			for _, color := range land.Colors {
				mana.Colors[color] = true
			}
		}

		// Cast until the policy passes or nothing is affordable.
		for {
			i := s.policy.ChooseCast(hand, mana)
			if i < 0 {
				break
			}
			card := hand[i]
			if card.IsLand() || !mana.CanPay(card) {
				break // defective policy choice; treat as a pass
			}
			hand = append(hand[:i], hand[i+1:]...)
			mana.Available -= card.Cost.Total()
			rec.ManaSpent += card.Cost.Total()
			rec.Spells = append(rec.Spells, card)
			if card.IsCreature() {
				trace.Board = append(trace.Board, card)
			}
			rec.Actions = append(rec.Actions,
				fmt.Sprintf("Cast %s for %d mana", card.Name, card.Cost.Total()))
		}

		// Color screw: the mana count would cover a spell in hand, but
		// the colors in play cannot.
		for _, card := range hand {
			if card.IsLand() {
				continue
			}
			if mana.CountSuffices(card) && !mana.CanPay(card) {
				rec.ColorScrewed = true
				rec.Actions = append(rec.Actions,
					fmt.Sprintf("Color screwed: cannot cast %s", card.Name))
				break
			}
		}

		trace.Turns = append(trace.Turns, rec)
	}

	return trace
}
