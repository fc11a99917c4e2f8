// Package rank evaluates candidate decklists in parallel and orders them
// by average composite score. Each (decklist, playout) pair is
// independent, so the work fans out over a worker pool bounded by the CPU
// count; the only barrier is aggregation per decklist.
package rank

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/deckforgeapp/deckforge/internal/cards"
	"github.com/deckforgeapp/deckforge/internal/events"
	"github.com/deckforgeapp/deckforge/internal/score"
	"github.com/deckforgeapp/deckforge/internal/simulate"
)

// ErrNoDecks is returned when ranking is asked to evaluate nothing.
var ErrNoDecks = errors.New("no decklists to evaluate")

// ErrNoGames is returned when the simulation config requests zero games.
var ErrNoGames = errors.New("simulation requires at least one game per decklist")

// DeckResult pairs a decklist with the arithmetic mean of every scoring
// term over all its playouts. Results are immutable once produced.
type DeckResult struct {
	Deck  cards.Decklist
	Games int
	Mean  score.Breakdown
}

// Aggregate averages the per-game breakdowns for one decklist.
func Aggregate(deck cards.Decklist, breakdowns []score.Breakdown) (DeckResult, error) {
	if len(breakdowns) == 0 {
		return DeckResult{}, ErrNoGames
	}
	var sum score.Breakdown
	for _, b := range breakdowns {
		sum.SpellsCast += b.SpellsCast
		sum.ManaSpent += b.ManaSpent
		sum.BoardPressure += b.BoardPressure
		sum.SpellImpact += b.SpellImpact
		sum.Interaction += b.Interaction
		sum.CardDraw += b.CardDraw
		sum.Finishers += b.Finishers
		sum.MissedLandDrops += b.MissedLandDrops
		sum.ColorScrewTurns += b.ColorScrewTurns
		sum.Total += b.Total
	}
	n := float64(len(breakdowns))
	mean := score.Breakdown{
		SpellsCast:      sum.SpellsCast / n,
		ManaSpent:       sum.ManaSpent / n,
		BoardPressure:   sum.BoardPressure / n,
		SpellImpact:     sum.SpellImpact / n,
		Interaction:     sum.Interaction / n,
		CardDraw:        sum.CardDraw / n,
		Finishers:       sum.Finishers / n,
		MissedLandDrops: sum.MissedLandDrops / n,
		ColorScrewTurns: sum.ColorScrewTurns / n,
		Total:           sum.Total / n,
	}
	return DeckResult{Deck: deck, Games: len(breakdowns), Mean: mean}, nil
}

// Options configure one ranking run.
type Options struct {
	// TopN truncates the sorted results; zero keeps everything.
	TopN int

	// Workers bounds the pool; zero uses the CPU count.
	Workers int

	// Policy overrides the simulator's cast/land strategy. Nil uses the
	// default greedy policy.
	Policy simulate.Policy

	// Events receives progress notifications. Nil drops them.
	Events *events.Dispatcher

	// RunID labels progress events; useful when several runs share one
	// dispatcher.
	RunID string
}

type playoutJob struct {
	deckIdx int
	game    int
}

type playoutResult struct {
	deckIdx   int
	breakdown score.Breakdown
}

// Rank simulates every decklist for cfg.Games playouts, aggregates the
// per-game breakdowns and returns the results sorted descending by mean
// total score. Ties keep generation order. On cancellation only decks
// whose playouts all finished are returned, alongside the context error.
func Rank(ctx context.Context, decks []cards.Decklist, cfg simulate.Config, weights score.Weights, opts Options) ([]DeckResult, error) {
	if len(decks) == 0 {
		return nil, ErrNoDecks
	}
	if cfg.Games <= 0 {
		return nil, ErrNoGames
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	opts.Events.Dispatch(events.Event{
		Type: events.TypeRunStarted,
		Data: events.RunStarted{RunID: opts.RunID, Decks: len(decks), Games: cfg.Games},
	})

	sims := make([]*simulate.Simulator, len(decks))
	for i, deck := range decks {
		sims[i] = simulate.New(deck, opts.Policy)
	}

	// Each playout's seed is a pure function of (deck, game), so results
	// do not depend on worker scheduling.
	seeds := make([]simulate.SeedStream, len(decks))
	for i := range decks {
		seeds[i] = simulate.SplitMixStream(cfg.Seed + int64(i)*0x51ed2701)
	}

	total := len(decks) * cfg.Games
	jobs := make(chan playoutJob)
	results := make(chan playoutResult, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				trace := sims[job.deckIdx].PlayoutSeeded(seeds[job.deckIdx](job.game), cfg.Turns, cfg.OnTheDraw)
				results <- playoutResult{
					deckIdx:   job.deckIdx,
					breakdown: score.Score(trace, weights),
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for d := range decks {
			for g := 0; g < cfg.Games; g++ {
				select {
				case jobs <- playoutJob{deckIdx: d, game: g}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Single collector: accumulates per-deck breakdowns and reports
	// progress without contending with the workers.
	perDeck := make([][]score.Breakdown, len(decks))
	done := 0
	for res := range results {
		perDeck[res.deckIdx] = append(perDeck[res.deckIdx], res.breakdown)
		done++
		opts.Events.Dispatch(events.Event{
			Type: events.TypeSimulationProgress,
			Data: events.SimulationProgress{Done: done, Total: total},
		})
	}

	ranked := make([]DeckResult, 0, len(decks))
	for i, breakdowns := range perDeck {
		if len(breakdowns) != cfg.Games {
			continue // interrupted deck; partial results are dropped
		}
		result, err := Aggregate(decks[i], breakdowns)
		if err != nil {
			return nil, fmt.Errorf("aggregate deck %d: %w", i, err)
		}
		ranked = append(ranked, result)
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Mean.Total > ranked[b].Mean.Total
	})

	if opts.TopN > 0 && len(ranked) > opts.TopN {
		ranked = ranked[:opts.TopN]
	}

	opts.Events.Dispatch(events.Event{
		Type: events.TypeRunCompleted,
		Data: events.RunCompleted{RunID: opts.RunID, Decks: len(ranked)},
	})

	if err := ctx.Err(); err != nil {
		return ranked, err
	}
	return ranked, nil
}
