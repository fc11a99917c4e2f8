package main

import (
	"fmt"
	"io"
	"os"

	"github.com/deckforgeapp/deckforge/internal/events"
	"github.com/deckforgeapp/deckforge/internal/rank"
	"github.com/deckforgeapp/deckforge/internal/search"
	"github.com/deckforgeapp/deckforge/internal/simulate"
)

// abbreviate renders large counts as 12K / 3M / 1B.
func abbreviate(value int) string {
	v := float64(value)
	for _, unit := range []string{"", "K", "M", "B", "T"} {
		if v < 1000 {
			if unit == "" {
				return fmt.Sprintf("%d", value)
			}
			return fmt.Sprintf("%.0f%s", v, unit)
		}
		v /= 1000
	}
	return fmt.Sprintf("%.1fP", v)
}

// renderDeckCount formats a possibly-estimated deck count, as a range
// when rules make the exact total uncertain.
func renderDeckCount(dc search.DeckCount) string {
	lower, upper := dc.LowerBound, dc.UpperBound
	if lower == 0 && upper == 0 {
		lower, upper = dc.Total, dc.Total
	}
	note := ""
	if dc.Estimated {
		note = " (estimated)"
	}
	if lower == upper {
		return abbreviate(lower) + note
	}
	return fmt.Sprintf("%s-%s%s", abbreviate(lower), abbreviate(upper), note)
}

// printResults writes the ranked decks with their averaged metrics.
func printResults(w io.Writer, results []rank.DeckResult) {
	for i, res := range results {
		fmt.Fprintf(w, "=== Deck %d ===\n", i+1)
		fmt.Fprintf(w, "Avg score: %.2f\n", res.Mean.Total)
		fmt.Fprintf(w, "Spells cast: %.2f\n", res.Mean.SpellsCast)
		fmt.Fprintf(w, "Mana spent: %.2f\n", res.Mean.ManaSpent)
		fmt.Fprintf(w, "Board pressure: %.2f\n", res.Mean.BoardPressure)
		fmt.Fprintf(w, "Spell impact: %.2f\n", res.Mean.SpellImpact)
		fmt.Fprintf(w, "Interaction: %.2f\n", res.Mean.Interaction)
		fmt.Fprintf(w, "Card draw: %.2f\n", res.Mean.CardDraw)
		fmt.Fprintf(w, "Finishers: %.2f\n", res.Mean.Finishers)
		fmt.Fprintf(w, "Missed land drops: %.2f\n", res.Mean.MissedLandDrops)
		fmt.Fprintf(w, "Color screw turns: %.2f\n", res.Mean.ColorScrewTurns)
		fmt.Fprintln(w, "Deck:")
		for _, entry := range res.Deck.Entries() {
			card := entry.Card
			fmt.Fprintf(w, "  %dx %s (%s, cost=%s)\n",
				entry.Count, card.Name, card.Category, card.Cost)
		}
		fmt.Fprintln(w)
	}
}

// printSampleGame replays one seeded playout of the winning deck and
// prints its turn-by-turn action log.
func printSampleGame(w io.Writer, res rank.DeckResult, cfg simulate.Config) {
	sim := simulate.New(res.Deck, nil)
	trace := sim.PlayoutSeeded(cfg.Seed, cfg.Turns, cfg.OnTheDraw)
	fmt.Fprintln(w, "Sample game (best deck):")
	for _, turn := range trace.Turns {
		fmt.Fprintf(w, "  Turn %d:\n", turn.Turn)
		for _, action := range turn.Actions {
			fmt.Fprintf(w, "    %s\n", action)
		}
	}
}

// progressPrinter reports search and simulation progress on stderr,
// throttled to whole-percent changes.
type progressPrinter struct {
	lastSearchPct int
	lastSimPct    int
}

func newProgressPrinter() *progressPrinter {
	return &progressPrinter{lastSearchPct: -1, lastSimPct: -1}
}

func (p *progressPrinter) Name() string { return "stderr-progress" }

func (p *progressPrinter) ShouldHandle(eventType string) bool {
	switch eventType {
	case events.TypeSearchProgress, events.TypeSimulationProgress, events.TypeRunCompleted:
		return true
	}
	return false
}

func (p *progressPrinter) OnEvent(event events.Event) error {
	switch data := event.Data.(type) {
	case events.SearchProgress:
		if data.Limit <= 0 {
			return nil
		}
		pct := data.Examined * 100 / data.Limit
		if pct != p.lastSearchPct {
			p.lastSearchPct = pct
			fmt.Fprintf(os.Stderr, "[deck search] %d/%d (%d%%)\n", data.Examined, data.Limit, pct)
		}
	case events.SimulationProgress:
		if data.Total <= 0 {
			return nil
		}
		pct := data.Done * 100 / data.Total
		if pct != p.lastSimPct {
			p.lastSimPct = pct
			fmt.Fprintf(os.Stderr, "[simulations] %d/%d (%d%%)\n", data.Done, data.Total, pct)
		}
	case events.RunCompleted:
		fmt.Fprintf(os.Stderr, "[simulations] done (%d decks ranked)\n", data.Decks)
	}
	return nil
}
