// Command deckforge evaluates MTG deck candidates: it enumerates legal
// decklists from a card pool or decklist file, goldfishes each one over
// the opening turns, and prints the top decks by average composite score.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/deckforgeapp/deckforge/internal/cards"
	"github.com/deckforgeapp/deckforge/internal/cards/cardcache"
	"github.com/deckforgeapp/deckforge/internal/cards/resolver"
	"github.com/deckforgeapp/deckforge/internal/cards/scryfall"
	"github.com/deckforgeapp/deckforge/internal/config"
	"github.com/deckforgeapp/deckforge/internal/deckimport"
	"github.com/deckforgeapp/deckforge/internal/events"
	"github.com/deckforgeapp/deckforge/internal/rank"
	"github.com/deckforgeapp/deckforge/internal/score"
	"github.com/deckforgeapp/deckforge/internal/search"
	"github.com/deckforgeapp/deckforge/internal/simulate"
	"github.com/deckforgeapp/deckforge/internal/version"
)

var (
	configPath   = flag.String("config", "", "Path to deck search config (.toml, .yaml or .json)")
	decklistPath = flag.String("decklist", "", "Path to MTGO/Arena-style decklist text")
	fixedDeck    = flag.Bool("fixed-deck", false, "Keep decklist counts exactly as written instead of treating them as a pool")
	deckSize     = flag.Int("deck-size", 0, "Target deck size (default: 60 or config value)")
	rulesPath    = flag.String("rules", "", "Optional deck construction rules file")
	bruteLimit   = flag.Int("brute-limit", 0, "Maximum deck combinations to examine (default: 5000 or config value)")
	topN         = flag.Int("top", 0, "How many top decks to print (default: 1 or config value)")
	games        = flag.Int("games", 0, "Override simulation game count")
	turns        = flag.Int("turns", 0, "Override simulation turn horizon")
	seed         = flag.Int64("seed", 0, "RNG seed for deterministic runs (0 uses current time)")
	searchSeed   = flag.Bool("shuffle-search", false, "Explore the combination space in seeded random order")
	cacheDB      = flag.String("cache-db", "", "Path to card metadata cache (default: ~/.deckforge/cards.db, \"off\" disables)")
	workers      = flag.Int("workers", 0, "Simulation worker count (default: CPU count)")
	verbose      = flag.Bool("v", false, "Print per-turn action logs for the best deck")
	showVersion  = flag.Bool("version", false, "Print the version and exit")
)

const defaultBruteLimit = 5000

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("deckforge %s\n", version.GetVersion())
		return
	}

	if (*configPath == "") == (*decklistPath == "") {
		log.Fatal("exactly one of -config or -decklist is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runSeed := *seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	run, err := buildRun(ctx, runSeed)
	if err != nil {
		log.Fatal(err)
	}

	dispatcher := events.NewDispatcher()
	dispatcher.Register(newProgressPrinter())

	decks, truncated, err := run.candidates(dispatcher)
	if err != nil {
		log.Fatal(err)
	}
	if len(decks) == 0 {
		log.Fatal("no valid decks can be constructed with the supplied constraints")
	}
	if truncated {
		fmt.Fprintf(os.Stderr, "search stopped at the brute-force cap (%d combinations examined); results cover part of the space\n", run.limit)
	}

	results, err := rank.Rank(ctx, decks, run.simCfg, run.weights, rank.Options{
		TopN:    run.top,
		Workers: *workers,
		Events:  dispatcher,
		RunID:   uuid.New().String(),
	})
	if err != nil {
		if len(results) == 0 {
			log.Fatal(err)
		}
		fmt.Fprintf(os.Stderr, "run interrupted (%v); showing completed decks only\n", err)
	}

	printResults(os.Stdout, results)

	if *verbose && len(results) > 0 {
		printSampleGame(os.Stdout, results[0], run.simCfg)
	}
}

// run gathers everything a single evaluation needs.
type run struct {
	pool    *cards.Pool
	rules   *search.Rules
	deckSz  int
	limit   int
	top     int
	fixed   bool
	shuffle bool
	seed    int64
	simCfg  simulate.Config
	weights score.Weights
}

func buildRun(ctx context.Context, runSeed int64) (*run, error) {
	r := &run{
		deckSz:  config.DefaultDeckSize,
		top:     config.DefaultTop,
		seed:    runSeed,
		fixed:   *fixedDeck,
		shuffle: *searchSeed,
		weights: score.DefaultWeights(),
		simCfg: simulate.Config{
			Games: config.DefaultGames,
			Turns: config.DefaultTurns,
			Seed:  runSeed,
		},
	}

	if *deckSize > 0 {
		r.deckSz = *deckSize
	}

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		applyOverrides(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		pool, err := cfg.Pool()
		if err != nil {
			return nil, err
		}
		r.pool = pool
		r.deckSz = cfg.DeckSize
		r.top = cfg.Top
		r.rules = cfg.DeckRules
		r.simCfg.Games = cfg.Games
		r.simCfg.Turns = cfg.Turns
		if cfg.Seed != nil {
			r.seed = *cfg.Seed
			r.simCfg.Seed = *cfg.Seed
		}
		if cfg.BruteForceLimit != nil {
			r.limit = *cfg.BruteForceLimit
		} else {
			r.limit = defaultBruteLimit
		}
		if cfg.Weights != nil {
			r.weights = *cfg.Weights
		}
	} else {
		pool, err := poolFromDecklist(ctx, r)
		if err != nil {
			return nil, err
		}
		r.pool = pool
	}

	// Flag overrides win over both sources.
	if *deckSize > 0 {
		r.deckSz = *deckSize
	}
	if *bruteLimit > 0 {
		r.limit = *bruteLimit
	}
	if *topN > 0 {
		r.top = *topN
	}
	if *games > 0 {
		r.simCfg.Games = *games
	}
	if *turns > 0 {
		r.simCfg.Turns = *turns
	}

	if *rulesPath != "" {
		rules, err := config.LoadRules(*rulesPath)
		if err != nil {
			return nil, err
		}
		r.rules = rules
	}

	return r, nil
}

// applyOverrides pushes flag values into the loaded config before
// validation, so overridden values are validated too.
func applyOverrides(cfg *config.Config) {
	if *deckSize > 0 {
		cfg.DeckSize = *deckSize
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *turns > 0 {
		cfg.Turns = *turns
	}
	if *bruteLimit > 0 {
		cfg.BruteForceLimit = bruteLimit
	}
}

// poolFromDecklist parses the decklist file and resolves card metadata
// through the cache-backed catalog client.
func poolFromDecklist(ctx context.Context, r *run) (*cards.Pool, error) {
	f, err := os.Open(*decklistPath)
	if err != nil {
		return nil, fmt.Errorf("read decklist: %w", err)
	}
	defer f.Close()

	entries, err := deckimport.Parse(f)
	if err != nil {
		return nil, err
	}

	var cache *cardcache.Cache
	if *cacheDB != "off" {
		path := *cacheDB
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("locate home directory: %w", err)
			}
			path = filepath.Join(home, ".deckforge", "cards.db")
		}
		cache, err = cardcache.Open(path)
		if err != nil {
			return nil, err
		}
		defer cache.Close()
	}

	res := resolver.New(scryfall.NewClient(), cache, nil)
	pool, err := deckimport.BuildPool(ctx, entries, res, deckimport.BuildOptions{
		DeckSize: r.deckSz,
		Fixed:    r.fixed,
	})
	if err != nil {
		return nil, err
	}

	if r.fixed && *deckSize == 0 {
		total := 0
		for _, e := range entries {
			total += e.Count
		}
		r.deckSz = total
	}
	if r.limit == 0 {
		r.limit = defaultBruteLimit
	}
	return pool, nil
}

// candidates produces the decklists to evaluate: a single pinned deck in
// fixed mode, otherwise the bounded enumeration of the pool.
func (r *run) candidates(dispatcher *events.Dispatcher) ([]cards.Decklist, bool, error) {
	if r.fixed {
		counts := make(map[string]int, r.pool.Len())
		for i := 0; i < r.pool.Len(); i++ {
			c := r.pool.Card(i)
			counts[c.Name] = c.MinCopies // fixed pools pin min == max == count
		}
		deck, err := cards.FixedDecklist(r.pool, counts, r.deckSz)
		if err != nil {
			return nil, false, err
		}
		return []cards.Decklist{deck}, false, nil
	}

	count := search.CountPossible(r.pool, r.deckSz, r.rules, r.limit)
	fmt.Fprintf(os.Stderr, "found %s valid deck combinations\n", renderDeckCount(count))
	if count.Total == 0 {
		return nil, false, nil
	}

	opts := search.Options{
		DeckSize: r.deckSz,
		Limit:    r.limit,
		Rules:    r.rules,
	}
	if r.shuffle {
		opts.Seed = &r.seed
	}

	result, err := search.Enumerate(r.pool, opts, func(done, total int) {
		dispatcher.Dispatch(events.Event{
			Type: events.TypeSearchProgress,
			Data: events.SearchProgress{Examined: done, Limit: total},
		})
	})
	if err != nil {
		return nil, false, err
	}
	return result.Decks, result.Truncated, nil
}
