// Package resolver turns card names into full card metadata, checking a
// local cache before asking the remote catalog.
package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/deckforgeapp/deckforge/internal/cards"
	"github.com/deckforgeapp/deckforge/internal/cards/cardcache"
	"github.com/deckforgeapp/deckforge/internal/cards/scryfall"
)

// Resolver resolves card names via the Scryfall client, backed by an
// optional SQLite cache. A nil cache always hits the network.
type Resolver struct {
	client *scryfall.Client
	cache  *cardcache.Cache
	logger *slog.Logger
}

// New creates a resolver. cache and logger may be nil.
func New(client *scryfall.Client, cache *cardcache.Cache, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{client: client, cache: cache, logger: logger}
}

// Resolve returns the metadata for the named card.
func (r *Resolver) Resolve(ctx context.Context, name string) (cards.Card, error) {
	if r.cache != nil {
		card, ok, err := r.cache.Get(ctx, name)
		if err != nil {
			return cards.Card{}, fmt.Errorf("card cache: %w", err)
		}
		if ok {
			return card, nil
		}
	}

	apiCard, err := r.client.GetCardByName(ctx, name)
	if err != nil {
		if scryfall.IsNotFound(err) {
			return cards.Card{}, fmt.Errorf("unknown card %q", name)
		}
		return cards.Card{}, err
	}

	card, err := apiCard.ToCard()
	if err != nil {
		return cards.Card{}, fmt.Errorf("map card %q: %w", name, err)
	}

	if r.cache != nil {
		if err := r.cache.Put(ctx, card); err != nil {
			// A cold cache next run is acceptable; the lookup succeeded.
			r.logger.Warn("failed to cache card", "card", card.Name, "error", err)
		}
	}
	return card, nil
}
