// Package cardcache persists resolved card metadata in a local SQLite
// database so repeat runs do not re-hit the catalog service. It caches
// resolver lookups only; search and simulation results are never stored.
package cardcache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/deckforgeapp/deckforge/internal/cards"
)

// Cache wraps the SQLite connection holding cached card metadata.
type Cache struct {
	conn *sql.DB
}

// Open creates or opens the cache database at path, applying pending
// schema migrations. ":memory:" opens an in-memory cache for tests.
func Open(path string) (*Cache, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=WAL&_synchronous=NORMAL",
		path, (5 * time.Second).Milliseconds())
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping cache database: %w", err)
	}

	c := &Cache{conn: conn}
	if err := c.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return c, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.conn.Close()
}

// Get returns the cached card for name, reporting whether it was found.
func (c *Cache) Get(ctx context.Context, name string) (cards.Card, bool, error) {
	row := c.conn.QueryRowContext(ctx, `
		SELECT name, category, mana_cost, colors, power, toughness, impact, tags, basic_land
		FROM cards WHERE name = ?`, name)

	var (
		card      cards.Card
		category  string
		manaCost  string
		colors    string
		tags      string
		basicLand bool
	)
	err := row.Scan(&card.Name, &category, &manaCost, &colors,
		&card.Power, &card.Toughness, &card.Impact, &tags, &basicLand)
	if err == sql.ErrNoRows {
		return cards.Card{}, false, nil
	}
	if err != nil {
		return cards.Card{}, false, fmt.Errorf("query card %q: %w", name, err)
	}

	card.Category = cards.Category(category)
	cost, err := cards.ParseManaCost(manaCost)
	if err != nil {
		return cards.Card{}, false, fmt.Errorf("cached cost for %q: %w", name, err)
	}
	card.Cost = cost
	for _, col := range splitList(colors) {
		card.Colors = append(card.Colors, cards.Color(col))
	}
	card.Tags = splitList(tags)
	card.BasicLand = basicLand
	return card, true, nil
}

// Put stores or replaces the cached metadata for a card.
func (c *Cache) Put(ctx context.Context, card cards.Card) error {
	colors := make([]string, 0, len(card.Colors))
	for _, col := range card.Colors {
		colors = append(colors, string(col))
	}
	_, err := c.conn.ExecContext(ctx, `
		INSERT INTO cards (name, category, mana_cost, colors, power, toughness, impact, tags, basic_land, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			category = excluded.category,
			mana_cost = excluded.mana_cost,
			colors = excluded.colors,
			power = excluded.power,
			toughness = excluded.toughness,
			impact = excluded.impact,
			tags = excluded.tags,
			basic_land = excluded.basic_land,
			cached_at = excluded.cached_at`,
		card.Name, string(card.Category), card.Cost.String(),
		strings.Join(colors, ","), card.Power, card.Toughness, card.Impact,
		strings.Join(card.Tags, ","), card.BasicLand, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store card %q: %w", card.Name, err)
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
