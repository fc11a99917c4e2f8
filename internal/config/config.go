// Package config loads deck search configuration documents: top-level
// run parameters, optional deck construction rules and the candidate
// card pool. TOML is the primary format; YAML and JSON documents are
// accepted by file extension.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/deckforgeapp/deckforge/internal/cards"
	"github.com/deckforgeapp/deckforge/internal/score"
	"github.com/deckforgeapp/deckforge/internal/search"
)

// Defaults applied when the document omits a field.
const (
	DefaultDeckSize = 60
	DefaultGames    = 500
	DefaultTurns    = 6
	DefaultTop      = 1
	DefaultMaxCount = 4
)

// CardEntry describes one candidate card in the document.
type CardEntry struct {
	Name      string   `toml:"name" yaml:"name" json:"name"`
	Type      string   `toml:"type" yaml:"type" json:"type"`
	ManaCost  string   `toml:"mana_cost" yaml:"mana_cost" json:"mana_cost"`
	Colors    []string `toml:"colors" yaml:"colors" json:"colors"`
	Power     int      `toml:"power" yaml:"power" json:"power"`
	Toughness int      `toml:"toughness" yaml:"toughness" json:"toughness"`
	Impact    float64  `toml:"impact" yaml:"impact" json:"impact"`
	Tags      []string `toml:"tags" yaml:"tags" json:"tags"`
	Min       *int     `toml:"min" yaml:"min" json:"min"`
	Max       *int     `toml:"max" yaml:"max" json:"max"`
	Basic     bool     `toml:"basic" yaml:"basic" json:"basic"`
}

// Config is the full search/simulation document.
type Config struct {
	DeckSize        int            `toml:"deck_size" yaml:"deck_size" json:"deck_size"`
	BruteForceLimit *int           `toml:"brute_force_limit" yaml:"brute_force_limit" json:"brute_force_limit"`
	Games           int            `toml:"games" yaml:"games" json:"games"`
	Turns           int            `toml:"turns" yaml:"turns" json:"turns"`
	Top             int            `toml:"top" yaml:"top" json:"top"`
	Seed            *int64         `toml:"seed" yaml:"seed" json:"seed"`
	DeckRules       *search.Rules  `toml:"deck_rules" yaml:"deck_rules" json:"deck_rules"`
	Weights         *score.Weights `toml:"weights" yaml:"weights" json:"weights"`
	Cards           []CardEntry    `toml:"cards" yaml:"cards" json:"cards"`
}

// Load reads and decodes a configuration document, applying defaults for
// omitted top-level fields. The decoder is chosen by file extension
// (.toml, .yaml/.yml, .json).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{
		DeckSize: DefaultDeckSize,
		Games:    DefaultGames,
		Turns:    DefaultTurns,
		Top:      DefaultTop,
	}
	if err := decodeByExt(path, data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadRules reads a standalone deck construction rules document.
func LoadRules(path string) (*search.Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	rules := &search.Rules{}
	if err := decodeByExt(path, data, rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func decodeByExt(path string, data []byte, v any) error {
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml", ".tml":
		err = toml.Unmarshal(data, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	case ".json":
		err = json.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported config format %q (want .toml, .yaml or .json)", ext)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Card converts the entry into the model card, deriving the mana cost
// from either symbol notation ("1RR") or a plain converted cost combined
// with the color list.
func (e CardEntry) Card() (cards.Card, error) {
	card := cards.Card{
		Name:      e.Name,
		Category:  cards.ParseCategory(e.Type),
		Power:     e.Power,
		Toughness: e.Toughness,
		Impact:    e.Impact,
		Tags:      e.Tags,
	}

	colors := make([]cards.Color, 0, len(e.Colors))
	for _, c := range e.Colors {
		colors = append(colors, cards.Color(strings.ToUpper(strings.TrimSpace(c))))
	}
	card.Colors = colors

	cost, err := parseCost(e.ManaCost, colors)
	if err != nil {
		return cards.Card{}, fmt.Errorf("card %q: %w", e.Name, err)
	}
	if card.Category == cards.CategoryLand {
		cost = cards.ManaCost{} // lands have no cost in this model
	}
	card.Cost = cost

	if e.Min != nil {
		card.MinCopies = *e.Min
	}
	card.MaxCopies = DefaultMaxCount
	if e.Max != nil {
		card.MaxCopies = *e.Max
	}
	card.BasicLand = e.Basic || cards.BasicLandNames[e.Name]

	return card, nil
}

// parseCost interprets a cost field. A bare number is a converted cost:
// one symbol per listed color plus generic remainder, matching documents
// that carry cost and colors as separate fields.
func parseCost(raw string, colors []cards.Color) (cards.ManaCost, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return cards.ManaCost{}, nil
	}
	if total, err := strconv.Atoi(raw); err == nil {
		if total < 0 {
			return cards.ManaCost{}, fmt.Errorf("negative mana cost %d", total)
		}
		symbols := colors
		if len(symbols) > total {
			symbols = symbols[:total]
		}
		return cards.ManaCost{
			Symbols: append([]cards.Color(nil), symbols...),
			Generic: total - len(symbols),
		}, nil
	}
	return cards.ParseManaCost(raw)
}

// Pool builds the card pool, validating every entry.
func (c *Config) Pool() (*cards.Pool, error) {
	list := make([]cards.Card, 0, len(c.Cards))
	for _, entry := range c.Cards {
		card, err := entry.Card()
		if err != nil {
			return nil, err
		}
		list = append(list, card)
	}
	return cards.NewPool(list...)
}

// Validate checks the document before any search or simulation starts.
// Every failure here is a fatal configuration error.
func (c *Config) Validate() error {
	if c.DeckSize <= 0 {
		return fmt.Errorf("deck_size must be positive, got %d", c.DeckSize)
	}
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Turns <= 0 {
		return fmt.Errorf("turns must be positive, got %d", c.Turns)
	}
	if c.BruteForceLimit != nil && *c.BruteForceLimit < 1 {
		return fmt.Errorf("brute_force_limit must be at least 1, got %d", *c.BruteForceLimit)
	}
	if len(c.Cards) == 0 {
		return fmt.Errorf("config defines no cards")
	}

	pool, err := c.Pool()
	if err != nil {
		return err
	}
	if !pool.CanReach(c.DeckSize) {
		return fmt.Errorf("deck_size %d unreachable: card bounds admit totals %d..%d",
			c.DeckSize, pool.MinTotal(), pool.MaxTotal())
	}
	return nil
}
