package scryfall

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/deckforgeapp/deckforge/internal/cards"
)

// Card is the subset of Scryfall's card object the resolver needs.
type Card struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ManaCost string   `json:"mana_cost,omitempty"`
	CMC      float64  `json:"cmc"`
	TypeLine string   `json:"type_line"`
	Colors   []string `json:"colors,omitempty"`

	// ColorIdentity and ProducedMana fill in colors for lands, whose
	// Colors field is empty on Scryfall.
	ColorIdentity []string `json:"color_identity,omitempty"`
	ProducedMana  []string `json:"produced_mana,omitempty"`

	Power     string   `json:"power,omitempty"`
	Toughness string   `json:"toughness,omitempty"`
	Keywords  []string `json:"keywords,omitempty"`
}

// ToCard maps the API object onto the simulator's card model. Copy
// bounds are left zero; the caller assigns them.
func (c *Card) ToCard() (cards.Card, error) {
	card := cards.Card{
		Name:     c.Name,
		Category: cards.ParseCategory(c.TypeLine),
	}

	if !card.IsLand() {
		cost, err := cards.ParseManaCost(c.ManaCost)
		if err != nil {
			// Hybrid or X costs fall back to the converted cost with one
			// pip per color.
			colors := make([]cards.Color, 0, len(c.Colors))
			for _, col := range c.Colors {
				colors = append(colors, cards.Color(col))
			}
			total := int(c.CMC)
			if len(colors) > total {
				colors = colors[:total]
			}
			cost = cards.ManaCost{Symbols: colors, Generic: total - len(colors)}
		}
		card.Cost = cost
	}

	colorSource := c.Colors
	if card.IsLand() {
		colorSource = c.ProducedMana
		if len(colorSource) == 0 {
			colorSource = c.ColorIdentity
		}
	}
	for _, col := range colorSource {
		if col == "C" {
			continue // colorless production carries no color requirement
		}
		card.Colors = append(card.Colors, cards.Color(col))
	}

	if card.IsCreature() {
		if p, err := strconv.Atoi(c.Power); err == nil {
			card.Power = p
		}
		if t, err := strconv.Atoi(c.Toughness); err == nil {
			card.Toughness = t
		}
	}

	card.BasicLand = cards.BasicLandNames[card.Name]
	return card, nil
}

// APIError represents an error response from the Scryfall API.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scryfall API error %d (%s): %s", e.Status, e.Code, e.Details)
}

// NotFoundError represents a 404 from the API.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.URL)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
