// Package cards defines the card model shared by the deck search and the
// goldfish simulator: card attributes, copy-count bounds, ordered card
// pools and concrete decklists.
package cards

import (
	"fmt"
	"strconv"
	"strings"
)

// Category is the simplified card type the simulator differentiates.
type Category string

const (
	CategoryLand     Category = "land"
	CategoryCreature Category = "creature"
	CategorySpell    Category = "spell"
)

// ParseCategory maps a type line or config string onto a Category.
// Anything that is neither a land nor a creature is treated as a spell.
func ParseCategory(s string) Category {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "land"):
		return CategoryLand
	case strings.Contains(lower, "creature"):
		return CategoryCreature
	default:
		return CategorySpell
	}
}

// Color is a single mana color symbol ("W", "U", "B", "R", "G").
type Color string

const (
	White Color = "W"
	Blue  Color = "U"
	Black Color = "B"
	Red   Color = "R"
	Green Color = "G"
)

// Tag vocabulary used by the scorer. The set is open; these are the tags
// the default weights know about.
const (
	TagRemoval  = "removal"
	TagCounter  = "counter"
	TagCardDraw = "card_draw"
	TagFinisher = "finisher"
)

// BasicLandNames are the card names treated as basic lands by the
// decklist importer (uncapped copies).
var BasicLandNames = map[string]bool{
	"Plains":   true,
	"Island":   true,
	"Swamp":    true,
	"Mountain": true,
	"Forest":   true,
	"Wastes":   true,
}

// ManaCost is a multiset of colored symbols plus a generic component.
// "1RR" is {Symbols: [R R], Generic: 1}.
type ManaCost struct {
	Symbols []Color
	Generic int
}

// Total returns the converted cost: generic plus one per colored symbol.
func (m ManaCost) Total() int {
	return m.Generic + len(m.Symbols)
}

// Colors returns the distinct colors appearing in the cost.
func (m ManaCost) Colors() []Color {
	seen := make(map[Color]bool, len(m.Symbols))
	out := make([]Color, 0, len(m.Symbols))
	for _, s := range m.Symbols {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// String renders the cost in compact form, e.g. "1RR". A free cost
// renders as "0".
func (m ManaCost) String() string {
	var b strings.Builder
	if m.Generic > 0 || len(m.Symbols) == 0 {
		b.WriteString(strconv.Itoa(m.Generic))
	}
	for _, s := range m.Symbols {
		b.WriteString(string(s))
	}
	return b.String()
}

// ParseManaCost parses compact ("1RR") and Scryfall ("{1}{R}{R}") cost
// notation. X costs and hybrid symbols are not supported.
func ParseManaCost(s string) (ManaCost, error) {
	var cost ManaCost
	cleaned := strings.NewReplacer("{", "", "}", "").Replace(strings.TrimSpace(s))
	digits := ""
	for _, r := range cleaned {
		switch r {
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			digits += string(r)
		case 'W', 'U', 'B', 'R', 'G':
			if digits != "" {
				n, _ := strconv.Atoi(digits)
				cost.Generic += n
				digits = ""
			}
			cost.Symbols = append(cost.Symbols, Color(r))
		case 'C':
			// Colorless pip; counts toward the total with no color requirement.
			if digits != "" {
				n, _ := strconv.Atoi(digits)
				cost.Generic += n
				digits = ""
			}
			cost.Generic++
		default:
			return ManaCost{}, fmt.Errorf("unsupported mana symbol %q in cost %q", r, s)
		}
	}
	if digits != "" {
		n, _ := strconv.Atoi(digits)
		cost.Generic += n
	}
	return cost, nil
}

// Card is an immutable description of one candidate card, including the
// copy-count range the deck search may choose from.
type Card struct {
	Name      string
	Category  Category
	Cost      ManaCost
	Colors    []Color
	Power     int
	Toughness int
	Impact    float64
	Tags      []string

	// Inclusive bounds on copies in a deck. Non-lands conventionally cap
	// at 4; basic lands may be uncapped. The bounds are plain data, not
	// category branching: callers choose sensible defaults per category.
	MinCopies int
	MaxCopies int

	// BasicLand marks cards exempt from the four-of convention.
	BasicLand bool
}

// IsLand reports whether the card is a land.
func (c Card) IsLand() bool { return c.Category == CategoryLand }

// IsCreature reports whether the card is a creature.
func (c Card) IsCreature() bool { return c.Category == CategoryCreature }

// HasTag reports whether the card carries the given scoring tag.
func (c Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// BoundsError reports an invalid copy-count range on a card.
type BoundsError struct {
	Card string
	Min  int
	Max  int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("card %q has invalid copy bounds [%d, %d]", e.Card, e.Min, e.Max)
}

// Validate checks the card's structural invariants.
func (c Card) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("card has empty name")
	}
	if c.MinCopies < 0 || c.MinCopies > c.MaxCopies {
		return &BoundsError{Card: c.Name, Min: c.MinCopies, Max: c.MaxCopies}
	}
	return nil
}
