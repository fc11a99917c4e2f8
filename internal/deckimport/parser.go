// Package deckimport parses line-oriented MTGO/Arena-style decklists
// into (name, count) entries and builds card pools from them with the
// help of a metadata resolver.
package deckimport

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Entry is one parsed decklist line.
type Entry struct {
	Name  string
	Count int

	// HasCount is false for bare-name lines, which the pool builder
	// treats as basic lands free to fill remaining deck slots.
	HasCount bool

	// Impact is an optional per-card bonus annotation ("# impact=1.5").
	Impact float64
}

// ParseError reports a decklist line that could not be interpreted. The
// importer never fabricates a card from a malformed line.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decklist line %d: cannot parse %q", e.Line, e.Text)
}

// Matches "4 Lightning Bolt" and the "4x Lightning Bolt" variant, with an
// optional Arena-style "(SET) 123" suffix which is discarded.
var countedLine = regexp.MustCompile(`^(\d+)x?\s+([^(]+?)(?:\s+\(([A-Z0-9]+)\)(?:\s+\d+)?)?$`)

var impactNote = regexp.MustCompile(`#\s*impact\s*=\s*(-?[0-9.]+)\s*$`)

// Parse reads a decklist from r. Blank lines, "Deck" headers and
// sideboard sections are skipped; "SB:" prefixes are stripped and the
// card kept. Bare names yield entries without a count.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	inSideboard := false
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "Deck" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "sideboard") {
			inSideboard = true
			continue
		}
		if strings.HasPrefix(line, "SB:") {
			line = strings.TrimSpace(line[3:])
		} else if inSideboard {
			continue
		}
		if strings.HasPrefix(line, "//") {
			continue
		}

		impact := 0.0
		if m := impactNote.FindStringSubmatch(line); m != nil {
			impact, _ = strconv.ParseFloat(m[1], 64)
			line = strings.TrimSpace(strings.TrimSuffix(line, m[0]))
		}

		if m := countedLine.FindStringSubmatch(line); m != nil {
			count, err := strconv.Atoi(m[1])
			if err != nil || count < 0 {
				return nil, &ParseError{Line: lineNo, Text: scanner.Text()}
			}
			entries = append(entries, Entry{
				Name:     strings.TrimSpace(m[2]),
				Count:    count,
				HasCount: true,
				Impact:   impact,
			})
			continue
		}

		// Bare card name. Reject anything that looks like a failed
		// counted line rather than silently treating it as a name.
		if strings.ContainsAny(line, "()") {
			return nil, &ParseError{Line: lineNo, Text: scanner.Text()}
		}
		entries = append(entries, Entry{Name: line, Impact: impact})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read decklist: %w", err)
	}
	return entries, nil
}

// ParseString parses a decklist held in a string.
func ParseString(s string) ([]Entry, error) {
	return Parse(strings.NewReader(s))
}
