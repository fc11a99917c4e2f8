package deckimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCountedLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Entry
	}{
		{
			name:  "plain count",
			input: "4 Lightning Bolt",
			want:  Entry{Name: "Lightning Bolt", Count: 4, HasCount: true},
		},
		{
			name:  "x suffix",
			input: "4x Lightning Bolt",
			want:  Entry{Name: "Lightning Bolt", Count: 4, HasCount: true},
		},
		{
			name:  "arena set suffix",
			input: "3 Shivan Dragon (M20) 151",
			want:  Entry{Name: "Shivan Dragon", Count: 3, HasCount: true},
		},
		{
			name:  "set suffix without collector number",
			input: "2 Opt (XLN)",
			want:  Entry{Name: "Opt", Count: 2, HasCount: true},
		},
		{
			name:  "impact annotation",
			input: "4 Lightning Bolt # impact=1.5",
			want:  Entry{Name: "Lightning Bolt", Count: 4, HasCount: true, Impact: 1.5},
		},
		{
			name:  "negative impact",
			input: "2 Tormenting Voice # impact=-0.5",
			want:  Entry{Name: "Tormenting Voice", Count: 2, HasCount: true, Impact: -0.5},
		},
		{
			name:  "bare name",
			input: "Mountain",
			want:  Entry{Name: "Mountain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseString(tt.input)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0])
		})
	}
}

func TestParseSkipsStructure(t *testing.T) {
	input := `Deck
4 Lightning Bolt

// land base
20 Mountain

Sideboard
3 Smash to Smithereens
`
	entries, err := ParseString(input)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Lightning Bolt", entries[0].Name)
	assert.Equal(t, "Mountain", entries[1].Name)
}

func TestParseKeepsSBPrefixedCards(t *testing.T) {
	input := `4 Lightning Bolt
SB: 2 Pyroblast
`
	entries, err := ParseString(input)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Name: "Pyroblast", Count: 2, HasCount: true}, entries[1])
}

func TestParseRejectsMalformedLines(t *testing.T) {
	_, err := ParseString("4 Lightning Bolt\nNot A Card (broken\n")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Contains(t, perr.Error(), "line 2")
}

func TestParseEmptyInput(t *testing.T) {
	entries, err := ParseString("")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
