package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const maskChar = '*'

// The dictionary uses specific words to avoid partial collisions
// (e.g., "he" inside "The").
func TestModerator_Censor(t *testing.T) {
	req := require.New(t)
	mod, err := NewModerator([]string{"badger", "snake", "mushroom"}, maskChar)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
		masked   int
	}{
		{
			name:     "simple word with preserved spacing",
			input:    "The badger is here",
			expected: "The ****** is here",
			masked:   1,
		},
		{
			name:     "multiple occurrences",
			input:    "badger badger badger",
			expected: "****** ****** ******",
			masked:   3,
		},
		{
			name:     "leet speak with internal punctuation",
			input:    "Look at B.4.d.g.€r !",
			expected: "Look at ********** !",
			masked:   1,
		},
		{
			name:     "uppercase and heavy noise",
			input:    "S-N-A-K-E is a B.A.D.G.E.R",
			expected: "********* is a ***********",
			masked:   2,
		},
		{
			name:     "accented text around the match",
			input:    "Un été avec un badger",
			expected: "Un été avec un ******",
			masked:   1,
		},
		{
			name:     "word adjacent to trailing punctuation",
			input:    "I love badger!",
			expected: "I love ******!",
			masked:   1,
		},
		{
			name:     "nothing to censor",
			input:    "groupchat is amazing",
			expected: "groupchat is amazing",
			masked:   0,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
			masked:   0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			got, masked := mod.Censor(tc.input)
			req.Equal(tc.expected, got)
			req.Equal(tc.masked, masked)
		})
	}
}

func TestNewModerator_SkipsUnusablePatterns(t *testing.T) {
	req := require.New(t)
	mod, err := NewModerator([]string{"...", "badger"}, maskChar)
	req.NoError(err)

	got, masked := mod.Censor("a badger again")
	req.Equal("a ****** again", got)
	req.Equal(1, masked)
}
