// Package moderation masks blacklisted words in chat text before it is
// broadcast. Matching runs on a normalized view of the text (lowercase,
// leet speak folded, punctuation ignored) so "B.4.d word" variants are
// caught, while masking applies to the original runes so spacing is
// preserved.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// leet maps common substitution characters back to the letter they
// stand for.
var leet = map[rune]rune{
	'4': 'a', '@': 'a',
	'3': 'e', '€': 'e',
	'1': 'i', '!': 'i', '|': 'i',
	'0': 'o',
	'5': 's', '$': 's',
}

// Moderator owns an Aho-Corasick automaton built once over the
// normalized word list. It is read-only after construction and safe
// for concurrent use.
type Moderator struct {
	matcher  *goahocorasick.Machine
	maskChar rune
}

// NewModerator builds the automaton from words. Words that normalize
// to nothing (pure punctuation) are skipped.
func NewModerator(words []string, maskChar rune) (*Moderator, error) {
	patterns := make([][]rune, 0, len(words))
	for _, w := range words {
		if norm, _ := normalize(w); len(norm) > 0 {
			patterns = append(patterns, norm)
		}
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: m, maskChar: maskChar}, nil
}

// Censor replaces every matched span of text with the mask character
// and reports how many spans were masked. Unmatched text is returned
// untouched.
func (m *Moderator) Censor(text string) (string, int) {
	norm, origIdx := normalize(text)
	if len(norm) == 0 {
		return text, 0
	}

	spans := m.matcher.MultiPatternSearch(norm, false)
	if len(spans) == 0 {
		return text, 0
	}

	runes := []rune(text)
	masked := 0
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(origIdx) {
			continue
		}
		// Map the normalized span back to the original rune range and
		// mask everything in between, punctuation included.
		for i := origIdx[start]; i <= origIdx[end-1]; i++ {
			runes[i] = m.maskChar
		}
		masked++
	}
	return string(runes), masked
}

// normalize lowercases text, folds leet speak, and drops punctuation,
// spacing, and symbols. The second return value maps each normalized
// rune back to its index in the original text.
func normalize(text string) ([]rune, []int) {
	orig := []rune(text)
	norm := make([]rune, 0, len(orig))
	origIdx := make([]int, 0, len(orig))

	for i, r := range orig {
		if folded, ok := leet[r]; ok {
			r = folded
		}
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		norm = append(norm, unicode.ToLower(r))
		origIdx = append(origIdx, i)
	}
	return norm, origIdx
}
