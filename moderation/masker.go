// Package moderation masks forbidden words in chat text before it is
// displayed or sent. Matching is resilient to casing, punctuation noise and
// common leet-speak substitutions while masking only the original
// characters, so spacing and layout survive.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"

	"persona-chat/errors"
)

type Masker struct {
	matcher  *goahocorasick.Machine
	maskChar rune
}

// NewMasker builds the Aho-Corasick automaton over the normalized
// dictionary. An empty dictionary is refused rather than silently matching
// nothing.
func NewMasker(words []string, maskChar rune) (*Masker, error) {
	if len(words) == 0 {
		return nil, errors.ErrEmptyDictionary
	}

	patterns := make([][]rune, len(words))
	for i, word := range words {
		patterns[i] = foldRunes([]rune(word))
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, err
	}
	return &Masker{matcher: machine, maskChar: maskChar}, nil
}

// Mask replaces every character of every matched word with the mask rune,
// addressing matches through the normalized-to-original index mapping.
func (m *Masker) Mask(text string) string {
	folded, origIdx := fold(text)
	if len(folded) == 0 {
		return text
	}

	spans := m.matcher.MultiPatternSearch(folded, false)
	if len(spans) == 0 {
		return text
	}

	runes := []rune(text)
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(origIdx) {
			continue
		}
		// Mask the whole original span, including any noise characters
		// that were folded away between the matched letters.
		for i := origIdx[start]; i <= origIdx[end-1]; i++ {
			runes[i] = m.maskChar
		}
	}
	return string(runes)
}

// fold lowercases, strips noise and reverses leet substitutions, keeping a
// mapping from each folded rune back to its original position.
func fold(text string) ([]rune, []int) {
	orig := []rune(text)
	folded := make([]rune, 0, len(orig))
	origIdx := make([]int, 0, len(orig))
	for i, r := range orig {
		clean := unleet(r)
		if isNoise(clean) {
			continue
		}
		folded = append(folded, unicode.ToLower(clean))
		origIdx = append(origIdx, i)
	}
	return folded, origIdx
}

func foldRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := unleet(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// unleet maps common leet-speak characters back to their alphabet
// counterparts.
func unleet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
