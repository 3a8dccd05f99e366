// Package tokenizer cleans raw transcript text and splits it into indexable
// words. Words are maximal runs of ASCII letters, lower-cased, and anything
// shorter than the configured minimum length is dropped.
package tokenizer

import (
	"regexp"
	"strings"
)

// DefaultMinWordLength is the shortest word that makes it into the index.
const DefaultMinWordLength = 3

var timestampPattern = regexp.MustCompile(`\[[0-9]{2}:[0-9]{2}:[0-9]{2}\]`)

// Token represents a single indexed word and its position in the filtered
// token stream.
type Token struct {
	Term     string
	Position int
}

// Normalize strips [HH:MM:SS] markers, collapses runs of Unicode whitespace
// into a single space and trims the result. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	// Removing one marker can splice two halves into a new one.
	for timestampPattern.MatchString(text) {
		text = timestampPattern.ReplaceAllString(text, "")
	}
	return strings.Join(strings.Fields(text), " ")
}

// Tokenize breaks text into lower-cased Tokens. Positions count only the
// tokens that are kept, so the first indexed word is always at 0.
func Tokenize(text string, minLen int) []Token {
	if minLen <= 0 {
		minLen = DefaultMinWordLength
	}
	tokens := make([]Token, 0, len(text)/6)
	pos := 0
	start := -1
	emit := func(end int) {
		if end-start >= minLen {
			tokens = append(tokens, Token{
				Term:     strings.ToLower(text[start:end]),
				Position: pos,
			})
			pos++
		}
		start = -1
	}
	for i := 0; i < len(text); i++ {
		if isASCIILetter(text[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			emit(i)
		}
	}
	if start >= 0 {
		emit(len(text))
	}
	return tokens
}

// CountWords returns the number of whitespace-separated fields in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

func isASCIILetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
