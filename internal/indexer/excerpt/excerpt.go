// Package excerpt cuts normalized transcript text into short previews made
// of whole, contiguous sentences.
package excerpt

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DefaultMaxExcerpts = 5
	DefaultLength      = 200
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Options bounds the excerpts produced by Extract. Zero values fall back to
// the defaults.
type Options struct {
	MaxExcerpts int
	Length      int
}

func (o Options) withDefaults() Options {
	if o.MaxExcerpts <= 0 {
		o.MaxExcerpts = DefaultMaxExcerpts
	}
	if o.Length <= 0 {
		o.Length = DefaultLength
	}
	return o
}

// Extract greedily packs sentences into excerpts of at most opts.Length
// characters, in text order. A sentence that is longer than the budget on
// its own is kept whole rather than truncated, so Length is a target and
// not a hard cap. At most opts.MaxExcerpts non-empty excerpts are returned.
func Extract(text string, opts Options) []string {
	opts = opts.withDefaults()
	excerpts := make([]string, 0, opts.MaxExcerpts)

	var buf strings.Builder
	bufLen := 0
	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			excerpts = append(excerpts, s)
		}
		buf.Reset()
		bufLen = 0
	}
	add := func(sentence string, n int) {
		buf.WriteString(sentence)
		buf.WriteString(". ")
		bufLen += n + 2
	}

	for _, sentence := range sentenceBoundary.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		n := utf8.RuneCountInString(sentence)
		if bufLen+n > opts.Length {
			flush()
		}
		add(sentence, n)
		if len(excerpts) >= opts.MaxExcerpts {
			return excerpts
		}
	}
	if len(excerpts) < opts.MaxExcerpts {
		flush()
	}
	return excerpts
}
