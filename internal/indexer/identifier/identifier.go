// Package identifier derives the video identifier that keys a transcript
// from the transcript's file name. Exporters name files inconsistently, so
// several patterns are tried in a fixed priority order.
package identifier

import "regexp"

// Length is the number of characters in every identifier.
const Length = 11

type rule struct {
	name    string
	pattern *regexp.Regexp
}

var rules = []rule{
	{"auto-caption", regexp.MustCompile(`([A-Za-z0-9_-]{11})_[a-z]{2}_auto\.txt$`)},
	{"bare", regexp.MustCompile(`^([A-Za-z0-9_-]{11})\.txt$`)},
	{"prefixed-auto-caption", regexp.MustCompile(`_([A-Za-z0-9_-]{11})_[a-z]{2}_auto\.txt$`)},
}

// Extract returns the identifier embedded in filename. The second result is
// false when no rule matches, in which case the file must not be indexed.
func Extract(filename string) (string, bool) {
	id, _, ok := Match(filename)
	return id, ok
}

// Match is like Extract but also reports which rule produced the identifier.
func Match(filename string) (id string, ruleName string, ok bool) {
	for _, r := range rules {
		if m := r.pattern.FindStringSubmatch(filename); m != nil {
			return m[1], r.name, true
		}
	}
	return "", "", false
}
