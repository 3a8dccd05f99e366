package tokenizer

import (
	"regexp"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"timestamp removed", "Hello world. [00:00:01] This is a test.", "Hello world. This is a test."},
		{"newlines collapsed", "line one\n\n\tline two\r\n", "line one line two"},
		{"leading timestamp", "[12:34:56]start", "start"},
		{"one digit field kept", "[0:00:01] kept", "[0:00:01] kept"},
		{"three digit field kept", "[000:00:01] kept", "[000:00:01] kept"},
		{"nested marker", "a [0[00:00:00]0:00:00] b", "a b"},
		{"vertical tab", "alpha\v\vbeta", "alpha beta"},
		{"no-break space", "alpha\u00a0\u00a0beta", "alpha beta"},
		{"line separator", "alpha \u2028 beta", "alpha beta"},
		{"ideographic space", "alpha\u3000\n\u3000beta", "alpha beta"},
		{"only whitespace", " \n\t\u00a0 ", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Hello world. [00:00:01] This is a test.",
		"[01:02:03][04:05:06]  spaced\n\nout  ",
		"[0[00:00:00]0:00:00]",
		"[[00:00:00]00:00:00]]",
		"unicode café [99:99:99] naïve",
		"   ",
		"a\u00a0\v[00:00:01]\u3000b",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeRemovesAllMarkers(t *testing.T) {
	marker := regexp.MustCompile(`\[[0-9]{2}:[0-9]{2}:[0-9]{2}\]`)
	in := "[00:00:01] a\n[00:00:02]b [10:20:30]\t\tc [0[11:11:11]1:11:11]"
	out := Normalize(in)
	if marker.MatchString(out) {
		t.Errorf("marker left in %q", out)
	}
	if strings.Contains(out, "  ") || strings.ContainsAny(out, "\n\t") {
		t.Errorf("whitespace not collapsed in %q", out)
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Hello world. This is a test.", DefaultMinWordLength)
	want := []Token{
		{Term: "hello", Position: 0},
		{Term: "world", Position: 1},
		{Term: "this", Position: 2},
		{Term: "test", Position: 3},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(tokens), tokens, len(want))
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, tokens[i], want[i])
		}
	}
}

func TestTokenizeSplitsOnNonLetters(t *testing.T) {
	tokens := Tokenize("abc123def don't CAFÉ x_y_zzz", DefaultMinWordLength)
	var terms []string
	for _, tok := range tokens {
		terms = append(terms, tok.Term)
	}
	got := strings.Join(terms, ",")
	if want := "abc,def,caf,zzz"; got != want {
		t.Errorf("terms = %s, want %s", got, want)
	}
}

func TestTokenizeMinLength(t *testing.T) {
	tokens := Tokenize("go is fun and fast", 4)
	if len(tokens) != 1 || tokens[0].Term != "fast" || tokens[0].Position != 0 {
		t.Errorf("got %+v", tokens)
	}
}

func TestCountWords(t *testing.T) {
	if n := CountWords("Hello world. This is a test."); n != 6 {
		t.Errorf("CountWords = %d, want 6", n)
	}
	if n := CountWords(""); n != 0 {
		t.Errorf("CountWords(\"\") = %d, want 0", n)
	}
}
