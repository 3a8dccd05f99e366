// Package index holds the in-memory structures produced while indexing
// transcripts: per-transcript word positions and the global inverted index
// from words to the transcripts that contain them.
package index

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer/tokenizer"
)

// InvertedIndex maps a word to the set of transcript identifiers that
// contain it. It only records presence. Use Materialize to obtain the
// serializable form.
type InvertedIndex struct {
	index map[string]map[string]struct{}
}

// WordIndex is the serializable form of an InvertedIndex: identifier lists
// are sorted ascending.
type WordIndex map[string][]string

func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{
		index: make(map[string]map[string]struct{}),
	}
}

// AddDocument tokenizes text, returns the word positions for docID and
// records docID under every indexed word.
func (m *InvertedIndex) AddDocument(docID string, text string, minWordLen int) WordPositions {
	tokens := tokenizer.Tokenize(text, minWordLen)
	positions := make(WordPositions)
	for _, token := range tokens {
		positions[token.Term] = append(positions[token.Term], token.Position)
		docs, exists := m.index[token.Term]
		if !exists {
			docs = make(map[string]struct{})
			m.index[token.Term] = docs
		}
		docs[docID] = struct{}{}
	}
	return positions
}

// Contains reports whether docID was recorded under word.
func (m *InvertedIndex) Contains(word string, docID string) bool {
	_, ok := m.index[word][docID]
	return ok
}

// Search returns the sorted identifiers recorded under word.
func (m *InvertedIndex) Search(word string) []string {
	docs, exists := m.index[word]
	if !exists {
		return nil
	}
	return sortedKeys(docs)
}

// UniqueWords returns the number of distinct words in the index.
func (m *InvertedIndex) UniqueWords() int {
	return len(m.index)
}

// Materialize converts the set-based index into its serializable form. The
// receiver is left untouched.
func (m *InvertedIndex) Materialize() WordIndex {
	out := make(WordIndex, len(m.index))
	for word, docs := range m.index {
		out[word] = sortedKeys(docs)
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
