package index

// WordPositions maps a word to the zero-based offsets at which it occurs in
// the filtered token stream of one transcript.
type WordPositions map[string][]int

// Record is the forward entry for one transcript. It is built once and not
// modified afterwards.
type Record struct {
	Text          string        `json:"text"`
	WordPositions WordPositions `json:"word_positions"`
	Excerpts      []string      `json:"excerpts"`
	FileSize      int64         `json:"file_size"`
	WordCount     int           `json:"word_count"`
}

// Occurrences returns how many times word was indexed in the record.
func (r *Record) Occurrences(word string) int {
	return len(r.WordPositions[word])
}
