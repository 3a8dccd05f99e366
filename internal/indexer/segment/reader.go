package segment

import (
	"encoding/json"
	"fmt"
	"os"
)

// Open reads and decodes an artifact previously produced by Writer.
func Open(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening index file: %w", err)
	}
	return Decode(data)
}

// Decode parses an encoded artifact.
func Decode(data []byte) (*Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing index: %w", err)
	}
	return &idx, nil
}

// Verify checks that the word index and the forward records agree: every
// word listed for a transcript must have positions in that transcript's
// record, and every word in a record must list the transcript.
func Verify(idx *Index) error {
	if idx.Metadata.TotalVideos != len(idx.Transcripts) {
		return fmt.Errorf("metadata reports %d transcripts, found %d",
			idx.Metadata.TotalVideos, len(idx.Transcripts))
	}
	if idx.Metadata.UniqueWords != len(idx.WordIndex) {
		return fmt.Errorf("metadata reports %d unique words, found %d",
			idx.Metadata.UniqueWords, len(idx.WordIndex))
	}
	for word, ids := range idx.WordIndex {
		for _, id := range ids {
			rec, ok := idx.Transcripts[id]
			if !ok {
				return fmt.Errorf("word %q references unknown transcript %q", word, id)
			}
			if len(rec.WordPositions[word]) == 0 {
				return fmt.Errorf("word %q lists transcript %q without positions", word, id)
			}
		}
	}
	for id, rec := range idx.Transcripts {
		for word := range rec.WordPositions {
			if !contains(idx.WordIndex[word], id) {
				return fmt.Errorf("transcript %q has word %q missing from word index", id, word)
			}
		}
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
