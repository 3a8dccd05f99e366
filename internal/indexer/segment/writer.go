package segment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer/index"
)

// TimestampLayout is the local-time layout of Metadata.GeneratedAt.
const TimestampLayout = "2006-01-02 15:04:05"

// Metadata summarises the index for clients that only need the totals.
type Metadata struct {
	GeneratedAt string `json:"generated_at"`
	TotalVideos int    `json:"total_videos"`
	TotalWords  int64  `json:"total_words"`
	UniqueWords int    `json:"unique_words"`
	TotalSize   int64  `json:"total_size"`
}

// Index is the complete persisted artifact.
type Index struct {
	Metadata    Metadata                 `json:"metadata"`
	Transcripts map[string]*index.Record `json:"transcripts"`
	WordIndex   index.WordIndex          `json:"word_index"`
}

// Writer serialises an Index into a single compact JSON file.
type Writer struct {
	path string
}

// NewWriter creates a Writer that writes the artifact to path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the destination of the artifact.
func (w *Writer) Path() string {
	return w.path
}

// Write atomically replaces the artifact with idx. It writes to a .tmp file
// first and renames on success. The size of the artifact in bytes is
// returned.
func (w *Writer) Write(idx *Index) (int64, error) {
	data, err := Encode(idx)
	if err != nil {
		return 0, err
	}
	return w.WriteEncoded(data)
}

// WriteEncoded is like Write for an index that was already encoded.
func (w *Writer) WriteEncoded(data []byte) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}
	tmpPath := w.path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("creating temp index file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return 0, fmt.Errorf("writing index: %w", err)
	}
	if err := f.Sync(); err != nil {
		return 0, fmt.Errorf("syncing index file: %w", err)
	}
	f.Close()
	if err := os.Rename(tmpPath, w.path); err != nil {
		return 0, fmt.Errorf("renaming index file: %w", err)
	}
	return int64(len(data)), nil
}

// Encode renders idx as compact JSON. HTML characters are left unescaped
// and there is no trailing newline.
func Encode(idx *Index) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(idx); err != nil {
		return nil, fmt.Errorf("marshaling index: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// FormatTimestamp renders t the way Metadata.GeneratedAt expects.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}
