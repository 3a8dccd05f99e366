package indexer

import (
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteSummary prints the end-of-run totals in a human-readable form.
func WriteSummary(w io.Writer, s Stats) error {
	p := message.NewPrinter(language.English)
	_, err := p.Fprintf(w,
		"\nProcessing complete!\n"+
			"- Processed: %d/%d files\n"+
			"- Total words: %d\n"+
			"- Unique words: %d\n"+
			"- Total size: %d bytes\n"+
			"- Processing time: %.2f seconds\n",
		s.ProcessedFiles, s.TotalFiles,
		s.TotalWords,
		s.UniqueWords,
		s.TotalSize,
		s.Elapsed.Round(time.Millisecond).Seconds(),
	)
	return err
}

// WriteArtifact prints where the index went and how large it is.
func WriteArtifact(w io.Writer, path string, size int64) error {
	p := message.NewPrinter(language.English)
	_, err := p.Fprintf(w, "Transcript index saved: %d bytes (%.1f MB)\nIndex file: %s\n",
		size, float64(size)/1024/1024, path)
	return err
}
