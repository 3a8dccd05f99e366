package indexer

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer/discovery"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer/excerpt"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer/identifier"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer/segment"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/metrics"
)

// Stats are the running totals of a build.
type Stats struct {
	TotalFiles     int
	ProcessedFiles int
	SkippedFiles   int
	FailedFiles    int
	TotalWords     int64
	UniqueWords    int
	TotalSize      int64
	Elapsed        time.Duration
}

// Builder owns all state of one indexing pass: the forward records, the
// inverted index and the statistics. It is not safe for concurrent use.
type Builder struct {
	cfg         config.IndexerConfig
	transcripts map[string]*index.Record
	words       *index.InvertedIndex
	stats       Stats
	metrics     *metrics.Metrics
	logger      *slog.Logger
	now         func() time.Time
}

// NewBuilder creates an empty Builder. m may be nil.
func NewBuilder(cfg config.IndexerConfig, m *metrics.Metrics) *Builder {
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = 50
	}
	if cfg.MinWordLength <= 0 {
		cfg.MinWordLength = tokenizer.DefaultMinWordLength
	}
	return &Builder{
		cfg:         cfg,
		transcripts: make(map[string]*index.Record),
		words:       index.NewInvertedIndex(),
		metrics:     m,
		logger:      logger.WithComponent("indexer"),
		now:         time.Now,
	}
}

// Run indexes every transcript in dir. Only a missing source directory is
// fatal; failures on individual files are logged and the file is skipped.
func (b *Builder) Run(dir string) (*segment.Index, error) {
	paths, err := discovery.List(dir)
	if err != nil {
		return nil, err
	}
	b.stats.TotalFiles += len(paths)
	if b.metrics != nil {
		b.metrics.FilesDiscoveredTotal.Add(float64(len(paths)))
	}
	b.logger.Info("found transcript files", "count", len(paths), "dir", dir)

	start := b.now()
	for i, path := range paths {
		if i%b.cfg.ProgressEvery == 0 {
			b.logger.Info("processing file",
				"n", i+1,
				"total", len(paths),
				"file", filepath.Base(path),
			)
		}
		if err := b.AddFile(path); err != nil {
			if apperrors.IsFatal(err) {
				return nil, err
			}
			b.logFileError(err)
		}
	}
	b.stats.Elapsed = b.now().Sub(start)
	if b.metrics != nil {
		b.metrics.RunDuration.Set(b.stats.Elapsed.Seconds())
	}
	return b.Build(), nil
}

// AddFile reads the file at path and indexes it.
func (b *Builder) AddFile(path string) error {
	name := filepath.Base(path)
	if b.isReserved(name) {
		b.skip("reserved")
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		b.fail("read_error")
		return apperrors.New(apperrors.ErrFileRead, path, err.Error())
	}
	return b.AddTranscript(name, content)
}

// AddTranscript indexes content under the identifier derived from name.
// Files with the reserved prefix are ignored without error.
func (b *Builder) AddTranscript(name string, content []byte) error {
	if b.isReserved(name) {
		b.skip("reserved")
		return nil
	}
	id, ok := identifier.Extract(name)
	if !ok {
		b.skip("no_id")
		return apperrors.New(apperrors.ErrUnresolvableIdentifier, name, "")
	}
	if _, exists := b.transcripts[id]; exists {
		b.skip("duplicate")
		return apperrors.Newf(apperrors.ErrDuplicateIdentifier, name, "video id %s", id)
	}
	if !utf8.Valid(content) {
		b.fail("read_error")
		return apperrors.New(apperrors.ErrFileRead, name, "content is not valid UTF-8")
	}

	text := tokenizer.Normalize(string(content))
	record := &index.Record{
		Text:          text,
		WordPositions: b.words.AddDocument(id, text, b.cfg.MinWordLength),
		Excerpts: excerpt.Extract(text, excerpt.Options{
			MaxExcerpts: b.cfg.MaxExcerpts,
			Length:      b.cfg.ExcerptLength,
		}),
		FileSize:  int64(len(content)),
		WordCount: tokenizer.CountWords(text),
	}
	b.transcripts[id] = record

	b.stats.ProcessedFiles++
	b.stats.TotalWords += int64(record.WordCount)
	b.stats.TotalSize += record.FileSize
	if b.metrics != nil {
		b.metrics.FilesProcessedTotal.Inc()
		b.metrics.WordsIndexedTotal.Add(float64(record.WordCount))
		b.metrics.SourceBytesTotal.Add(float64(record.FileSize))
	}
	b.logger.Debug("transcript indexed",
		"video_id", id,
		"words", record.WordCount,
		"distinct_words", len(record.WordPositions),
		"excerpts", len(record.Excerpts),
	)
	return nil
}

// Record returns the forward record for id.
func (b *Builder) Record(id string) (*index.Record, bool) {
	rec, ok := b.transcripts[id]
	return rec, ok
}

// Stats returns the totals accumulated so far.
func (b *Builder) Stats() Stats {
	s := b.stats
	s.UniqueWords = b.words.UniqueWords()
	return s
}

// Build assembles the final index from everything added so far.
func (b *Builder) Build() *segment.Index {
	stats := b.Stats()
	b.stats.UniqueWords = stats.UniqueWords
	if b.metrics != nil {
		b.metrics.UniqueWords.Set(float64(stats.UniqueWords))
	}
	return &segment.Index{
		Metadata: segment.Metadata{
			GeneratedAt: segment.FormatTimestamp(b.now()),
			TotalVideos: len(b.transcripts),
			TotalWords:  stats.TotalWords,
			UniqueWords: stats.UniqueWords,
			TotalSize:   stats.TotalSize,
		},
		Transcripts: b.transcripts,
		WordIndex:   b.words.Materialize(),
	}
}

func (b *Builder) isReserved(name string) bool {
	return b.cfg.ReservedPrefix != "" && strings.HasPrefix(name, b.cfg.ReservedPrefix)
}

func (b *Builder) skip(reason string) {
	b.stats.SkippedFiles++
	if b.metrics != nil {
		b.metrics.FilesSkippedTotal.WithLabelValues(reason).Inc()
	}
}

func (b *Builder) fail(reason string) {
	b.stats.FailedFiles++
	if b.metrics != nil {
		b.metrics.FilesSkippedTotal.WithLabelValues(reason).Inc()
	}
}

func (b *Builder) logFileError(err error) {
	var fileErr *apperrors.FileError
	file := ""
	if errors.As(err, &fileErr) {
		file = fileErr.Path
	}
	switch {
	case errors.Is(err, apperrors.ErrUnresolvableIdentifier),
		errors.Is(err, apperrors.ErrDuplicateIdentifier):
		b.logger.Warn("skipping transcript", "file", file, "error", err)
	default:
		b.logger.Error("failed to process transcript", "file", file, "error", err)
	}
}
