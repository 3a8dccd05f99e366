// Package benchmark contains Go benchmarks for the transcript indexer,
// measuring per-transcript throughput and allocation behaviour.
package benchmark

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer/excerpt"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer/segment"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/config"
)

var transcript = strings.Repeat(`[00:00:01] Celery juice on an empty stomach in the morning.
[00:00:05] Wait fifteen to thirty minutes before eating anything else!
[00:00:09] Why does it help? Because the mineral salts support digestion. `, 40)

func benchConfig() config.IndexerConfig {
	return config.IndexerConfig{
		MaxExcerpts:    5,
		ExcerptLength:  200,
		MinWordLength:  3,
		ProgressEvery:  50,
		ReservedPrefix: "._",
	}
}

// BenchmarkInvertedIndexAdd measures per-transcript insert throughput into
// the inverted index.
func BenchmarkInvertedIndexAdd(b *testing.B) {
	m := index.NewInvertedIndex()
	b.ReportAllocs()
	b.SetBytes(int64(len(transcript)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.AddDocument(fmt.Sprintf("vid%08d", i), transcript, 3)
	}
}

// BenchmarkMaterialize measures converting the set-based index into its
// serializable form over 5 000 transcripts.
func BenchmarkMaterialize(b *testing.B) {
	m := index.NewInvertedIndex()
	for i := 0; i < 5000; i++ {
		m.AddDocument(fmt.Sprintf("vid%08d", i), "celery juice heals the liver and the gut", 3)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Materialize()
	}
}

func BenchmarkExcerpts(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = excerpt.Extract(transcript, excerpt.Options{})
	}
}

// BenchmarkBuilderAddTranscript measures the full per-file pipeline:
// normalize, index and excerpt.
func BenchmarkBuilderAddTranscript(b *testing.B) {
	builder := indexer.NewBuilder(benchConfig(), nil)
	content := []byte(transcript)
	b.ReportAllocs()
	b.SetBytes(int64(len(content)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		name := fmt.Sprintf("%011d_en_auto.txt", i)
		if err := builder.AddTranscript(name, content); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRun measures a whole batch over directories of various sizes.
func BenchmarkRun(b *testing.B) {
	for _, files := range []int{10, 100, 500} {
		b.Run(fmt.Sprintf("files_%d", files), func(b *testing.B) {
			dir := b.TempDir()
			for i := 0; i < files; i++ {
				path := filepath.Join(dir, fmt.Sprintf("%011d_en_auto.txt", i))
				if err := os.WriteFile(path, []byte(transcript), 0644); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				idx, err := indexer.NewBuilder(benchConfig(), nil).Run(dir)
				if err != nil {
					b.Fatal(err)
				}
				if _, err := segment.Encode(idx); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
