package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer/segment"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/publisher"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	sourceDir := flag.String("source", "", "directory of transcript .txt files (overrides config)")
	outputFile := flag.String("output", "", "path of the index to write (overrides config)")
	verify := flag.Bool("verify", false, "re-read the written index and check its consistency")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *sourceDir != "" {
		cfg.Indexer.SourceDir = *sourceDir
	}
	if *outputFile != "" {
		cfg.Indexer.OutputFile = *outputFile
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	os.Exit(run(cfg, *verify))
}

func run(cfg *config.Config, verify bool) int {
	ctx := logger.WithRunID(context.Background(), time.Now().Format("20060102T150405"))
	logger.FromContext(ctx).Info("starting transcript preindexer",
		"source_dir", cfg.Indexer.SourceDir,
		"output", cfg.Indexer.OutputFile,
	)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	builder := indexer.NewBuilder(cfg.Indexer, m)
	idx, err := builder.Run(cfg.Indexer.SourceDir)
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingSourceDirectory) {
			slog.Error("subtitles directory not found", "dir", cfg.Indexer.SourceDir)
		} else {
			slog.Error("indexing failed", "error", err)
		}
		return 1
	}
	if err := indexer.WriteSummary(os.Stdout, builder.Stats()); err != nil {
		slog.Error("writing summary", "error", err)
	}

	writer := segment.NewWriter(cfg.Indexer.OutputFile)
	slog.Info("saving transcript index", "path", writer.Path())
	data, err := segment.Encode(idx)
	if err != nil {
		slog.Error("encoding index failed", "error", err)
		return 1
	}
	size, err := writer.WriteEncoded(data)
	if err != nil {
		slog.Error("writing index failed", "error", err)
		return 1
	}
	if err := indexer.WriteArtifact(os.Stdout, writer.Path(), size); err != nil {
		slog.Error("writing summary", "error", err)
	}

	if verify {
		written, err := segment.Open(writer.Path())
		if err == nil {
			err = segment.Verify(written)
		}
		if err != nil {
			slog.Error("index verification failed", "error", err)
			return 1
		}
		slog.Info("index verified", "transcripts", len(written.Transcripts), "words", len(written.WordIndex))
	}

	exitCode := 0
	if err := publish(ctx, cfg, m, publisher.Artifact{
		Path:     writer.Path(),
		Size:     size,
		Data:     data,
		Metadata: idx.Metadata,
	}); err != nil {
		slog.Error("publishing index failed", "error", err)
		exitCode = 1
	}

	if m != nil {
		m.IndexSizeBytes.Set(float64(size))
		if exitCode == 0 {
			m.LastSuccessTimestamp.Set(float64(time.Now().Unix()))
		}
		if err := m.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			slog.Error("metrics export failed", "error", err)
		}
	}
	logger.FromContext(ctx).Info("transcript indexing complete", "exit_code", exitCode)
	return exitCode
}

func publish(ctx context.Context, cfg *config.Config, m *metrics.Metrics, art publisher.Artifact) error {
	sinks, err := publisher.FromConfig(cfg)
	if err != nil {
		return err
	}
	if len(sinks) == 0 {
		return nil
	}
	pub := publisher.New(cfg.Publish, m, sinks...)
	defer pub.Close()

	ctx, cancel := context.WithTimeout(ctx, cfg.Publish.Timeout*time.Duration(cfg.Publish.MaxAttempts+1))
	defer cancel()
	if err := pub.Preflight(ctx); err != nil {
		return err
	}
	return pub.Publish(ctx, art)
}
