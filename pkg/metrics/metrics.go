// Package metrics defines the Prometheus collectors for a preindex run and
// exports them in the node_exporter textfile format once the run is over.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for a run.
type Metrics struct {
	registry *prometheus.Registry

	FilesDiscoveredTotal prometheus.Counter
	FilesProcessedTotal  prometheus.Counter
	FilesSkippedTotal    *prometheus.CounterVec
	WordsIndexedTotal    prometheus.Counter
	SourceBytesTotal     prometheus.Counter
	UniqueWords          prometheus.Gauge
	IndexSizeBytes       prometheus.Gauge
	RunDuration          prometheus.Gauge
	LastSuccessTimestamp prometheus.Gauge
	PublishTotal         *prometheus.CounterVec
}

// New creates all collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FilesDiscoveredTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "preindex_files_discovered_total",
				Help: "Transcript files found in the source directory.",
			},
		),
		FilesProcessedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "preindex_files_processed_total",
				Help: "Transcript files successfully added to the index.",
			},
		),
		FilesSkippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "preindex_files_skipped_total",
				Help: "Transcript files left out of the index by reason (reserved, no_id, duplicate, read_error).",
			},
			[]string{"reason"},
		),
		WordsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "preindex_words_total",
				Help: "Words across all normalized transcripts.",
			},
		),
		SourceBytesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "preindex_source_bytes_total",
				Help: "Bytes of transcript source read.",
			},
		),
		UniqueWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "preindex_unique_words",
				Help: "Distinct words in the inverted index.",
			},
		),
		IndexSizeBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "preindex_index_size_bytes",
				Help: "Size of the written index artifact.",
			},
		),
		RunDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "preindex_run_duration_seconds",
				Help: "Wall-clock duration of the indexing pass.",
			},
		),
		LastSuccessTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "preindex_last_success_timestamp_seconds",
				Help: "Unix time of the last run that wrote an index.",
			},
		),
		PublishTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "preindex_publish_total",
				Help: "Publish attempts per sink by status.",
			},
			[]string{"sink", "status"},
		),
	}

	m.registry.MustRegister(
		m.FilesDiscoveredTotal,
		m.FilesProcessedTotal,
		m.FilesSkippedTotal,
		m.WordsIndexedTotal,
		m.SourceBytesTotal,
		m.UniqueWords,
		m.IndexSizeBytes,
		m.RunDuration,
		m.LastSuccessTimestamp,
		m.PublishTotal,
	)

	return m
}

// Gatherer exposes the private registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes every collector to path for the node_exporter
// textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
