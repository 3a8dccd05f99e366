// Package publisher hands a finished index to the optional external sinks:
// a Kafka index-complete event, a copy of the artifact in Redis and a row
// of run history in PostgreSQL. Sinks are published concurrently, each with
// its own timeout and retry budget.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer/segment"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/resilience"
)

// Artifact describes a written index.
type Artifact struct {
	Path     string
	Size     int64
	Data     []byte
	Metadata segment.Metadata
}

// Sink receives a finished Artifact.
type Sink interface {
	Name() string
	Publish(ctx context.Context, art Artifact) error
	Close() error
}

// Pinger is implemented by sinks that can be probed before publishing.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Publisher fans an Artifact out to every registered Sink.
type Publisher struct {
	sinks   []Sink
	cfg     config.PublishConfig
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a Publisher. m may be nil.
func New(cfg config.PublishConfig, m *metrics.Metrics, sinks ...Sink) *Publisher {
	return &Publisher{
		sinks:   sinks,
		cfg:     cfg,
		metrics: m,
		logger:  logger.WithComponent("publisher"),
	}
}

// Len returns the number of registered sinks.
func (p *Publisher) Len() int {
	return len(p.sinks)
}

// Preflight pings every sink that supports it and fails with
// ErrSinkUnavailable if any of them is down.
func (p *Publisher) Preflight(ctx context.Context) error {
	checker := health.NewChecker()
	for _, s := range p.sinks {
		if pinger, ok := s.(Pinger); ok {
			checker.Register(s.Name(), health.PingCheck(pinger.Ping))
		}
	}
	report := checker.Run(ctx)
	if report.Status != health.StatusUp {
		return fmt.Errorf("%w: %v", apperrors.ErrSinkUnavailable, report.Down())
	}
	return nil
}

// Publish sends art to all sinks. Every sink is attempted even if another
// one fails; the first error is returned.
func (p *Publisher) Publish(ctx context.Context, art Artifact) error {
	log := logger.FromContext(ctx).With("component", "publisher")
	var g errgroup.Group
	retryCfg := resilience.RetryConfigFrom(p.cfg)
	for _, s := range p.sinks {
		g.Go(func() error {
			start := time.Now()
			err := resilience.Retry(ctx, "publish-"+s.Name(), retryCfg, func() error {
				return resilience.WithTimeout(ctx, p.cfg.Timeout, s.Name(), func(ctx context.Context) error {
					return s.Publish(ctx, art)
				})
			})
			status := "ok"
			if err != nil {
				status = "error"
				log.Error("publish failed", "sink", s.Name(), "error", err)
			} else {
				log.Info("published index",
					"sink", s.Name(),
					"duration", time.Since(start).Round(time.Millisecond),
				)
			}
			if p.metrics != nil {
				p.metrics.PublishTotal.WithLabelValues(s.Name(), status).Inc()
			}
			if err != nil {
				return fmt.Errorf("sink %s: %w", s.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Close closes every sink.
func (p *Publisher) Close() error {
	var firstErr error
	for _, s := range p.sinks {
		if err := s.Close(); err != nil {
			p.logger.Error("close failed", "sink", s.Name(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
