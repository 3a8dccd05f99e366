package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/internal/indexer/segment"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeSink struct {
	name     string
	failures int
	pingErr  error

	mu     sync.Mutex
	calls  int
	got    []Artifact
	closed bool
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Publish(ctx context.Context, art Artifact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return errors.New("temporarily unavailable")
	}
	f.got = append(f.got, art)
	return nil
}

func (f *fakeSink) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeSink) Close() error {
	f.closed = true
	return nil
}

func testPublishConfig() config.PublishConfig {
	return config.PublishConfig{
		Timeout:      time.Second,
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
	}
}

func testArtifact() Artifact {
	return Artifact{
		Path: "data/transcript_index.json",
		Size: 3,
		Data: []byte("{}"),
		Metadata: segment.Metadata{
			GeneratedAt: "2026-10-19 12:00:00",
			TotalVideos: 1,
		},
	}
}

func TestPublishAllSinks(t *testing.T) {
	a := &fakeSink{name: "a"}
	b := &fakeSink{name: "b", failures: 1}
	m := metrics.New()
	p := New(testPublishConfig(), m, a, b)

	if err := p.Publish(context.Background(), testArtifact()); err != nil {
		t.Fatal(err)
	}
	if len(a.got) != 1 || len(b.got) != 1 {
		t.Fatalf("deliveries a=%d b=%d", len(a.got), len(b.got))
	}
	if b.calls != 2 {
		t.Errorf("sink b called %d times, want 2", b.calls)
	}
	if a.got[0].Metadata.TotalVideos != 1 {
		t.Errorf("artifact = %+v", a.got[0])
	}
	if got := testutil.ToFloat64(m.PublishTotal.WithLabelValues("b", "ok")); got != 1 {
		t.Errorf("publish metric = %v", got)
	}
}

func TestPublishReportsFailure(t *testing.T) {
	good := &fakeSink{name: "good"}
	bad := &fakeSink{name: "bad", failures: 10}
	p := New(testPublishConfig(), nil, good, bad)

	err := p.Publish(context.Background(), testArtifact())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(good.got) != 1 {
		t.Error("healthy sink was not published to")
	}
	if bad.calls != 3 {
		t.Errorf("bad sink called %d times, want 3", bad.calls)
	}
}

func TestPreflight(t *testing.T) {
	up := &fakeSink{name: "up"}
	down := &fakeSink{name: "down", pingErr: errors.New("connection refused")}

	if err := New(testPublishConfig(), nil, up).Preflight(context.Background()); err != nil {
		t.Errorf("preflight with healthy sink: %v", err)
	}
	err := New(testPublishConfig(), nil, up, down).Preflight(context.Background())
	if !errors.Is(err, apperrors.ErrSinkUnavailable) {
		t.Errorf("err = %v, want ErrSinkUnavailable", err)
	}
}

func TestClose(t *testing.T) {
	a := &fakeSink{name: "a"}
	b := &fakeSink{name: "b"}
	p := New(testPublishConfig(), nil, a, b)
	if p.Len() != 2 {
		t.Errorf("Len = %d", p.Len())
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if !a.closed || !b.closed {
		t.Error("sinks not closed")
	}
}

func TestFromConfigNoSinks(t *testing.T) {
	cfg := &config.Config{}
	sinks, err := FromConfig(cfg)
	if err != nil || len(sinks) != 0 {
		t.Errorf("sinks = %v, err = %v", sinks, err)
	}
}

func TestCompleteEvent(t *testing.T) {
	ev := completeEvent(testArtifact())
	if ev.Path != "data/transcript_index.json" || ev.Bytes != 3 || ev.GeneratedAt != "2026-10-19 12:00:00" {
		t.Errorf("event = %+v", ev)
	}
}
