package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/postgres"
	"github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/redis"
)

// CompleteEvent is the payload of the index-complete Kafka message.
type CompleteEvent struct {
	Path        string `json:"path"`
	Bytes       int64  `json:"bytes"`
	GeneratedAt string `json:"generated_at"`
	TotalVideos int    `json:"total_videos"`
	TotalWords  int64  `json:"total_words"`
	UniqueWords int    `json:"unique_words"`
	TotalSize   int64  `json:"total_size"`
}

func completeEvent(art Artifact) CompleteEvent {
	return CompleteEvent{
		Path:        art.Path,
		Bytes:       art.Size,
		GeneratedAt: art.Metadata.GeneratedAt,
		TotalVideos: art.Metadata.TotalVideos,
		TotalWords:  art.Metadata.TotalWords,
		UniqueWords: art.Metadata.UniqueWords,
		TotalSize:   art.Metadata.TotalSize,
	}
}

// KafkaSink announces a new index on a Kafka topic.
type KafkaSink struct {
	producer *kafka.Producer
}

func NewKafkaSink(cfg config.KafkaConfig) *KafkaSink {
	return &KafkaSink{producer: kafka.NewProducer(cfg)}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Publish(ctx context.Context, art Artifact) error {
	return s.producer.Publish(ctx, kafka.Event{
		Key:   art.Metadata.GeneratedAt,
		Value: completeEvent(art),
	})
}

func (s *KafkaSink) Close() error { return s.producer.Close() }

// RedisSink stores the compact artifact under cfg.Key and its metadata
// under cfg.Key + ":meta".
type RedisSink struct {
	client *redis.Client
	cfg    config.RedisConfig
}

func NewRedisSink(cfg config.RedisConfig) (*RedisSink, error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &RedisSink{client: client, cfg: cfg}, nil
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Publish(ctx context.Context, art Artifact) error {
	meta, err := json.Marshal(completeEvent(art))
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return s.client.SetMany(ctx, map[string]any{
		s.cfg.Key:           art.Data,
		s.cfg.Key + ":meta": meta,
	}, s.cfg.TTL)
}

func (s *RedisSink) Ping(ctx context.Context) error { return s.client.Ping(ctx) }

func (s *RedisSink) Close() error { return s.client.Close() }

// PostgresSink appends a row to the index_runs table.
type PostgresSink struct {
	client *postgres.Client
}

func NewPostgresSink(cfg config.PostgresConfig) (*PostgresSink, error) {
	client, err := postgres.New(cfg)
	if err != nil {
		return nil, err
	}
	return &PostgresSink{client: client}, nil
}

func (s *PostgresSink) Name() string { return "postgres" }

func (s *PostgresSink) Publish(ctx context.Context, art Artifact) error {
	_, err := s.client.RecordRun(ctx, postgres.Run{
		GeneratedAt:   art.Metadata.GeneratedAt,
		TotalVideos:   art.Metadata.TotalVideos,
		TotalWords:    art.Metadata.TotalWords,
		UniqueWords:   art.Metadata.UniqueWords,
		TotalSize:     art.Metadata.TotalSize,
		ArtifactPath:  art.Path,
		ArtifactBytes: art.Size,
	})
	return err
}

func (s *PostgresSink) Ping(ctx context.Context) error { return s.client.Ping(ctx) }

func (s *PostgresSink) Close() error { return s.client.Close() }

// FromConfig builds every sink enabled in cfg. Sinks created before a
// failure are closed.
func FromConfig(cfg *config.Config) ([]Sink, error) {
	var sinks []Sink
	closeAll := func() {
		for _, s := range sinks {
			s.Close()
		}
	}
	if cfg.Kafka.Enabled {
		sinks = append(sinks, NewKafkaSink(cfg.Kafka))
	}
	if cfg.Redis.Enabled {
		s, err := NewRedisSink(cfg.Redis)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("creating redis sink: %w", err)
		}
		sinks = append(sinks, s)
	}
	if cfg.Postgres.Enabled {
		s, err := NewPostgresSink(cfg.Postgres)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("creating postgres sink: %w", err)
		}
		sinks = append(sinks, s)
	}
	return sinks, nil
}
