// Package config loads and validates the preindexer configuration from YAML
// files with environment-variable overrides. It provides typed structs for
// the indexer itself and for every optional publishing sink.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Adithya-Monish-Kumar-K/transcript-preindexer/pkg/errors"
)

// Config is the top-level application configuration.
type Config struct {
	Indexer  IndexerConfig  `yaml:"indexer"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Publish  PublishConfig  `yaml:"publish"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// IndexerConfig controls where transcripts are read from, where the index
// is written, and the excerpt and word-length limits.
type IndexerConfig struct {
	SourceDir      string `yaml:"sourceDir"`
	OutputFile     string `yaml:"outputFile"`
	MaxExcerpts    int    `yaml:"maxExcerpts"`
	ExcerptLength  int    `yaml:"excerptLength"`
	MinWordLength  int    `yaml:"minWordLength"`
	ProgressEvery  int    `yaml:"progressEvery"`
	ReservedPrefix string `yaml:"reservedPrefix"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile written after a run.
type MetricsConfig struct {
	Enabled      bool   `yaml:"enabled"`
	TextfilePath string `yaml:"textfilePath"`
}

// PublishConfig bounds how long publishing to sinks may take.
type PublishConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxAttempts  int           `yaml:"maxAttempts"`
	InitialDelay time.Duration `yaml:"initialDelay"`
}

// KafkaConfig holds the broker list and the topic that receives the
// index-complete event.
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// RedisConfig holds Redis connection parameters and the key the artifact
// is stored under.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PoolSize int           `yaml:"poolSize"`
	Key      string        `yaml:"key"`
	TTL      time.Duration `yaml:"ttl"`
}

// PostgresConfig holds PostgreSQL connection parameters for run history.
type PostgresConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with defaults for any missing
// values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the indexer cannot run with. Every error wraps
// ErrInvalidInput.
func (c *Config) Validate() error {
	if c.Indexer.SourceDir == "" {
		return fmt.Errorf("%w: indexer.sourceDir must be set", apperrors.ErrInvalidInput)
	}
	if c.Indexer.OutputFile == "" {
		return fmt.Errorf("%w: indexer.outputFile must be set", apperrors.ErrInvalidInput)
	}
	if c.Indexer.MaxExcerpts < 0 || c.Indexer.ExcerptLength < 0 {
		return fmt.Errorf("%w: excerpt limits must not be negative", apperrors.ErrInvalidInput)
	}
	if c.Publish.Timeout <= 0 {
		return fmt.Errorf("%w: publish.timeout must be positive", apperrors.ErrInvalidInput)
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("%w: kafka is enabled but brokers or topic are missing", apperrors.ErrInvalidInput)
	}
	if c.Redis.Enabled && c.Redis.Key == "" {
		return fmt.Errorf("%w: redis is enabled but redis.key is empty", apperrors.ErrInvalidInput)
	}
	if c.Metrics.Enabled && c.Metrics.TextfilePath == "" {
		return fmt.Errorf("%w: metrics is enabled but metrics.textfilePath is empty", apperrors.ErrInvalidInput)
	}
	return nil
}

// defaultConfig returns a Config matching the layout of the archive tool:
// transcripts under data/subtitles, index at data/transcript_index.json.
func defaultConfig() *Config {
	return &Config{
		Indexer: IndexerConfig{
			SourceDir:      "data/subtitles",
			OutputFile:     "data/transcript_index.json",
			MaxExcerpts:    5,
			ExcerptLength:  200,
			MinWordLength:  3,
			ProgressEvery:  50,
			ReservedPrefix: "._",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:      false,
			TextfilePath: "data/preindex.prom",
		},
		Publish: PublishConfig{
			Timeout:      30 * time.Second,
			MaxAttempts:  3,
			InitialDelay: 200 * time.Millisecond,
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "index.complete",
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 4,
			Key:      "transcripts:index",
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "transcripts",
			User:            "transcripts",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    2,
			MaxIdleConns:    1,
			ConnMaxLifetime: 5 * time.Minute,
		},
	}
}

// applyEnvOverrides reads SP_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SP_INDEXER_SOURCE_DIR"); v != "" {
		cfg.Indexer.SourceDir = v
	}
	if v := os.Getenv("SP_INDEXER_OUTPUT_FILE"); v != "" {
		cfg.Indexer.OutputFile = v
	}
	if v := os.Getenv("SP_INDEXER_MAX_EXCERPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Indexer.MaxExcerpts = n
		}
	}
	if v := os.Getenv("SP_INDEXER_EXCERPT_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Indexer.ExcerptLength = n
		}
	}
	if v := os.Getenv("SP_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SP_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SP_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.TextfilePath = v
	}
	if v := os.Getenv("SP_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Enabled = true
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("SP_REDIS_ADDR"); v != "" {
		cfg.Redis.Enabled = true
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("SP_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SP_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Enabled = true
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("SP_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("SP_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
}
