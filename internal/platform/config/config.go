package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config captures process-level configuration.
type Config struct {
	// PoolsFile is the YAML file listing the ledger pools.
	PoolsFile    string
	LogLevel     string
	QueryTimeout time.Duration
	CacheTTL     time.Duration
	Redis        RedisConfig
	Database     DatabaseConfig
	Kafka        KafkaConfig
}

// RedisConfig configures the resolution cache client. An empty URL disables
// Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig configures the PostgreSQL connection. An empty URL disables
// it.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// KafkaConfig configures the audit publisher. No brokers disables it.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

const (
	defaultPoolsFile    = "pools.yaml"
	defaultQueryTimeout = 10 * time.Second
	defaultCacheTTL     = 5 * time.Minute
	defaultAuditTopic   = "didpool.taa-acceptances"
)

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg := Config{
		PoolsFile:    envOr("DIDPOOL_CONFIG", defaultPoolsFile),
		LogLevel:     envOr("DIDPOOL_LOG_LEVEL", "info"),
		QueryTimeout: defaultQueryTimeout,
		CacheTTL:     defaultCacheTTL,
		Redis: RedisConfig{
			URL:          os.Getenv("DIDPOOL_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DIDPOOL_DATABASE_URL"),
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:    splitList(os.Getenv("DIDPOOL_KAFKA_BROKERS")),
			AuditTopic: envOr("DIDPOOL_AUDIT_TOPIC", defaultAuditTopic),
		},
	}

	var err error
	if cfg.QueryTimeout, err = envDuration("DIDPOOL_QUERY_TIMEOUT", cfg.QueryTimeout); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = envDuration("DIDPOOL_CACHE_TTL", cfg.CacheTTL); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
