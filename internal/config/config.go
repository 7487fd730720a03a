package config

import (
	"fmt"
	"strings"
	"time"

	"channel-metrics-service/internal/metrics/core/domain"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceEnvironment string `mapstructure:"SERVICE_ENVIRONMENT" validate:"required,oneof=development production test"`
	HTTPAddr           string `mapstructure:"HTTP_ADDR" validate:"required"`
	HTTPBodyLimit      int    `mapstructure:"HTTP_BODY_LIMIT" validate:"gt=0"`

	PostgresDSN             string        `mapstructure:"POSTGRES_DSN" validate:"required"`
	PostgresMaxOpenConns    int           `mapstructure:"POSTGRES_MAX_OPEN_CONNS" validate:"gte=1"`
	PostgresMaxIdleConns    int           `mapstructure:"POSTGRES_MAX_IDLE_CONNS" validate:"gte=0"`
	PostgresConnMaxLifetime time.Duration `mapstructure:"POSTGRES_CONN_MAX_LIFETIME"`

	// Empty disables the scheduler lock; ticks then run on every replica.
	RedisAddr string `mapstructure:"REDIS_ADDR"`

	// Empty endpoint selects the log emitter.
	MetricsEndpoint   string        `mapstructure:"METRICS_ENDPOINT" validate:"omitempty,url"`
	MetricsAuthToken  string        `mapstructure:"METRICS_AUTH_TOKEN" validate:"required_with=MetricsEndpoint"`
	MetricsTimeout    time.Duration `mapstructure:"METRICS_TIMEOUT" validate:"gt=0"`
	MetricsMaxRetries uint64        `mapstructure:"METRICS_MAX_RETRIES"`
	MetricsRetryDelay time.Duration `mapstructure:"METRICS_RETRY_INTERVAL"`
	MetricsNullAsZero bool          `mapstructure:"METRICS_NULL_AS_ZERO"`
	// Entries are key:country:metric; an empty country tracks the global sum.
	MetricsBuckets []string `mapstructure:"METRICS_BUCKETS"`

	WorkerPoolSize int `mapstructure:"WORKER_POOL_SIZE" validate:"gte=1"`

	// Zero disables the periodic tick.
	SchedulerInterval time.Duration `mapstructure:"SCHEDULER_INTERVAL" validate:"gte=0"`

	S3Bucket string `mapstructure:"S3_BUCKET"`
	S3Region string `mapstructure:"S3_REGION" validate:"required_with=S3Bucket"`
	S3Prefix string `mapstructure:"S3_PREFIX"`
}

var defaults = map[string]any{
	"SERVICE_ENVIRONMENT":        "development",
	"HTTP_ADDR":                  ":8080",
	"HTTP_BODY_LIMIT":            32 * 1024 * 1024,
	"POSTGRES_MAX_OPEN_CONNS":    20,
	"POSTGRES_MAX_IDLE_CONNS":    10,
	"POSTGRES_CONN_MAX_LIFETIME": 30 * time.Minute,
	"METRICS_TIMEOUT":            10 * time.Second,
	"METRICS_MAX_RETRIES":        3,
	"METRICS_RETRY_INTERVAL":     time.Second,
	"METRICS_NULL_AS_ZERO":       false,
	"METRICS_BUCKETS":            []string{},
	"WORKER_POOL_SIZE":           4,
	"SCHEDULER_INTERVAL":         time.Duration(0),
	"REDIS_ADDR":                 "",
	"METRICS_ENDPOINT":           "",
	"METRICS_AUTH_TOKEN":         "",
	"POSTGRES_DSN":               "",
	"S3_BUCKET":                  "",
	"S3_REGION":                  "",
	"S3_PREFIX":                  "",
}

// Load reads the environment and, when CONFIG_FILE is set, a config file
// underneath it. Environment variables take precedence.
func Load() (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	cfg.MetricsBuckets = splitList(cfg.MetricsBuckets)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// splitList accepts both a proper list and a single comma separated string.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// Buckets parses MetricsBuckets. No entries means the built-in defaults.
func (c *Config) Buckets() ([]domain.Bucket, error) {
	if len(c.MetricsBuckets) == 0 {
		return domain.DefaultBuckets(), nil
	}

	buckets := make([]domain.Bucket, 0, len(c.MetricsBuckets))
	for _, entry := range c.MetricsBuckets {
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid bucket %q: want key:country:metric", entry)
		}
		buckets = append(buckets, domain.Bucket{
			Key:         parts[0],
			CountryCode: strings.ToLower(parts[1]),
			Metric:      parts[2],
		})
	}
	return buckets, nil
}
