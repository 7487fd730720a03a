package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"channel-metrics-service/internal/metrics/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/metrics")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.ServiceEnvironment)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 20, cfg.PostgresMaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.PostgresConnMaxLifetime)
	assert.Equal(t, 10*time.Second, cfg.MetricsTimeout)
	assert.Equal(t, uint64(3), cfg.MetricsMaxRetries)
	assert.Equal(t, 4, cfg.WorkerPoolSize)
	assert.Zero(t, cfg.SchedulerInterval)
	assert.Empty(t, cfg.RedisAddr)

	buckets, err := cfg.Buckets()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBuckets(), buckets)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/metrics")
	t.Setenv("SERVICE_ENVIRONMENT", "production")
	t.Setenv("METRICS_ENDPOINT", "https://metrics.example.com/api/metrics")
	t.Setenv("METRICS_AUTH_TOKEN", "secret")
	t.Setenv("METRICS_TIMEOUT", "2s")
	t.Setenv("METRICS_NULL_AS_ZERO", "true")
	t.Setenv("METRICS_BUCKETS", "ke:KE:supporter, all::supporter")
	t.Setenv("SCHEDULER_INTERVAL", "5m")
	t.Setenv("WORKER_POOL_SIZE", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.ServiceEnvironment)
	assert.Equal(t, 2*time.Second, cfg.MetricsTimeout)
	assert.True(t, cfg.MetricsNullAsZero)
	assert.Equal(t, 5*time.Minute, cfg.SchedulerInterval)
	assert.Equal(t, 8, cfg.WorkerPoolSize)

	buckets, err := cfg.Buckets()
	require.NoError(t, err)
	assert.Equal(t, []domain.Bucket{
		{Key: "ke", CountryCode: "ke", Metric: "supporter"},
		{Key: "all", CountryCode: "", Metric: "supporter"},
	}, buckets)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "POSTGRES_DSN: postgres://file/metrics\nHTTP_ADDR: \":9090\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDR", ":7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://file/metrics", cfg.PostgresDSN)
	assert.Equal(t, ":7070", cfg.HTTPAddr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing dsn",
			env:  map[string]string{"POSTGRES_DSN": ""},
		},
		{
			name: "unknown environment",
			env:  map[string]string{"POSTGRES_DSN": "postgres://x", "SERVICE_ENVIRONMENT": "staging"},
		},
		{
			name: "endpoint without token",
			env:  map[string]string{"POSTGRES_DSN": "postgres://x", "METRICS_ENDPOINT": "https://m.example.com"},
		},
		{
			name: "bucket without region",
			env:  map[string]string{"POSTGRES_DSN": "postgres://x", "S3_BUCKET": "exports"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestBuckets_Malformed(t *testing.T) {
	cfg := &Config{MetricsBuckets: []string{"za:supporter"}}

	_, err := cfg.Buckets()
	assert.Error(t, err)
}
