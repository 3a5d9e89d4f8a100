package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 200*time.Millisecond, cfg.Latency.Min)
	assert.Equal(t, 500*time.Millisecond, cfg.Latency.Max)
	assert.Equal(t, FixtureSourceEmbedded, cfg.Fixtures.Source)
	assert.False(t, cfg.Kafka.Enabled)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "social-events", cfg.Kafka.Topic)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  port: ":9090"
latency:
  min: 0s
  max: 10ms
redis:
  enabled: true
  host: "cache"
  port: 6380
kafka:
  enabled: true
  brokers:
    - "broker-1:9092"
    - "broker-2:9092"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, time.Duration(0), cfg.Latency.Min)
	assert.Equal(t, 10*time.Millisecond, cfg.Latency.Max)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr())
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	// untouched keys keep their defaults
	assert.Equal(t, "activity-worker-group", cfg.Kafka.GroupID)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SOCIAL_SERVER_PORT", ":7070")
	t.Setenv("SOCIAL_FIXTURES_SOURCE", FixtureSourceFile)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Port)
	assert.Equal(t, FixtureSourceFile, cfg.Fixtures.Source)
}

func TestLoadRejectsInvertedLatency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("latency:\n  min: 1s\n  max: 10ms\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", c.DSN())
}
