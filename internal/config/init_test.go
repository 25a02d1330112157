package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", s.AppPort)
	assert.Equal(t, DriverMemory, s.DBDriver)
	assert.Equal(t, 30*time.Second, s.FeedCacheTTL)
	assert.Equal(t, 100, s.FanoutBatchSize)
	assert.Equal(t, time.Second, s.FanoutInterval)
	assert.Equal(t, []string{"*"}, s.CORSOrigins)
	assert.Empty(t, s.KafkaBrokers)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "host=localhost user=app dbname=social")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("FANOUT_INTERVAL", "250ms")
	t.Setenv("FANOUT_BATCH_SIZE", "-3")
	t.Setenv("FEED_CACHE_TTL", "nonsense")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, s.DBDriver)
	assert.Equal(t, "9000", s.AppPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, s.KafkaBrokers)
	assert.Equal(t, 250*time.Millisecond, s.FanoutInterval)
	assert.Equal(t, 100, s.FanoutBatchSize)
	assert.Equal(t, 30*time.Second, s.FeedCacheTTL)
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_DSN", "")
	_, err := Load()
	assert.EqualError(t, err, "DB_DSN is not set")

	t.Setenv("DB_DRIVER", "sqlite")
	_, err = Load()
	assert.EqualError(t, err, "unsupported DB_DRIVER: sqlite")
}

func TestNewKafkaWriterDisabledWithoutBrokers(t *testing.T) {
	logger, err := NewLogger("production")
	require.NoError(t, err)
	assert.Nil(t, NewKafkaWriter(&Settings{}, logger))

	w := NewKafkaWriter(&Settings{KafkaBrokers: []string{"k1:9092"}, KafkaTopic: "posts"}, logger)
	require.NotNil(t, w)
	assert.Equal(t, "posts", w.Topic)
}
