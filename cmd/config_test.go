package cmd

import (
	"testing"
	"time"

	"courierops/internal/core/domain/services"
	"courierops/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{
			"HTTP_PORT", "SLA_MONITOR_SCHEDULE", "SLA_WARNING_WINDOW", "SLA_PAUSE_ON_HOLD",
			"COD_BACKLOG_THRESHOLD", "EVENT_BROKER", "REDIS_ADDR", "REDIS_DB",
		} {
			t.Setenv(key, "")
		}

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, jobs.DefaultSLAMonitorSchedule, cfg.SLAMonitorSchedule)
		assert.Equal(t, 4*time.Hour, cfg.SLAWarningWindow)
		assert.False(t, cfg.SLAPauseOnHold)
		assert.Equal(t, services.DefaultCODBacklogThreshold, cfg.CODBacklogThreshold)
		assert.Equal(t, BrokerNone, cfg.EventBroker)
		assert.Empty(t, cfg.RedisAddr)
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("SLA_WARNING_WINDOW", "90m")
		t.Setenv("SLA_PAUSE_ON_HOLD", "true")
		t.Setenv("COD_BACKLOG_THRESHOLD", "3")
		t.Setenv("EVENT_BROKER", "Kafka")
		t.Setenv("KAFKA_HOST", "broker-1:9092,broker-2:9092")
		t.Setenv("REDIS_DB", "2")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, cfg.SLAWarningWindow)
		assert.True(t, cfg.SLAPauseOnHold)
		assert.Equal(t, 3, cfg.CODBacklogThreshold)
		assert.Equal(t, BrokerKafka, cfg.EventBroker)
		assert.Equal(t, 2, cfg.RedisDB)
	})

	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("SLA_WARNING_WINDOW", "soon")

		_, err := LoadConfig()

		require.ErrorContains(t, err, "SLA_WARNING_WINDOW")
	})

	t.Run("broker without address", func(t *testing.T) {
		t.Setenv("EVENT_BROKER", "rabbitmq")
		t.Setenv("RABBITMQ_URL", "")

		_, err := LoadConfig()

		require.ErrorContains(t, err, "RABBITMQ_URL")
	})

	t.Run("unknown broker", func(t *testing.T) {
		t.Setenv("EVENT_BROKER", "carrier-pigeon")

		_, err := LoadConfig()

		require.ErrorContains(t, err, "EVENT_BROKER")
	})
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "ops", DBPassword: "secret", DBName: "courierops", DBSslMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=ops password=secret dbname=courierops sslmode=disable", cfg.DSN())
}
