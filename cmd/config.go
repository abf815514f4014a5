package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"courierops/internal/adapters/out/kafka"
	"courierops/internal/adapters/out/rabbitmq"
	"courierops/internal/core/domain/services"
	"courierops/internal/jobs"
)

// Event brokers selectable with EVENT_BROKER.
const (
	BrokerNone     = "none"
	BrokerRabbitMQ = "rabbitmq"
	BrokerKafka    = "kafka"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	SLAMonitorSchedule  string
	SLAWarningWindow    time.Duration
	SLAPauseOnHold      bool
	SLAMonitorLockTTL   time.Duration
	CODBacklogThreshold int

	EventBroker              string
	RabbitMQURL              string
	RabbitMQExchange         string
	KafkaHost                string
	KafkaShipmentEventsTopic string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// LoadConfig reads the configuration from the environment. Missing
// optional keys get defaults; malformed values are errors.
func LoadConfig() (Config, error) {
	cfg := Config{
		HTTPPort:                 envOr("HTTP_PORT", "8080"),
		DBHost:                   envOr("DB_HOST", "localhost"),
		DBPort:                   envOr("DB_PORT", "5432"),
		DBUser:                   os.Getenv("DB_USER"),
		DBPassword:               os.Getenv("DB_PASSWORD"),
		DBName:                   os.Getenv("DB_NAME"),
		DBSslMode:                envOr("DB_SSLMODE", "disable"),
		SLAMonitorSchedule:       envOr("SLA_MONITOR_SCHEDULE", jobs.DefaultSLAMonitorSchedule),
		EventBroker:              strings.ToLower(envOr("EVENT_BROKER", BrokerNone)),
		RabbitMQURL:              os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:         envOr("RABBITMQ_EXCHANGE", rabbitmq.DefaultExchange),
		KafkaHost:                os.Getenv("KAFKA_HOST"),
		KafkaShipmentEventsTopic: envOr("KAFKA_SHIPMENT_EVENTS_TOPIC", kafka.DefaultTopic),
		RedisAddr:                os.Getenv("REDIS_ADDR"),
		RedisPassword:            os.Getenv("REDIS_PASSWORD"),
	}

	var err error
	if cfg.SLAWarningWindow, err = durationEnv("SLA_WARNING_WINDOW", 4*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SLAMonitorLockTTL, err = durationEnv("SLA_MONITOR_LOCK_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.SLAPauseOnHold, err = boolEnv("SLA_PAUSE_ON_HOLD", false); err != nil {
		return Config{}, err
	}
	if cfg.CODBacklogThreshold, err = intEnv("COD_BACKLOG_THRESHOLD", services.DefaultCODBacklogThreshold); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Validate checks that the selected broker has what it needs.
func (c Config) Validate() error {
	switch c.EventBroker {
	case BrokerNone:
	case BrokerRabbitMQ:
		if c.RabbitMQURL == "" {
			return fmt.Errorf("RABBITMQ_URL is required when EVENT_BROKER=%s", BrokerRabbitMQ)
		}
	case BrokerKafka:
		if c.KafkaHost == "" {
			return fmt.Errorf("KAFKA_HOST is required when EVENT_BROKER=%s", BrokerKafka)
		}
	default:
		return fmt.Errorf("EVENT_BROKER must be one of %s, %s, %s, got %q",
			BrokerNone, BrokerRabbitMQ, BrokerKafka, c.EventBroker)
	}
	return nil
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
