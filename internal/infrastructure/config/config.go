// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the full service configuration.
type Config struct {
	ServiceName string
	GRPCPort    int
	HTTPPort    int

	Database  DatabaseConfig
	Kafka     KafkaConfig
	Identity  IdentityConfig
	Report    ReportConfig
	Telemetry TelemetryConfig

	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// KafkaConfig holds the broker addresses and topic names.
type KafkaConfig struct {
	Brokers        []string
	ConsumerGroup  string
	AccountsTopic  string
	CustomersTopic string
}

// IdentityConfig points at the customer directory service.
type IdentityConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ReportConfig holds the reporting settings. TimeZone names the IANA zone
// whose calendar days bound statement date ranges.
type ReportConfig struct {
	TimeZone string
}

// TelemetryConfig holds the OTLP trace exporter settings.
type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	Insecure     bool
}

// Load reads configuration from environment variables with sensible
// defaults for local development.
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "cuenta-ledger"),
		GRPCPort:    getEnvInt("GRPC_PORT", 8084),
		HTTPPort:    getEnvInt("HTTP_PORT", 9084),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "ledger"),
			Password: getEnv("DB_PASSWORD", "ledger"),
			Database: getEnv("DB_NAME", "cuenta_ledger"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		Kafka: KafkaConfig{
			Brokers:        strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			ConsumerGroup:  getEnv("KAFKA_CONSUMER_GROUP", "cuenta-ledger"),
			AccountsTopic:  getEnv("KAFKA_ACCOUNTS_TOPIC", "cuenta-ledger.accounts"),
			CustomersTopic: getEnv("KAFKA_CUSTOMERS_TOPIC", "identity.customers"),
		},
		Identity: IdentityConfig{
			BaseURL: getEnv("IDENTITY_BASE_URL", ""),
			Timeout: time.Duration(getEnvInt("IDENTITY_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Report: ReportConfig{
			TimeZone: getEnv("REPORT_TIMEZONE", "America/Guayaquil"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getEnvBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:     getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.GRPCPort)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port: %d", c.HTTPPort)
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("at least one kafka broker is required")
	}
	if _, err := time.LoadLocation(c.Report.TimeZone); err != nil {
		return fmt.Errorf("invalid report timezone %q: %w", c.Report.TimeZone, err)
	}
	return nil
}

// ReportLocation resolves the configured reporting timezone.
func (c *Config) ReportLocation() *time.Location {
	loc, err := time.LoadLocation(c.Report.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
