package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type ServerConfig struct {
	Port string
}

type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
}

type SecurityConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type KafkaConfig struct {
	Brokers []string
}

type BookingConfig struct {
	SlotStep time.Duration
}

type WebsocketConfig struct {
	SendBuffer int
}

type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Security  SecurityConfig
	Kafka     KafkaConfig
	Booking   BookingConfig
	Websocket WebsocketConfig
}

// Load reads configuration from the environment. Only the JWT secret is
// mandatory; everything else has a sensible default.
func Load() (*Config, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: envOr("PORT", "8080"),
		},
		Logging: LoggingConfig{
			Level:     envOr("LOG_LEVEL", "info"),
			Format:    envOr("LOG_FORMAT", "text"),
			Directory: envOr("LOG_DIR", "./logs"),
		},
		Security: SecurityConfig{
			JWTSecret: secret,
			TokenTTL:  envDuration("TOKEN_TTL", 24*time.Hour),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
		},
		Booking: BookingConfig{
			SlotStep: envDuration("BOOKING_SLOT_STEP", 30*time.Minute),
		},
		Websocket: WebsocketConfig{
			SendBuffer: envInt("WS_SEND_BUFFER", 32),
		},
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
