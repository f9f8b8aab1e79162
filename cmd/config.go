package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Change notifier transports.
const (
	NotifierMemory   = "memory"
	NotifierPostgres = "postgres"
	NotifierRedis    = "redis"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	MigrateOnStart  bool
	ShutdownTimeout time.Duration

	JWTSecret string

	KafkaBrokers          []string
	KafkaOrderEventsTopic string

	Notifier  string
	RedisAddr string

	TrackingSchedule  string
	HubMaxSubscribers int
	HubBufferSize     int
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBUser:                getEnv("DB_USER", "postgres"),
		DBPassword:            getEnv("DB_PASSWORD", ""),
		DBName:                getEnv("DB_NAME", "marketplace"),
		DBSslMode:             getEnv("DB_SSLMODE", "disable"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		KafkaBrokers:          splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaOrderEventsTopic: getEnv("KAFKA_ORDER_EVENTS_TOPIC", "marketplace.orders"),
		Notifier:              getEnv("CHANGE_NOTIFIER", NotifierMemory),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		TrackingSchedule:      getEnv("TRACKING_SCHEDULE", "@every 3s"),
	}

	var err error
	if cfg.MigrateOnStart, err = strconv.ParseBool(getEnv("MIGRATE_ON_START", "false")); err != nil {
		return Config{}, fmt.Errorf("MIGRATE_ON_START: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	if cfg.HubMaxSubscribers, err = strconv.Atoi(getEnv("HUB_MAX_SUBSCRIBERS", "1024")); err != nil {
		return Config{}, fmt.Errorf("HUB_MAX_SUBSCRIBERS: %w", err)
	}
	if cfg.HubBufferSize, err = strconv.Atoi(getEnv("HUB_BUFFER_SIZE", "8")); err != nil {
		return Config{}, fmt.Errorf("HUB_BUFFER_SIZE: %w", err)
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.Notifier {
	case NotifierMemory, NotifierPostgres, NotifierRedis:
	default:
		return fmt.Errorf("CHANGE_NOTIFIER must be one of %s, %s, %s; got %q",
			NotifierMemory, NotifierPostgres, NotifierRedis, c.Notifier)
	}
	return nil
}

// DatabaseURL is the postgres:// form used by GORM, LISTEN and migrations.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSslMode),
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
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
