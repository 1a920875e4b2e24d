package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	Port        string
	Environment string
	LogFile     string
	// RateLimit uses the limiter format, e.g. "600-M". Empty disables it.
	RateLimit string
	// Database Configuration
	DBDriver          string
	SQLitePath        string
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBAutoMigrate     bool
	// Kafka Configuration
	UseKafka            bool
	KafkaBrokers        []string
	KafkaTopicSuppliers string
	KafkaTopicProducts  string
	KafkaClientID       string
	KafkaAcks           string
	KafkaRetries        int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Parse Kafka brokers (comma-separated)
	kafkaBrokersStr := getEnv("KAFKA_BROKERS", "localhost:9093")
	kafkaBrokers := strings.Split(kafkaBrokersStr, ",")
	for i, broker := range kafkaBrokers {
		kafkaBrokers[i] = strings.TrimSpace(broker)
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogFile:     getEnv("LOG_FILE", "inventory.log"),
		RateLimit:   os.Getenv("RATE_LIMIT"),
		// Database Configuration
		DBDriver:          getEnv("DB_DRIVER", DriverSQLite),
		SQLitePath:        getEnv("SQLITE_PATH", "./inventory.db"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: time.Duration(getEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 60)) * time.Minute,
		DBAutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		// Kafka Configuration
		UseKafka:            getEnvAsBool("USE_KAFKA", false),
		KafkaBrokers:        kafkaBrokers,
		KafkaTopicSuppliers: getEnv("KAFKA_TOPIC_SUPPLIERS", "inventory.suppliers"),
		KafkaTopicProducts:  getEnv("KAFKA_TOPIC_PRODUCTS", "inventory.products"),
		KafkaClientID:       getEnv("KAFKA_CLIENT_ID", "inventory-service"),
		KafkaAcks:           getEnv("KAFKA_ACKS", "all"),
		KafkaRetries:        getEnvAsInt("KAFKA_RETRIES", 3),
	}
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for driver %s", DriverSQLite)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for driver %s", DriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (expected %s or %s)", c.DBDriver, DriverSQLite, DriverPostgres)
	}
	if c.UseKafka && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when USE_KAFKA is enabled")
	}
	return nil
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
