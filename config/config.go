package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	App      AppConfig
	AMQP     AMQPConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path is the database file used by the sqlite driver
	Path string
}

// AppConfig holds application configuration
type AppConfig struct {
	Environment         string
	Port                string
	Debug               bool
	SiteName            string
	LogLevel            string
	CataloguePageSize   int
	RecommendedLimit    int
	SessionTTL          time.Duration
	SessionCookieSecure bool
}

// AMQPConfig holds the broker settings used to announce new individual orders.
// An empty URL disables publishing.
type AMQPConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}

	config := &Config{
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "flowershop"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "./flowershop.db"),
		},
		App: AppConfig{
			Environment:         getEnv("APP_ENV", "development"),
			Port:                getEnv("APP_PORT", "8080"),
			SiteName:            getEnv("SITE_NAME", "Flower Shop"),
			LogLevel:            getEnv("LOG_LEVEL", "info"),
			SessionCookieSecure: false,
		},
		AMQP: AMQPConfig{
			URL:        getEnv("AMQP_URL", ""),
			Exchange:   getEnv("AMQP_EXCHANGE", "flowershop"),
			RoutingKey: getEnv("AMQP_ROUTING_KEY", "individual_order.created"),
		},
	}

	var err error
	if config.App.Debug, err = getEnvBool("APP_DEBUG", false); err != nil {
		return nil, err
	}
	if config.App.SessionCookieSecure, err = getEnvBool("SESSION_COOKIE_SECURE", false); err != nil {
		return nil, err
	}
	if config.App.CataloguePageSize, err = getEnvInt("CATALOGUE_PAGE_SIZE", 12); err != nil {
		return nil, err
	}
	if config.App.RecommendedLimit, err = getEnvInt("RECOMMENDED_LIMIT", 8); err != nil {
		return nil, err
	}
	if config.App.SessionTTL, err = getEnvDuration("SESSION_TTL", 14*24*time.Hour); err != nil {
		return nil, err
	}

	if config.Database.Driver != "postgres" && config.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", config.Database.Driver)
	}

	return config, nil
}

// Default returns the configuration used when no environment is present
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "sqlite", Path: "file::memory:?cache=shared"},
		App: AppConfig{
			Environment:       "development",
			Port:              "8080",
			SiteName:          "Flower Shop",
			LogLevel:          "info",
			CataloguePageSize: 12,
			RecommendedLimit:  8,
			SessionTTL:        14 * 24 * time.Hour,
		},
		AMQP: AMQPConfig{
			Exchange:   "flowershop",
			RoutingKey: "individual_order.created",
		},
	}
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, value)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration, got %q", key, value)
	}
	return d, nil
}
