package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv   string
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	Gateway   GatewayConfig
	Widget    WidgetConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Alter    bool
}

// GatewayConfig holds connection settings for the external product catalog
// API. It is handed to the catalog client constructor at startup and never
// mutated afterwards.
type GatewayConfig struct {
	BaseURL     string
	AccessToken string
	BatchSize   int // platform limit on ids per catalog request
	StoreURL    string
}

// WidgetConfig holds default storefront widget display settings, used when
// a scope has no stored settings of its own.
type WidgetConfig struct {
	Title       string
	ButtonLabel string
	AccentColor string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		NodeEnv:   getEnv("NODE_ENV", "development"),
		Port:      getEnv("PORT", "3400"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "ymmfit"),
			Alter:    getEnv("DB_ALTER", "false") == "true",
		},
		Gateway: GatewayConfig{
			BaseURL:     os.Getenv("CATALOG_API_URL"),
			AccessToken: os.Getenv("CATALOG_API_TOKEN"),
			BatchSize:   getEnvInt("CATALOG_BATCH_SIZE", 50),
			StoreURL:    os.Getenv("STOREFRONT_URL"),
		},
		Widget: WidgetConfig{
			Title:       getEnv("WIDGET_TITLE", "Select Your Vehicle"),
			ButtonLabel: getEnv("WIDGET_BUTTON_LABEL", "Find Parts"),
			AccentColor: getEnv("WIDGET_ACCENT_COLOR", "#1a56db"),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
