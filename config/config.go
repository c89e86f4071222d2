// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Order source names accepted by ORDER_SOURCE
const (
	OrderSourceAPI      = "api"
	OrderSourcePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Database DatabaseConfig
	Images   ImageConfig
	Docs     DocumentConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    string
	BaseURL string // public URL of this service, used by the PDF printer to reach render pages
	Env     string
}

// BackendConfig describes the REST API that owns orders.
type BackendConfig struct {
	URL         string
	Token       string
	Timeout     time.Duration
	OrderSource string // "api" or "postgres"
}

// DatabaseConfig holds PostgreSQL connection settings for the postgres order source.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ImageConfig holds image materialization settings.
type ImageConfig struct {
	PublicDir      string
	FetchTimeout   time.Duration
	PlaceholderURL string
}

// DocumentConfig holds printable document settings.
type DocumentConfig struct {
	ShopProfilePath string
	VerifyBaseURL   string
	Timezone        string
	ChromePath      string
}

// ConnString returns DATABASE_URL or a key=value DSN built from the DB_* variables.
func (d DatabaseConfig) ConnString() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	if d.Host == "" || d.User == "" || d.DBName == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode), nil
}

// Location resolves the configured timezone, falling back to the process local zone.
func (d DocumentConfig) Location() *time.Location {
	if d.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		log.Printf("⚠️  Unknown TIMEZONE %q, using local time: %v", d.Timezone, err)
		return time.Local
	}
	return loc
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	port := strings.TrimPrefix(getEnv("PORT", "8080"), ":")

	return &Config{
		Server: ServerConfig{
			Port:    port,
			BaseURL: strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:"+port), "/"),
			Env:     getEnv("ENV", "development"),
		},
		Backend: BackendConfig{
			URL:         strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:5000"), "/"),
			Token:       os.Getenv("BACKEND_TOKEN"),
			Timeout:     getEnvDuration("BACKEND_TIMEOUT", 10*time.Second),
			OrderSource: strings.ToLower(getEnv("ORDER_SOURCE", OrderSourceAPI)),
		},
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Images: ImageConfig{
			PublicDir:      getEnv("PUBLIC_DIR", "public"),
			FetchTimeout:   getEnvDuration("IMAGE_FETCH_TIMEOUT", 5*time.Second),
			PlaceholderURL: getEnv("PLACEHOLDER_URL", "/images/placeholder.png"),
		},
		Docs: DocumentConfig{
			ShopProfilePath: getEnv("SHOP_PROFILE", "config/shop.json"),
			VerifyBaseURL:   getEnv("VERIFY_BASE_URL", "http://localhost:"+port+"/verify"),
			Timezone:        getEnv("TIMEZONE", "Africa/Tunis"),
			ChromePath:      os.Getenv("CHROME_PATH"),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("5s") or a plain number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	log.Printf("⚠️  Invalid duration for %s=%q, using %s", key, value, defaultValue)
	return defaultValue
}
