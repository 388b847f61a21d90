package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort   string
	ServerHost   string
	MaxBodyBytes int64
	CORSOrigins  []string
	LogLevel     string

	// Database configuration
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration. An empty URL disables the write rate limiter.
	RedisURL      string
	RedisPassword string

	// JWT configuration
	JWTSecret string

	// Image storage. An empty bucket keeps uploaded images inline.
	S3Bucket        string
	AWSRegion       string
	S3PublicBaseURL string

	// Requests per second allowed per client IP. Zero disables throttling.
	RateLimitRPS int
}

// LoadConfig creates a new Config from an optional .env file, environment
// variables and Docker secrets, then validates it.
func LoadConfig() (*Config, error) {
	if envFile := getEnv("ENV_FILE", ".env"); envFile != "" {
		// A missing .env file is normal outside local development.
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Environment:     GetEnvironment(),
		ServerPort:      getEnv("SERVER_PORT", "5000"),
		ServerHost:      getEnv("SERVER_HOST", ""),
		MaxBodyBytes:    int64(getEnvInt("MAX_BODY_BYTES", 50<<20)),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBPath:          getEnv("DB_PATH", filepath.Join("data", "recipes.db")),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", ""),
		DBPassword:      getSecret("DB_PASSWORD", "db_password"),
		DBName:          getEnv("DB_NAME", ""),
		DBSSLMode:       getEnv("DB_SSL_MODE", "disable"),
		RedisURL:        getEnv("REDIS_URL", ""),
		RedisPassword:   getSecret("REDIS_PASSWORD", "redis_password"),
		JWTSecret:       getSecret("JWT_SECRET", "jwt_secret"),
		S3Bucket:        getEnv("S3_BUCKET_NAME", ""),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),
		RateLimitRPS:    getEnvInt("RATE_LIMIT_RPS", 100),
	}

	// SECRET_KEY is the legacy name of the token secret.
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("SECRET_KEY")
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// PostgresDSN returns the connection string for the postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

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
	if err != nil {
		return defaultValue
	}
	return n
}

// getSecret prefers the environment variable and falls back to a Docker secret file
func getSecret(envKey, secretName string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
