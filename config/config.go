// Package config provides configuration management for the university directory.
// It handles loading and validation of configuration values from environment variables,
// with support for required variables, default values, and collective error reporting:
// every problem is gathered first and reported in one aggregated error, so a misconfigured
// deployment fails fast at startup with the full list instead of one variable at a time.
package config

import (
	"fmt"
	// `os` package provides operating system functionalities, like reading environment variables.
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// minJWTSecretLength rejects placeholder secrets such as "secret" or "changeme".
	minJWTSecretLength = 16
	// defaultTokenTTL matches JWT_EXPIRES_IN=86400s.
	defaultTokenTTL = 24 * time.Hour
)

// DatabasePools holds configuration for the two database connection pools.
// The app pool serves HTTP requests; the import pool is used by migrations and dataset imports
// so that a long import never starves request handling.
type DatabasePools struct {
	AppPool    *PoolConfig
	ImportPool *PoolConfig
}

// PoolConfig represents configuration for a single database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret     string        // Secret key for signing JWTs, required
	TokenDuration time.Duration // Lifetime of issued bearer tokens
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	// VerboseErrors exposes raw underlying error messages in 500 responses.
	// Only enable behind a trusted/internal deployment.
	VerboseErrors bool
}

// PaginationConfig holds list endpoint defaults.
type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string // "text" (coloured, tint) or "json"
	Fluent FluentConfig
}

// FluentConfig configures the optional Fluent Bit sink.
type FluentConfig struct {
	Enabled bool
	Host    string
	Port    int
	Level   string
}

// CacheConfig configures the optional Redis search cache.
type CacheConfig struct {
	RedisURL string // empty disables the cache
	TTL      time.Duration
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	AppName        string
	DBPools        *DatabasePools
	Auth           *AuthConfig
	Server         *ServerConfig
	Pagination     *PaginationConfig
	Log            *LogConfig
	Cache          *CacheConfig
	MigrationsPath string
}

// Helper function to get a required environment variable.
// Appends an error to the errors slice if the variable is not set or blank.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return "" // Return empty string, error is collected
	}
	return value
}

// Helper function to get an optional environment variable with a default string value.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// Helper function to get an optional environment variable parsed as an int.
// Uses defaultValue if not set. Appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// Helper function to get an optional environment variable parsed as a bool.
func getOptionalEnvBool(key string, defaultValue bool, errors *[]string) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected boolean, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueBool
}

// Helper function to get an optional environment variable parsed as time.Duration.
// `time.ParseDuration` expects a string like "15m" or "86400s". A bare integer is read as seconds
// and an integer with a "d" suffix ("7d") as days, so JWT_EXPIRES_IN values like "86400" or "1d" keep working.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if days, ok := strings.CutSuffix(valueStr, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return time.Duration(n) * 24 * time.Hour
		}
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize keeps pool sizes within reasonable bounds.
func clampPoolSize(size int, varName string, errors *[]string) int {
	if size < 1 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) must be at least 1", varName, size))
		return 1
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100", varName, size))
		return 100
	}
	return size
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Database Configuration
	dbUser := getRequiredEnv("DB_USER", &errors)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errors)
	dbName := getRequiredEnv("DB_NAME", &errors)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errors)
	dbSSLMode := getOptionalEnv("DB_SSLMODE", "disable")
	appPoolSize := clampPoolSize(getOptionalEnvInt("DB_APP_POOL_SIZE", 10, &errors), "DB_APP_POOL_SIZE", &errors)
	importPoolSize := clampPoolSize(getOptionalEnvInt("DB_IMPORT_POOL_SIZE", 5, &errors), "DB_IMPORT_POOL_SIZE", &errors)

	newPool := func(size int) *PoolConfig {
		return &PoolConfig{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			SSLMode:  dbSSLMode,
			MaxSize:  size,
		}
	}

	// Auth Configuration. The secret has no fallback.
	jwtSecret := getRequiredEnv("JWT_SECRET", &errors)
	if jwtSecret != "" && len(jwtSecret) < minJWTSecretLength {
		errors = append(errors, fmt.Sprintf("JWT_SECRET must be at least %d characters long", minJWTSecretLength))
	}
	tokenDuration := getOptionalEnvDuration("JWT_EXPIRES_IN", defaultTokenTTL, &errors)
	if tokenDuration <= 0 {
		errors = append(errors, "JWT_EXPIRES_IN must be positive")
	}

	// Server Configuration
	serverConfig := &ServerConfig{
		Port:           getOptionalEnv("PORT", "8080"),
		AllowedOrigins: splitList(getOptionalEnv("CORS_ALLOWED_ORIGINS", "*")),
		VerboseErrors:  getOptionalEnvBool("VERBOSE_ERRORS", false, &errors),
	}

	// Pagination Configuration
	pagination := &PaginationConfig{
		DefaultPageSize: getOptionalEnvInt("DEFAULT_PAGE_SIZE", 10, &errors),
		MaxPageSize:     getOptionalEnvInt("MAX_PAGE_SIZE", 100, &errors),
	}
	if pagination.DefaultPageSize < 1 {
		errors = append(errors, "DEFAULT_PAGE_SIZE must be at least 1")
	}
	if pagination.MaxPageSize < pagination.DefaultPageSize {
		errors = append(errors, fmt.Sprintf("MAX_PAGE_SIZE (%d) must not be lower than DEFAULT_PAGE_SIZE (%d)", pagination.MaxPageSize, pagination.DefaultPageSize))
	}

	// Logging Configuration
	logConfig := &LogConfig{
		Level:  getOptionalEnv("LOG_LEVEL", "info"),
		Format: strings.ToLower(getOptionalEnv("LOG_FORMAT", "text")),
		Fluent: FluentConfig{
			Enabled: getOptionalEnvBool("FLUENTBIT_ENABLED", false, &errors),
			Host:    getOptionalEnv("FLUENTBIT_HOST", ""),
			Port:    getOptionalEnvInt("FLUENTBIT_PORT", 24224, &errors),
			Level:   getOptionalEnv("FLUENTBIT_LOG_LEVEL", "info"),
		},
	}
	if logConfig.Format != "text" && logConfig.Format != "json" {
		errors = append(errors, fmt.Sprintf("invalid value for LOG_FORMAT: expected text or json, got '%s'", logConfig.Format))
	}
	if logConfig.Fluent.Enabled && logConfig.Fluent.Host == "" {
		errors = append(errors, "FLUENTBIT_HOST is required when FLUENTBIT_ENABLED is true")
	}

	// Cache Configuration
	cacheConfig := &CacheConfig{
		RedisURL: getOptionalEnv("REDIS_URL", ""),
		TTL:      getOptionalEnvDuration("SEARCH_CACHE_TTL", 5*time.Minute, &errors),
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		AppName: getOptionalEnv("APP_NAME", "unidirectory"),
		DBPools: &DatabasePools{
			AppPool:    newPool(appPoolSize),
			ImportPool: newPool(importPoolSize),
		},
		Auth: &AuthConfig{
			JWTSecret:     jwtSecret,
			TokenDuration: tokenDuration,
		},
		Server:         serverConfig,
		Pagination:     pagination,
		Log:            logConfig,
		Cache:          cacheConfig,
		MigrationsPath: getOptionalEnv("MIGRATIONS_PATH", "./migrations"),
	}, nil
}
