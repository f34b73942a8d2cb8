// Package config loads and validates the application configuration from
// environment variables. Loading collects every problem it finds and reports
// them together, so a misconfigured deployment fails fast with one complete
// message instead of dying on the first missing variable.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backend names accepted in STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// PoolConfig holds the settings for the PostgreSQL connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// StoreConfig selects the movie store backend and its persistence settings.
// The Pool and MigrationsPath fields are only meaningful for the postgres
// backend; the memory backend needs neither.
type StoreConfig struct {
	Backend        string
	Pool           *PoolConfig
	MigrationsPath string
}

// AuthConfig holds token signing settings and the single admin identity the
// authorization gate accepts. The identity is configuration, not a literal in
// the gate, so it can be swapped per deployment.
type AuthConfig struct {
	JWTSecret           string
	AccessTokenDuration time.Duration
	AdminEmail          string
	AdminPassword       string
}

// ServerConfig holds HTTP server settings. ProtectedOps lists the movie
// operations (list, get, get_by_category, create, update, delete) that require
// an admin bearer token.
type ServerConfig struct {
	Port         string
	ProtectedOps []string
}

// AppConfig is the top-level configuration for the application.
type AppConfig struct {
	Store  *StoreConfig
	Auth   *AuthConfig
	Server *ServerConfig
}

// getRequiredEnv reads a mandatory variable, collecting an error when absent.
func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads a variable, falling back to defaultValue when absent.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads an integer variable, collecting an error and keeping
// the default when the value does not parse.
func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration reads a time.Duration variable ("15m", "24h"),
// collecting an error and keeping the default when the value does not parse.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize keeps the pool size within [5, 100], collecting a notice when
// the configured value had to be adjusted.
func clampPoolSize(size int, varName string, errs *[]string) int {
	if size < 5 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is less than minimum 5, clamping to 5", varName, size))
		return 5
	}
	if size > 100 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// LoadConfig builds an AppConfig from the environment. It returns a single
// aggregated error listing every missing or malformed variable.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	// Store configuration. Database variables are only required when the
	// postgres backend is selected; the memory backend runs without them.
	backend := strings.ToLower(getOptionalEnv("STORE_BACKEND", BackendPostgres))
	storeConfig := &StoreConfig{Backend: backend}
	switch backend {
	case BackendMemory:
		// nothing further to load
	case BackendPostgres:
		pool := &PoolConfig{
			Host:     getOptionalEnv("DB_HOST", "localhost"),
			Port:     getOptionalEnvInt("DB_PORT", 5432, &errs),
			User:     getRequiredEnv("DB_USER", &errs),
			Password: getRequiredEnv("DB_PASSWORD", &errs),
			DBName:   getRequiredEnv("DB_NAME", &errs),
		}
		pool.MaxSize = clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errs), "DB_POOL_SIZE", &errs)
		storeConfig.Pool = pool
		storeConfig.MigrationsPath = getOptionalEnv("MIGRATIONS_PATH", "./migrations")
	default:
		errs = append(errs, fmt.Sprintf("invalid value for STORE_BACKEND: expected %q or %q, got '%s'", BackendMemory, BackendPostgres, backend))
	}

	// Auth configuration.
	authConfig := &AuthConfig{
		JWTSecret:           getRequiredEnv("JWT_SECRET", &errs),
		AccessTokenDuration: getOptionalEnvDuration("JWT_ACCESS_TOKEN_DURATION", 24*time.Hour, &errs),
		AdminEmail:          getOptionalEnv("ADMIN_EMAIL", "admin@gmail.com"),
		AdminPassword:       getOptionalEnv("ADMIN_PASSWORD", "admin"),
	}

	// Server configuration. MOVIES_PROTECTED_OPS is a comma-separated list of
	// movie operations the bearer gate covers; by default only the full listing
	// is protected.
	protectedOps := strings.Split(getOptionalEnv("MOVIES_PROTECTED_OPS", "list"), ",")
	for i, op := range protectedOps {
		protectedOps[i] = strings.TrimSpace(strings.ToLower(op))
	}
	serverConfig := &ServerConfig{
		Port:         getOptionalEnv("PORT", "8080"),
		ProtectedOps: protectedOps,
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		Store:  storeConfig,
		Auth:   authConfig,
		Server: serverConfig,
	}, nil
}
