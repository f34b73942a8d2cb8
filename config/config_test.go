package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable LoadConfig reads so each test starts from a
// clean environment regardless of the shell running the suite.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"STORE_BACKEND", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_POOL_SIZE", "MIGRATIONS_PATH", "JWT_SECRET",
		"JWT_ACCESS_TOKEN_DURATION", "ADMIN_EMAIL", "ADMIN_PASSWORD",
		"PORT", "MOVIES_PROTECTED_OPS",
	}
	for _, k := range keys {
		// t.Setenv registers the restore; the unset makes LookupEnv miss.
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadConfig_MemoryBackendDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Nil(t, cfg.Store.Pool)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"list"}, cfg.Server.ProtectedOps)
	assert.Equal(t, "admin@gmail.com", cfg.Auth.AdminEmail)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenDuration)
}

func TestLoadConfig_MissingJWTSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "memory")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_PostgresRequiresDBVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	// postgres is the default backend.
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "DB_NAME")
}

func TestLoadConfig_PostgresBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_USER", "filmoteca")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "filmoteca")
	t.Setenv("DB_POOL_SIZE", "20")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	require.NotNil(t, cfg.Store.Pool)
	assert.Equal(t, "localhost", cfg.Store.Pool.Host)
	assert.Equal(t, 5432, cfg.Store.Pool.Port)
	assert.Equal(t, 20, cfg.Store.Pool.MaxSize)
	assert.Equal(t, "./migrations", cfg.Store.MigrationsPath)
}

func TestLoadConfig_PoolSizeClamping(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_USER", "filmoteca")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "filmoteca")
	t.Setenv("DB_POOL_SIZE", "2")

	// Clamping counts as a configuration error so the operator sees it.
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_POOL_SIZE")
}

func TestLoadConfig_InvalidBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_BACKEND", "cassandra")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")
}

func TestLoadConfig_ProtectedOpsParsing(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MOVIES_PROTECTED_OPS", "List, create , DELETE")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"list", "create", "delete"}, cfg.Server.ProtectedOps)
}
