package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/speakflash/internal/config"
)

func validConfig(t *testing.T) config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[item]]\n"), 0o600))
	return config.Config{
		Addr:             ":8080",
		DBPath:           "test.db",
		CatalogPath:      path,
		LogLevel:         "INFO",
		FlushWorkerCount: 1,
		FlushQueueSize:   16,
		SessionSize:      15,
		MaxDuePerSession: 10,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig(t).Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig(t)
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig(t)
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_MissingCatalog(t *testing.T) {
	cfg := validConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "nope.toml")

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_PATH")
}

func TestValidate_InvalidWorkerCounts(t *testing.T) {
	tests := []struct {
		name          string
		workers       int
		queue         int
		expectedError string
	}{
		{
			name:          "zero flush workers",
			workers:       0,
			queue:         16,
			expectedError: "FLUSH_WORKER_COUNT must be at least 1",
		},
		{
			name:          "too many flush workers",
			workers:       17,
			queue:         16,
			expectedError: "FLUSH_WORKER_COUNT must be at most 16",
		},
		{
			name:          "zero queue",
			workers:       1,
			queue:         0,
			expectedError: "FLUSH_QUEUE_SIZE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.FlushWorkerCount = tt.workers
			cfg.FlushQueueSize = tt.queue

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_SessionSizing(t *testing.T) {
	cfg := validConfig(t)
	cfg.SessionSize = 5
	cfg.MaxDuePerSession = 8

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_DUE_PER_SESSION (8) cannot exceed SESSION_SIZE (5)")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{
			name:  "invalid level",
			level: "INVALID",
		},
		{
			name:  "empty level",
			level: "",
		},
		{
			name:  "lowercase valid level",
			level: "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.level == "debug" {
				// Lowercase should be accepted
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		LogLevel: "INVALID",
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "CATALOG_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "FLUSH_WORKER_COUNT")
	assert.Contains(t, errStr, "FLUSH_QUEUE_SIZE")
	assert.Contains(t, errStr, "SESSION_SIZE")
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:speakflash.db", cfg.DBPath)
	assert.Equal(t, 15, cfg.SessionSize)
	assert.Equal(t, 10, cfg.MaxDuePerSession)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("SESSION_SIZE", "20")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 20, cfg.SessionSize)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CATALOG_PATH=custom/catalog.toml\n"), 0o600))
	chdir(t, dir)
	t.Cleanup(func() { os.Unsetenv("CATALOG_PATH") })

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "custom/catalog.toml", cfg.CatalogPath)
}

func TestLoad_InvalidInteger(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_SIZE", "lots")

	_, err := config.Load()
	assert.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}
