package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HasanApplore/IndoSup-sub000/db"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORAGE_DRIVER", "DB_PORT", "MAX_UPLOAD_MB", "LOG_LEVEL", "ADMIN_JWT_SECRET"} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.False(t, cfg.Relational())
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.Admin.JWTSecret)
	assert.Equal(t, 12*time.Hour, cfg.Admin.TokenTTL)
}

func TestFromEnv_Postgres(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DB_USER", "indosup")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_QUERY_TIMEOUT", "2s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.True(t, cfg.Relational())
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFromEnv_ReportsEveryBadValue(t *testing.T) {
	t.Setenv("DB_PORT", "five")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PORT")
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:           "5000",
			Storage:        StorageMemory,
			MaxUploadBytes: 1 << 20,
			Admin:          AdminConfig{Email: "a@b.c", Password: "pw"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"memory ok", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Storage = "oracle" }, "unknown STORAGE_DRIVER"},
		{"mysql without user", func(c *Config) { c.Storage = StorageMySQL; c.Database.Name = "x" }, "DB_USER"},
		{"sqlite without file", func(c *Config) { c.Storage = StorageSQLite }, "DB_NAME"},
		{"no admin password", func(c *Config) { c.Admin.Password = "" }, "ADMIN_PASSWORD"},
		{"zero upload size", func(c *Config) { c.MaxUploadBytes = 0 }, "MAX_UPLOAD_MB"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(c)
			err := c.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDriverOptions(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mysql")
	t.Setenv("DB_USER", "indosup")
	t.Setenv("DB_PASSWORD", "pw")
	cfg, err := FromEnv()
	require.NoError(t, err)

	dsn, err := db.BuildDSN(cfg.Storage, cfg.DriverOptions())
	require.NoError(t, err)
	assert.Equal(t, "indosup:pw@tcp(localhost:3306)/indosup?loc=UTC&multiStatements=true&parseTime=true", dsn)

	cfg.Storage = StorageSQLite
	cfg.Database.Name = "data.db"
	dsn, err = db.BuildDSN(cfg.Storage, cfg.DriverOptions())
	require.NoError(t, err)
	assert.Equal(t, "file:data.db?_busy_timeout=5000", dsn)
}
