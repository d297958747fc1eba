package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
app:
  name: catalog-test
  port: 9090
  read_timeout: 3s
database:
  driver: pq
  host: db.internal
  user: catalog
  password: secret
  name: shop
log:
  level: debug
cors:
  allow_origins:
    - https://shop.example
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "catalog-test", cfg.App.Name)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 3*time.Second, cfg.App.ReadTimeout)
	assert.Equal(t, "pq", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"https://shop.example"}, cfg.Cors.AllowOrigins)

	// keys missing from the file keep their defaults
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 10*time.Second, cfg.App.WriteTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("APP_PORT", "7070")
	t.Setenv("DATABASE_HOST", "override.internal")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.App.Port)
	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.Stdout)
	assert.Equal(t, []string{"*"}, cfg.Cors.AllowOrigins)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "app: [unclosed"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      DatabaseConfig
		expected string
	}{
		{
			name:     "All fields",
			cfg:      DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "pw", Name: "catalog", SSLMode: "disable"},
			expected: "host=localhost port=5432 user=postgres password=pw dbname=catalog sslmode=disable",
		},
		{
			name:     "Empty password is left out",
			cfg:      DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Name: "catalog"},
			expected: "host=localhost port=5432 user=postgres dbname=catalog",
		},
		{
			name:     "Values with spaces are quoted",
			cfg:      DatabaseConfig{Host: "db", Password: `it's a secret`},
			expected: `host=db password='it\'s a secret'`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.cfg.DSN())
		})
	}
}

func TestAppConfig_Addr(t *testing.T) {
	cfg := AppConfig{Port: 8080}
	assert.Equal(t, ":8080", cfg.Addr())
}
