package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_NAME", "other_db")
	t.Setenv("ADMIN_API_KEY", "k")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "other_db", cfg.Database.DBName)
	assert.Equal(t, "k", cfg.Admin.APIKey)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db.local",
		Port:     "5433",
		User:     "u",
		Password: "p",
		DBName:   "inv",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://u:p@db.local:5433/inv?sslmode=disable", c.DSN())
}
