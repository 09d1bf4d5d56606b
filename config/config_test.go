package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load("costs-service", "3002")
	require.NoError(t, err)

	assert.Equal(t, "3002", cfg.Port)
	assert.Equal(t, "costs-service", cfg.ServiceName)
	assert.Equal(t, "costmanager", cfg.MongoDatabase)
	assert.Equal(t, "http://localhost:3001", cfg.UsersServiceURL)
	assert.True(t, cfg.Development())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SERVICE_NAME", "renamed")
	t.Setenv("APP_ENV", "production")
	t.Setenv("MONGO_URI", "mongodb://db:27017")

	cfg, err := Load("costs-service", "3002")
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "renamed", cfg.ServiceName)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.False(t, cfg.Development())
}
