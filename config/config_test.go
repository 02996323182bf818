package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("GENERATOR_PROVIDER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "http", cfg.Generator.Provider)
	assert.Zero(t, cfg.Generator.Timeout)
	assert.Equal(t, 5*24*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Session.SecureCookie)
	assert.True(t, cfg.DevAuth())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("GENERATOR_TIMEOUT", "45s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 45*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Generator: GeneratorConfig{Provider: "http", BaseURL: "http://localhost:8088"},
			Session:   SessionConfig{TTL: time.Hour},
			App:       AppConfig{Environment: "development"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("production requires firebase credentials", func(t *testing.T) {
		cfg := base()
		cfg.App.Environment = "production"
		assert.Error(t, cfg.Validate())
		assert.False(t, cfg.DevAuth())
	})

	t.Run("genai requires api key", func(t *testing.T) {
		cfg := base()
		cfg.Generator.Provider = "genai"
		assert.Error(t, cfg.Validate())
		cfg.Generator.GenAIAPIKey = "key"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("client credentials need token url", func(t *testing.T) {
		cfg := base()
		cfg.Generator.ClientID = "client"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := base()
		cfg.Generator.Provider = "carrier-pigeon"
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadDatabasePoolSizes(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, 2, cfg.Database.MinConns)
}
