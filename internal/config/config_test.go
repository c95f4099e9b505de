package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresAPIToken(t *testing.T) {
	t.Setenv("API_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_TOKEN")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_TOKEN", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "gamecore", cfg.DBName)
	assert.Equal(t, 3, cfg.SkillPointsPerLevel)
	assert.Equal(t, "configs", cfg.ContentDir)
	assert.Equal(t, 5, cfg.EventMaxRetries)
	assert.Equal(t, 2*time.Second, cfg.EventRetryDelay)
	assert.Equal(t, 30, cfg.EventLogRetentionDays)
	assert.Equal(t, 24*time.Hour, cfg.EventLogCleanupInterval)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadTrustedProxies(t *testing.T) {
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoadNegativeSkillPoints(t *testing.T) {
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("SKILL_POINTS_PER_LEVEL", "-1")

	_, err := Load()
	require.Error(t, err)
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "admin",
		DBPassword: "pw",
		DBHost:     "db",
		DBPort:     "5433",
		DBName:     "game",
	}
	assert.Equal(t, "postgres://admin:pw@db:5433/game?sslmode=disable", cfg.GetDBConnString())
}
