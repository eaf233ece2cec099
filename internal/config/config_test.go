package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promedhq/promed/internal/logger"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "promed.db", cfg.DB.Path)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 8, cfg.Alerts.Hour)
	assert.True(t, cfg.Alerts.SchedulerEnabled)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 24, cfg.Session.TTLHours)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, logger.LevelInfo, cfg.Logger.Level)
}

func TestLoadRequiresSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DB_DRIVER", "oracle")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("alert hour out of range", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ALERT_HOUR", "24")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown session store", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SESSION_STORE", "memcached")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("ALERT_HOUR", "6")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6, cfg.Alerts.Hour)
	assert.False(t, cfg.Alerts.SchedulerEnabled)
	assert.Equal(t, logger.LevelDebug, cfg.Logger.Level)
}
