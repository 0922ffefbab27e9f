package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./data/termtracker.db3", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.True(t, cfg.Seed.OnStart)
	assert.Equal(t, ReminderBackendLog, cfg.Reminders.Backend)
	assert.False(t, cfg.Reminders.CancelOnDelete)
	assert.True(t, cfg.Docs.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("DB_PATH", "/tmp/tracker.db3")
	t.Setenv("DB_BUSY_TIMEOUT", "not-a-duration")
	t.Setenv("SEED_ON_START", "false")
	t.Setenv("REMINDER_BACKEND", "Redis")
	t.Setenv("REMINDER_CANCEL_ON_DELETE", "true")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/tracker.db3", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.False(t, cfg.Seed.OnStart)
	assert.Equal(t, ReminderBackendRedis, cfg.Reminders.Backend)
	assert.True(t, cfg.Reminders.CancelOnDelete)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Docs.Enabled)
}

func TestUnknownReminderBackendFallsBackToLog(t *testing.T) {
	t.Setenv("REMINDER_BACKEND", "carrier-pigeon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ReminderBackendLog, cfg.Reminders.Backend)
}
