package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "캠지기 모집 폼", cfg.Airtable.TableName)
	assert.Equal(t, "https://api.airtable.com/v0", cfg.Airtable.BaseURL)
	assert.False(t, cfg.Airtable.Configured())
	assert.Equal(t, SubmitModeHTTP, cfg.Submit.Mode)
	assert.Equal(t, 24*time.Hour, cfg.Redis.SessionTTL)
	assert.False(t, cfg.Database.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("AIRTABLE_API_KEY", "key")
	t.Setenv("AIRTABLE_BASE_ID", "appX")
	t.Setenv("SUBMIT_MODE", "stub")
	t.Setenv("STUB_DELAY", "50ms")
	t.Setenv("ADMIN_IDS", "11,22")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "funnel")
	t.Setenv("DB_NAME", "leads")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Airtable.Configured())
	assert.Equal(t, SubmitModeStub, cfg.Submit.Mode)
	assert.Equal(t, 50*time.Millisecond, cfg.Submit.StubDelay)
	assert.Equal(t, []int64{11, 22}, cfg.Telegram.AdminIDs)
	assert.True(t, cfg.Database.Enabled())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing redis", func(t *testing.T) {
		t.Setenv("REDIS_ADDR", "")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("unknown submit mode", func(t *testing.T) {
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("SUBMIT_MODE", "carrier-pigeon")
		_, err := Load()
		assert.ErrorContains(t, err, "SUBMIT_MODE")
	})
	t.Run("database without user", func(t *testing.T) {
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("DB_HOST", "db")
		_, err := Load()
		assert.ErrorContains(t, err, "DB_USER")
	})
}
