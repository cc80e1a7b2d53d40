package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123456:ABCDEF")
	t.Setenv("UPSTASH_REDIS_REST_URL", "https://eu1-example.upstash.io")
	t.Setenv("UPSTASH_REDIS_REST_TOKEN", "secret")
	t.Setenv("OWNER_ID", "42")
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "123456:ABCDEF", cfg.Telegram.Token)
	assert.Equal(t, int64(42), cfg.Telegram.OwnerID)
	assert.Equal(t, "https://eu1-example.upstash.io", cfg.Store.URL)
	assert.Equal(t, "secret", cfg.Store.Token)
	assert.Equal(t, DefaultStoreKeyPrefix, cfg.Store.KeyPrefix)
	assert.Equal(t, DefaultStoreDialTimeout, cfg.Store.DialTimeout)
	assert.Equal(t, DefaultHTTPPort, cfg.HTTP.Port)
	assert.Equal(t, ":3000", cfg.HTTP.Addr())
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, DefaultMessages, cfg.Messages)

	require.Contains(t, cfg.Scheduler.Tasks, "store_ping")
	assert.True(t, cfg.Scheduler.Tasks["store_ping"].Enabled)
	require.Contains(t, cfg.Scheduler.Tasks, "member_report")
	assert.False(t, cfg.Scheduler.Tasks["member_report"].Enabled)
}

func TestLoadConfigPortOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8081")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.HTTP.Addr())
}

func TestLoadConfigMissingRequired(t *testing.T) {
	tests := []struct {
		name   string
		unset  string
		errKey string
	}{
		{name: "bot token", unset: "BOT_TOKEN", errKey: "telegram.token"},
		{name: "store url", unset: "UPSTASH_REDIS_REST_URL", errKey: "store.url"},
		{name: "store token", unset: "UPSTASH_REDIS_REST_TOKEN", errKey: "store.token"},
		{name: "owner id", unset: "OWNER_ID", errKey: "telegram.ownerid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := LoadConfig("")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.Contains(t, err.Error(), tt.errKey)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
log:
  level: debug
  json: false
store:
  key_prefix: test:v2
metrics:
  enabled: true
  addr: ":9100"
scheduler:
  tasks:
    member_report:
      enabled: true
      schedule: "0 30 8 * * *"
messages:
  welcome: "Hi {name}"
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, "test:v2", cfg.Store.KeyPrefix)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
	assert.Equal(t, "Hi {name}", cfg.Messages.Welcome)
	assert.Equal(t, DefaultMessages.AccessDenied, cfg.Messages.AccessDenied)
	assert.Equal(t, TaskConfig{Enabled: true, Schedule: "0 30 8 * * *"}, cfg.Scheduler.Tasks["member_report"])
}

func TestLoadConfigInvalidValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := LoadConfig("")
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "log.level")
}

func TestValidateDialTimeout(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Log:      LogConfig{Level: "info"},
		Telegram: TelegramConfig{Token: "t", OwnerID: 1},
		Store:    StoreConfig{URL: "https://example.upstash.io", Token: "x", KeyPrefix: "p", DialTimeout: time.Millisecond},
		HTTP:     HTTPConfig{Port: 3000},
		Messages: DefaultMessages,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.dialtimeout")
}
