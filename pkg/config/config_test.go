package config

import (
	"bytes"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NethermindEth/twitterbot/pkg/utils/errors"
)

var allKeys = []string{
	TwitterAppKeyKey,
	TwitterAppSecretKey,
	TwitterUserTokenKey,
	TwitterUserTokenSecretKey,
	TwitterAPIURLKey,
	TwitterUploadURLKey,
	TwitterTimeoutKey,
	LogLevelKey,
	LogJSONKey,
	LoginServerAddrKey,
}

// clearEnv unsets every key Load reads and restores them when the test ends.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Empty(t, cfg.AppKey)
		assert.Empty(t, cfg.APIBaseURL)
		assert.Equal(t, DefaultTimeout, cfg.Timeout)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.LogJSON)
		assert.Equal(t, "127.0.0.1:8181", cfg.LoginServerAddr)
	})

	t.Run("custom values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(TwitterAppKeyKey, "ck")
		t.Setenv(TwitterAppSecretKey, "cs")
		t.Setenv(TwitterUserTokenKey, "at")
		t.Setenv(TwitterUserTokenSecretKey, "as")
		t.Setenv(TwitterAPIURLKey, "http://localhost:9000/1.1")
		t.Setenv(TwitterTimeoutKey, "5s")
		t.Setenv(LogLevelKey, "debug")
		t.Setenv(LogJSONKey, "true")
		t.Setenv(LoginServerAddrKey, "0.0.0.0:9999")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "ck", cfg.AppKey)
		assert.Equal(t, "cs", cfg.AppSecret)
		assert.Equal(t, "at", cfg.UserToken)
		assert.Equal(t, "as", cfg.UserTokenSecret)
		assert.Equal(t, "http://localhost:9000/1.1", cfg.APIBaseURL)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.LogJSON)
		assert.Equal(t, "0.0.0.0:9999", cfg.LoginServerAddr)
	})

	t.Run("invalid duration", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(TwitterTimeoutKey, "soon")

		_, err := Load()
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.TypeConfig))
		assert.Contains(t, err.Error(), TwitterTimeoutKey)
	})

	t.Run("invalid bool", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(LogJSONKey, "sometimes")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), LogJSONKey)
	})
}

func TestConfig_Credentials(t *testing.T) {
	cfg := &Config{AppKey: "ck", AppSecret: "cs", UserToken: "at"}

	err := cfg.Credentials().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user_token_secret")

	cfg.UserTokenSecret = "as"
	assert.NoError(t, cfg.Credentials().Validate())
}

func TestConfig_ClientConfig(t *testing.T) {
	cfg := &Config{
		AppKey:          "ck",
		AppSecret:       "cs",
		UserToken:       "at",
		UserTokenSecret: "as",
		UploadBaseURL:   "http://upload.local",
		Timeout:         time.Second,
	}

	cc := cfg.ClientConfig()
	assert.Equal(t, "http://upload.local", cc.UploadBaseURL)
	assert.Empty(t, cc.APIBaseURL)
	assert.Equal(t, time.Second, cc.Timeout)
	assert.NoError(t, cc.Credentials.Validate())
}

func TestConfig_LoggerConfig(t *testing.T) {
	cfg := &Config{LogLevel: "warn", LogJSON: true}
	lc, err := cfg.LoggerConfig()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lc.Level)
	assert.True(t, lc.JSONFormat)

	cfg.LogLevel = "loud"
	_, err = cfg.LoggerConfig()
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestConfig_LogValueHidesSecrets(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	log.Info("loaded", "config", &Config{AppKey: "super-secret-key", UserTokenSecret: "hidden"})

	out := buf.String()
	assert.NotContains(t, out, "super-secret-key")
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "config.app_key_set=true")
}
