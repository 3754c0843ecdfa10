// Package config reads the bot's settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"github.com/NethermindEth/twitterbot/pkg/twitter"
	"github.com/NethermindEth/twitterbot/pkg/utils/errors"
	"github.com/NethermindEth/twitterbot/pkg/utils/logger"
)

type Config struct {
	AppKey          string
	AppSecret       string
	UserToken       string
	UserTokenSecret string

	// Empty base URLs fall back to the client defaults.
	APIBaseURL    string
	UploadBaseURL string
	Timeout       time.Duration

	LogLevel string
	LogJSON  bool

	LoginServerAddr string
}

// Load reads the configuration. A .env file in the working directory is
// loaded first when present; variables already set in the environment win.
// Missing credentials only produce a warning since the login command runs
// without user tokens.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppKey:          envGetTwitterAppKey(),
		AppSecret:       envGetTwitterAppSecret(),
		UserToken:       envGetTwitterUserToken(),
		UserTokenSecret: envGetTwitterUserTokenSecret(),
		APIBaseURL:      envGetString(TwitterAPIURLKey, ""),
		UploadBaseURL:   envGetString(TwitterUploadURLKey, ""),
		LogLevel:        envGetString(LogLevelKey, DefaultLogLevel),
		LoginServerAddr: envGetString(LoginServerAddrKey, DefaultLoginServerAddr),
	}

	var err error
	cfg.Timeout, err = envGetDuration(TwitterTimeoutKey, DefaultTimeout)
	if err != nil {
		return nil, errors.Wrap(err, errors.TypeConfig, fmt.Sprintf("invalid %s", TwitterTimeoutKey))
	}

	cfg.LogJSON, err = envGetBool(LogJSONKey)
	if err != nil {
		return nil, errors.Wrap(err, errors.TypeConfig, fmt.Sprintf("invalid %s", LogJSONKey))
	}

	return cfg, nil
}

// Credentials builds the client credentials. They are not checked here.
func (c *Config) Credentials() twitter.Credentials {
	return twitter.NewCredentials().
		WithAppKey(c.AppKey).
		WithAppSecret(c.AppSecret).
		WithUserToken(c.UserToken).
		WithUserTokenSecret(c.UserTokenSecret)
}

// ClientConfig returns the client settings derived from c.
func (c *Config) ClientConfig() *twitter.ClientConfig {
	return &twitter.ClientConfig{
		Credentials:   c.Credentials(),
		APIBaseURL:    c.APIBaseURL,
		UploadBaseURL: c.UploadBaseURL,
		Timeout:       c.Timeout,
	}
}

// LoggerConfig maps the log settings onto a logger.Config.
func (c *Config) LoggerConfig() (logger.Config, error) {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.Config{}, errors.Wrap(err, errors.TypeConfig, fmt.Sprintf("invalid %s", LogLevelKey))
	}
	return logger.Config{
		Level:      level,
		JSONFormat: c.LogJSON,
	}, nil
}

// LogValue keeps secrets out of structured logs.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("app_key_set", c.AppKey != ""),
		slog.Bool("app_secret_set", c.AppSecret != ""),
		slog.Bool("user_token_set", c.UserToken != ""),
		slog.Bool("user_token_secret_set", c.UserTokenSecret != ""),
		slog.String("api_base_url", c.APIBaseURL),
		slog.String("upload_base_url", c.UploadBaseURL),
		slog.Duration("timeout", c.Timeout),
		slog.String("log_level", c.LogLevel),
		slog.String("login_server_addr", c.LoginServerAddr),
	)
}
