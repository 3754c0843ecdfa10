package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	TwitterAppKeyKey          = "X_CONSUMER_KEY"
	TwitterAppSecretKey       = "X_CONSUMER_SECRET"
	TwitterUserTokenKey       = "X_ACCESS_TOKEN"
	TwitterUserTokenSecretKey = "X_ACCESS_TOKEN_SECRET"
	TwitterAPIURLKey          = "TWITTER_API_URL"
	TwitterUploadURLKey       = "TWITTER_UPLOAD_URL"
	TwitterTimeoutKey         = "TWITTER_TIMEOUT"
	LogLevelKey               = "LOG_LEVEL"
	LogJSONKey                = "LOG_JSON"
	LoginServerAddrKey        = "X_LOGIN_SERVER_ADDR"
)

const (
	DefaultTimeout         = 30 * time.Second
	DefaultLogLevel        = "info"
	DefaultLoginServerAddr = "127.0.0.1:8181"
)

func envGetTwitterAppKey() string {
	appKey, ok := os.LookupEnv(TwitterAppKeyKey)
	if !ok {
		slog.Warn(TwitterAppKeyKey + " environment variable not set")
	}
	return appKey
}

func envGetTwitterAppSecret() string {
	appSecret, ok := os.LookupEnv(TwitterAppSecretKey)
	if !ok {
		slog.Warn(TwitterAppSecretKey + " environment variable not set")
	}
	return appSecret
}

func envGetTwitterUserToken() string {
	token, ok := os.LookupEnv(TwitterUserTokenKey)
	if !ok {
		slog.Warn(TwitterUserTokenKey + " environment variable not set")
	}
	return token
}

func envGetTwitterUserTokenSecret() string {
	secret, ok := os.LookupEnv(TwitterUserTokenSecretKey)
	if !ok {
		slog.Warn(TwitterUserTokenSecretKey + " environment variable not set")
	}
	return secret
}

func envGetString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func envGetDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(val)
}

func envGetBool(key string) (bool, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return false, nil
	}
	return strconv.ParseBool(val)
}
