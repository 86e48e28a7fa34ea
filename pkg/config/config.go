// Package config loads the process-wide configuration from the environment.
//
// Configuration is read once at startup into an immutable Config value that
// is passed explicitly into constructors. Credential presence decides which
// providers the resolver may attempt; there are no ambient lookups after
// startup.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults for provider hosts and tuning knobs.
const (
	DefaultOfficialHost  = "https://open.tiktokapis.com"
	DefaultTikAPIHost    = "https://api.tikapi.io"
	DefaultUnofficialURL = "http://127.0.0.1:8008"

	// DefaultProviderTimeout is the fixed per-attempt timeout applied
	// uniformly to all provider calls.
	DefaultProviderTimeout = 20 * time.Second

	// DefaultResolveTimeout bounds a whole resolution across the fallback
	// chain, so three failing providers cannot stack their full timeouts.
	DefaultResolveTimeout = 45 * time.Second

	DefaultFailureThreshold = 5
	DefaultFailureCooldown  = 30 * time.Second
)

// Config holds the process configuration. Values are fixed at startup; the
// struct is passed by value and never mutated afterwards.
type Config struct {
	// HTTP server
	Port string

	// Logging
	LogLevel  string
	LogPretty bool

	// Official TikTok API
	ClientKey    string
	ClientSecret string
	OfficialHost string

	// TikAPI managed provider
	TikAPIKey  string
	TikAPIHost string

	// Unofficial scraper sidecar (opt-in)
	UseUnofficial bool
	UnofficialURL string

	// Result cache backend; empty selects the in-memory store
	RedisURL string

	// Timeouts
	ProviderTimeout time.Duration // per provider attempt
	ResolveTimeout  time.Duration // across the whole fallback chain

	// Provider cooldown gating; threshold 0 disables
	FailureThreshold int
	FailureCooldown  time.Duration
}

// FromEnv reads the configuration from environment variables, applying
// defaults for everything not set.
func FromEnv() Config {
	return Config{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getBool("LOG_PRETTY", false),

		ClientKey:    os.Getenv("TIKTOK_CLIENT_KEY"),
		ClientSecret: os.Getenv("TIKTOK_CLIENT_SECRET"),
		OfficialHost: getEnv("TIKTOK_API_HOST", DefaultOfficialHost),

		TikAPIKey:  os.Getenv("TIKAPI_KEY"),
		TikAPIHost: getEnv("TIKAPI_HOST", DefaultTikAPIHost),

		UseUnofficial: getBool("USE_UNOFFICIAL", false),
		UnofficialURL: getEnv("UNOFFICIAL_API_URL", DefaultUnofficialURL),

		RedisURL: os.Getenv("REDIS_URL"),

		ProviderTimeout:  getDuration("PROVIDER_TIMEOUT", DefaultProviderTimeout),
		ResolveTimeout:   getDuration("RESOLVE_TIMEOUT", DefaultResolveTimeout),
		FailureThreshold: getInt("FAILURE_THRESHOLD", DefaultFailureThreshold),
		FailureCooldown:  getDuration("FAILURE_COOLDOWN", DefaultFailureCooldown),
	}
}

// HasOfficialCredentials reports whether the official API may be attempted.
// Both the client key and the secret must be present.
func (c Config) HasOfficialCredentials() bool {
	return c.ClientKey != "" && c.ClientSecret != ""
}

// HasTikAPIKey reports whether the managed provider may be attempted.
func (c Config) HasTikAPIKey() bool {
	return c.TikAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBool accepts 1/true/yes (any case) as true; anything else is false.
func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
