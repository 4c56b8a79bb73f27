// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Port                string
	DBPath              string
	ClassifierURL       string
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRedirectURL  string
	SpotifyBaseURL      string
	SaavnBaseURL        string
	CameraDevice        string
	LinkingRequired     bool
	SuggestDebounceMs   int
	WorkerCount         int
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:                getEnv("PORT", "8080"),
		DBPath:              getEnv("DB_PATH", "moodtune.db"),
		ClassifierURL:       getEnv("CLASSIFIER_URL", "http://localhost:5001"),
		SpotifyClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
		SpotifyRedirectURL:  getEnv("SPOTIFY_REDIRECT_URL", "http://localhost:8080/api/spotify/callback"),
		SpotifyBaseURL:      getEnv("SPOTIFY_BASE_URL", ""),
		SaavnBaseURL:        getEnv("SAAVN_BASE_URL", ""),
		CameraDevice:        getEnv("CAMERA_DEVICE", "/dev/video0"),
		LinkingRequired:     getEnvBool("LINKING_REQUIRED", false),
		SuggestDebounceMs:   getEnvInt("SUGGEST_DEBOUNCE_MS", 300),
		WorkerCount:         getEnvInt("WORKER_COUNT", 2),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errs []string

	if c.Port == "" {
		errs = append(errs, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errs = append(errs, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errs = append(errs, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DBPath == "" {
		errs = append(errs, "DB_PATH cannot be empty")
	}

	if c.ClassifierURL == "" {
		errs = append(errs, "CLASSIFIER_URL cannot be empty")
	} else if _, err := url.Parse(c.ClassifierURL); err != nil {
		errs = append(errs, fmt.Sprintf("CLASSIFIER_URL is not a valid URL: %s", c.ClassifierURL))
	}

	// Spotify credentials are optional unless linking is mandatory.
	if c.LinkingRequired {
		if c.SpotifyClientID == "" {
			errs = append(errs, "SPOTIFY_CLIENT_ID required when LINKING_REQUIRED is set")
		}
		if c.SpotifyClientSecret == "" {
			errs = append(errs, "SPOTIFY_CLIENT_SECRET required when LINKING_REQUIRED is set")
		}
	}
	if c.SpotifyClientID != "" && c.SpotifyRedirectURL == "" {
		errs = append(errs, "SPOTIFY_REDIRECT_URL cannot be empty when SPOTIFY_CLIENT_ID is set")
	}

	if c.CameraDevice == "" {
		errs = append(errs, "CAMERA_DEVICE cannot be empty")
	}

	if c.SuggestDebounceMs < 0 {
		errs = append(errs, fmt.Sprintf("SUGGEST_DEBOUNCE_MS cannot be negative, got: %d", c.SuggestDebounceMs))
	}

	if c.WorkerCount < 1 {
		errs = append(errs, fmt.Sprintf("WORKER_COUNT must be at least 1, got: %d", c.WorkerCount))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
