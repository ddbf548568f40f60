package client

import (
	"os"
	"time"
)

// Environment variables understood by FromEnv.
const (
	EnvBaseURL = "ADOPTIUM_API_URL"
	EnvTimeout = "ADOPTIUM_TIMEOUT"
)

// BaseURLFromEnv returns the API base URL from the environment, falling
// back to DefaultBaseURL.
func BaseURLFromEnv() string {
	if v := os.Getenv(EnvBaseURL); v != "" {
		return v
	}
	return DefaultBaseURL
}

// TimeoutFromEnv returns the HTTP timeout from the environment, falling
// back to DefaultTimeout when unset or invalid.
func TimeoutFromEnv() time.Duration {
	if v := os.Getenv(EnvTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return DefaultTimeout
}

// FromEnv returns client options derived from the environment.
func FromEnv() []Option {
	return []Option{WithTimeout(TimeoutFromEnv())}
}
