package client

import (
	"testing"
	"time"
)

func TestBaseURLFromEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	if got := BaseURLFromEnv(); got != DefaultBaseURL {
		t.Errorf("BaseURLFromEnv() = %q, want %q", got, DefaultBaseURL)
	}

	t.Setenv(EnvBaseURL, "http://mirror.internal")
	if got := BaseURLFromEnv(); got != "http://mirror.internal" {
		t.Errorf("BaseURLFromEnv() = %q", got)
	}
}

func TestTimeoutFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", DefaultTimeout},
		{"5s", 5 * time.Second},
		{"garbage", DefaultTimeout},
		{"-1s", DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(EnvTimeout, tt.value)
			if got := TimeoutFromEnv(); got != tt.want {
				t.Errorf("TimeoutFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvTimeout, "2m")
	c := NewClient(FromEnv()...)
	if c.httpClient.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", c.httpClient.Timeout)
	}
}
