package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultClient_UserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, _ = DefaultClient().GetBody(context.Background(), server.URL)

	if gotUA != "adoptium-plugin" {
		t.Errorf("default User-Agent = %q, want %q", gotUA, "adoptium-plugin")
	}
}

func TestClient_WithUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	base := DefaultClient()
	custom := base.WithUserAgent("custom-agent/2.0")
	_, _ = custom.GetBody(context.Background(), server.URL)

	if gotUA != "custom-agent/2.0" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "custom-agent/2.0")
	}
	if base.userAgent != "adoptium-plugin" {
		t.Errorf("WithUserAgent mutated the original client")
	}
}

func TestGetBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"versions":[]}`))
	}))
	defer server.Close()

	body, err := DefaultClient().GetBody(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetBody failed: %v", err)
	}
	if string(body) != `{"versions":[]}` {
		t.Errorf("body = %q", body)
	}
}

func TestGetBody_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errorMessage":"No releases match the request"}`))
	}))
	defer server.Close()

	_, err := DefaultClient().GetBody(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error")
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T", err)
	}
	if !httpErr.IsNotFound() {
		t.Errorf("IsNotFound() = false for status %d", httpErr.StatusCode)
	}
	if !errors.Is(err, ErrUpstreamUnreachable) {
		t.Errorf("HTTPError should unwrap to ErrUpstreamUnreachable")
	}
}

func TestGetBody_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := DefaultClient().GetBody(context.Background(), url)
	if !errors.Is(err, ErrUpstreamUnreachable) {
		t.Errorf("error = %v, want ErrUpstreamUnreachable", err)
	}
}

func TestGetBody_NoRetriesByDefault(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, _ = DefaultClient().GetBody(context.Background(), server.URL)

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("hits = %d, want 1", got)
	}
}

func TestGetBody_Retries(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`ok`))
	}))
	defer server.Close()

	c := NewClient(WithMaxRetries(3), WithBaseDelay(time.Millisecond))
	body, err := c.GetBody(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetBody failed: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("body = %q, want %q", body, "ok")
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("hits = %d, want 3", got)
	}
}

func TestGetBody_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := DefaultClient().GetBody(context.Background(), server.URL)

	var rl *RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("expected *RateLimitError, got %T", err)
	}
	if rl.RetryAfter != 7 {
		t.Errorf("RetryAfter = %d, want 7", rl.RetryAfter)
	}
}

func TestGetBody_CircuitBreaker(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(WithCircuitBreaker(2))
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := c.GetBody(ctx, server.URL); !errors.Is(err, ErrUpstreamUnreachable) {
			t.Errorf("call %d: error = %v, want ErrUpstreamUnreachable", i, err)
		}
	}

	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("hits = %d, want 2 (breaker should be open)", got)
	}

	states := c.BreakerStates()
	if len(states) != 1 {
		t.Fatalf("expected 1 breaker, got %d", len(states))
	}
	for host, state := range states {
		if state != "open" {
			t.Errorf("breaker for %s = %q, want open", host, state)
		}
	}
}

func TestGetBody_CircuitBreakerIgnoresNotFound(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path == "/v3/info/release_versions" {
			_, _ = w.Write([]byte(`{"versions":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(WithCircuitBreaker(2))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := c.GetBody(ctx, server.URL+"/v3/assets/release_name/eclipse/jdk-99+1")
		var httpErr *HTTPError
		if !errors.As(err, &httpErr) || !httpErr.IsNotFound() {
			t.Fatalf("call %d: error = %v, want 404 *HTTPError", i, err)
		}
	}

	if _, err := c.GetBody(ctx, server.URL+"/v3/info/release_versions"); err != nil {
		t.Errorf("GetBody after 404s failed: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 6 {
		t.Errorf("hits = %d, want 6", got)
	}
	for host, state := range c.BreakerStates() {
		if state != "closed" {
			t.Errorf("breaker for %s = %q, want closed", host, state)
		}
	}
}

func TestBreakerStates_Disabled(t *testing.T) {
	if states := DefaultClient().BreakerStates(); states != nil {
		t.Errorf("BreakerStates() = %v, want nil", states)
	}
}
