package client

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
)

// breakerSet holds one circuit breaker per upstream host.
type breakerSet struct {
	threshold int64
	breakers  map[string]*circuit.Breaker
	mu        sync.RWMutex
}

func newBreakerSet(threshold int64) *breakerSet {
	if threshold <= 0 {
		threshold = 5
	}
	return &breakerSet{
		threshold: threshold,
		breakers:  make(map[string]*circuit.Breaker),
	}
}

func (s *breakerSet) get(host string) *circuit.Breaker {
	s.mu.RLock()
	breaker, exists := s.breakers[host]
	s.mu.RUnlock()

	if exists {
		return breaker
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if breaker, exists := s.breakers[host]; exists {
		return breaker
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	breaker = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(s.threshold),
	})
	s.breakers[host] = breaker
	return breaker
}

// call runs fn under the breaker for rawURL's host. Only upstream failures
// count against the breaker: transport errors, 429 and 5xx. Other errors,
// such as a 404 for a build that does not exist, are returned to the caller
// and recorded as successes.
func (s *breakerSet) call(rawURL string, fn func() error) error {
	host := hostOf(rawURL)
	breaker := s.get(host)

	if !breaker.Ready() {
		return fmt.Errorf("circuit breaker open for %s: %w", host, ErrUpstreamUnreachable)
	}

	var callErr error
	err := breaker.Call(func() error {
		callErr = fn()
		if upstreamFailure(callErr) {
			return callErr
		}
		return nil
	}, 0)
	if errors.Is(err, circuit.ErrBreakerOpen) {
		return fmt.Errorf("circuit breaker open for %s: %w", host, ErrUpstreamUnreachable)
	}
	if err != nil {
		return err
	}
	return callErr
}

// upstreamFailure reports whether err means the upstream is unhealthy.
func upstreamFailure(err error) bool {
	if err == nil {
		return false
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return true
	}
	return retryable(err)
}

// States reports "open" or "closed" for every host seen so far.
func (s *breakerSet) States() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make(map[string]string, len(s.breakers))
	for host, breaker := range s.breakers {
		if breaker.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}

// BreakerStates returns the state of each per-host circuit breaker, or nil
// when circuit breaking is disabled.
func (c *Client) BreakerStates() map[string]string {
	if c.breakers == nil {
		return nil
	}
	return c.breakers.States()
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		if len(rawURL) > 50 {
			return rawURL[:50]
		}
		return rawURL
	}
	return parsed.Host
}
