package client

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/dnscache"
)

var (
	sharedResolver     *dnscache.Resolver
	sharedResolverOnce sync.Once
)

// dnsResolver returns the process wide DNS cache, refreshed every 5 minutes.
func dnsResolver() *dnscache.Resolver {
	sharedResolverOnce.Do(func() {
		sharedResolver = &dnscache.Resolver{}
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				sharedResolver.Refresh(true)
			}
		}()
	})
	return sharedResolver
}

// NewTransport returns an http.Transport that resolves hosts through a
// shared DNS cache. The plugin server issues many small requests to the
// same host, so lookups are worth caching.
func NewTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	resolver := dnsResolver()

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			ips, err := resolver.LookupHost(ctx, host)
			if err != nil {
				return nil, err
			}
			for _, ip := range ips {
				conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
				if err == nil {
					return conn, nil
				}
			}
			return nil, fmt.Errorf("failed to dial any resolved IP for %s", host)
		},
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
