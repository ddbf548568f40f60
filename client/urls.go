package client

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is the public Adoptium API.
const DefaultBaseURL = "https://api.adoptium.net"

// Query is an ordered list of query parameters. Unlike url.Values it
// encodes pairs in insertion order, which keeps request URLs stable and
// comparable in logs and tests.
type Query struct {
	keys   []string
	values []string
}

// Add appends a key/value pair and returns the query for chaining.
func (q *Query) Add(key, value string) *Query {
	q.keys = append(q.keys, key)
	q.values = append(q.values, value)
	return q
}

// Get returns the first value for key.
func (q *Query) Get(key string) string {
	for i, k := range q.keys {
		if k == key {
			return q.values[i]
		}
	}
	return ""
}

// Clone returns an independent copy of the query.
func (q *Query) Clone() *Query {
	return &Query{
		keys:   append([]string(nil), q.keys...),
		values: append([]string(nil), q.values...),
	}
}

// Encode renders the query as "k1=v1&k2=v2" in insertion order.
func (q *Query) Encode() string {
	var b strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.values[i]))
	}
	return b.String()
}

// URLs builds Adoptium API endpoint URLs.
type URLs struct {
	BaseURL string
}

// NewURLs returns a builder rooted at baseURL, or DefaultBaseURL if empty.
func NewURLs(baseURL string) *URLs {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &URLs{BaseURL: strings.TrimSuffix(baseURL, "/")}
}

// ReleaseAsset returns the asset lookup URL for a vendor release name.
func (u *URLs) ReleaseAsset(vendor, release string, q *Query) string {
	return u.build("/v3/assets/release_name/"+url.PathEscape(vendor)+"/"+url.PathEscape(release), q)
}

// ReleaseVersions returns the release version listing URL.
func (u *URLs) ReleaseVersions(q *Query) string {
	return u.build("/v3/info/release_versions", q)
}

func (u *URLs) build(path string, q *Query) string {
	if q == nil || len(q.keys) == 0 {
		return u.BaseURL + path
	}
	return u.BaseURL + path + "?" + q.Encode()
}
