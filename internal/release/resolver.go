// Package release resolves Eclipse Temurin releases against the Adoptium
// API: release naming, artifact lookup and paginated version listing.
package release

import (
	"context"
	"errors"
	"strconv"

	"github.com/hashicorp/go-hclog"

	"github.com/git-pkgs/adoptium/internal/core"
	"github.com/git-pkgs/adoptium/internal/platform"
)

const (
	// Vendor is the Adoptium vendor that publishes Temurin builds.
	Vendor = "eclipse"

	// PageSize is the number of records requested per release_versions page.
	// A page with fewer records is the last one.
	PageSize = 20
)

// Fetcher is the HTTP capability the resolver depends on. *client.Client
// satisfies it.
type Fetcher interface {
	GetBody(ctx context.Context, url string) ([]byte, error)
}

// Resolver queries the Adoptium API. It holds no per-request state and is
// safe for concurrent use if its Fetcher is.
type Resolver struct {
	fetcher Fetcher
	urls    *core.URLs
	logger  hclog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used to trace pagination.
func WithLogger(l hclog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a resolver for the API at baseURL (the public API if empty).
// If fetcher is nil, core.DefaultClient() is used.
func New(baseURL string, fetcher Fetcher, opts ...Option) *Resolver {
	if fetcher == nil {
		fetcher = core.DefaultClient()
	}
	r := &Resolver{
		fetcher: fetcher,
		urls:    core.NewURLs(baseURL),
		logger:  hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type assetResponse struct {
	Binaries []assetBinary `json:"binaries"`
}

type assetBinary struct {
	Package assetPackage `json:"package"`
}

type assetPackage struct {
	Name     string `json:"name"`
	Checksum string `json:"checksum"`
	Link     string `json:"link"`
}

type versionsResponse struct {
	Versions []core.ReleaseVersion `json:"versions"`
}

// FetchArtifact looks up the downloadable JDK archive for release on the
// given platform. It returns a *core.NoBinariesError when upstream has no
// matching build.
func (r *Resolver) FetchArtifact(ctx context.Context, triple platform.Triple, release string) (*core.Artifact, error) {
	apiArch, apiOS := platform.Map(triple)

	q := new(core.Query).
		Add("architecture", apiArch).
		Add("os", apiOS).
		Add("heap_size", "normal").
		Add("image_type", "jdk").
		Add("jvm_impl", "hotspot").
		Add("project", "jdk")
	url := r.urls.ReleaseAsset(Vendor, release, q)

	body, err := r.fetcher.GetBody(ctx, url)
	if err != nil {
		var httpErr *core.HTTPError
		if errors.As(err, &httpErr) && httpErr.IsNotFound() {
			return nil, &core.NoBinariesError{Release: release, OS: apiOS, Arch: apiArch}
		}
		return nil, err
	}

	var resp assetResponse
	if err := decode(url, assetSchemaURL, body, &resp); err != nil {
		return nil, err
	}

	if len(resp.Binaries) == 0 {
		return nil, &core.NoBinariesError{Release: release, OS: apiOS, Arch: apiArch}
	}

	pkg := resp.Binaries[0].Package
	return &core.Artifact{
		DownloadURL:   pkg.Link,
		Checksum:      core.Checksum{Algorithm: core.SHA256, Hash: pkg.Checksum},
		ArchivePrefix: release,
		FileName:      pkg.Name,
	}, nil
}

// versionsQuery returns the release_versions filter for the platform.
func versionsQuery(triple platform.Triple) *core.Query {
	apiArch, apiOS := platform.Map(triple)
	return new(core.Query).
		Add("architecture", apiArch).
		Add("os", apiOS).
		Add("heap_size", "normal").
		Add("image_type", "jdk").
		Add("jvm_impl", "hotspot").
		Add("page_size", strconv.Itoa(PageSize)).
		Add("project", "jdk").
		Add("release_type", "ga").
		Add("vendor", Vendor)
}

// page is the outcome of fetching one listing page after the first.
// exhausted means no more data should be requested, either because
// upstream failed or because the page could not be read; upstream does
// not distinguish an out of range page from a real error.
type page struct {
	records   []core.ReleaseVersion
	exhausted bool
}

// FetchAllVersions lists every GA release for the platform, newest first
// as returned by upstream.
//
// A full page is taken to mean more pages exist. Failure of the first
// request is returned; failure of any later page ends the listing and the
// records gathered so far are returned without error.
func (r *Resolver) FetchAllVersions(ctx context.Context, triple platform.Triple) ([]core.ReleaseVersion, error) {
	q := versionsQuery(triple)

	records, err := r.fetchVersions(ctx, r.urls.ReleaseVersions(q))
	if err != nil {
		return nil, err
	}

	count := len(records)
	for index := 1; count >= PageSize; index++ {
		p := r.fetchPage(ctx, q, index)
		if p.exhausted {
			break
		}
		records = append(records, p.records...)
		count = len(p.records)
	}

	r.logger.Debug("listed release versions", "platform", triple.String(), "count", len(records))
	return records, nil
}

func (r *Resolver) fetchPage(ctx context.Context, q *core.Query, index int) page {
	url := r.urls.ReleaseVersions(q.Clone().Add("page", strconv.Itoa(index)))

	records, err := r.fetchVersions(ctx, url)
	if err != nil {
		r.logger.Warn("stopping release version pagination", "page", index, "error", err)
		return page{exhausted: true}
	}

	r.logger.Debug("fetched release version page", "page", index, "count", len(records))
	return page{records: records}
}

func (r *Resolver) fetchVersions(ctx context.Context, url string) ([]core.ReleaseVersion, error) {
	body, err := r.fetcher.GetBody(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp versionsResponse
	if err := decode(url, versionsSchemaURL, body, &resp); err != nil {
		return nil, err
	}
	return resp.Versions, nil
}
