// Package adoptium resolves Eclipse Temurin JDK releases from the Adoptium
// API for use by a version-manager plugin.
//
// It maps a host platform to the API's naming, lists the GA versions
// available for that platform, resolves the archive URL and checksum for a
// version, and reports where the executables live inside an installed JDK.
//
// Basic usage:
//
//	import (
//		"context"
//		"github.com/git-pkgs/adoptium"
//	)
//
//	platform := adoptium.DetectPlatform()
//	list, err := adoptium.ListVersions(context.Background(), platform, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	artifact, err := adoptium.ResolveArtifact(context.Background(), platform, list.Latest.String(), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(artifact.DownloadURL, artifact.Checksum.Hash)
package adoptium

import (
	"context"

	"github.com/git-pkgs/purl"

	"github.com/git-pkgs/adoptium/client"
	"github.com/git-pkgs/adoptium/internal/core"
	"github.com/git-pkgs/adoptium/internal/platform"
	"github.com/git-pkgs/adoptium/internal/release"
	"github.com/git-pkgs/adoptium/internal/tool"
)

// Re-export types from internal/core
type (
	// SemanticVersion is a JDK version with its vendor build number.
	SemanticVersion = core.SemanticVersion

	// ReleaseVersion is one record from the release listing.
	ReleaseVersion = core.ReleaseVersion

	// Artifact describes a downloadable JDK archive.
	Artifact = core.Artifact

	// Checksum is the expected digest of an archive.
	Checksum = core.Checksum

	// Executable is one binary inside an installed JDK.
	Executable = core.Executable

	// ExecutableSet maps binary names to their locations.
	ExecutableSet = core.ExecutableSet

	// VersionList is the result of listing versions.
	VersionList = core.VersionList

	// ToolMetadata describes the plugin to its host.
	ToolMetadata = core.ToolMetadata
)

// Re-export platform types
type (
	// Triple identifies a host platform.
	Triple = platform.Triple

	OS   = platform.OS
	Arch = platform.Arch
	Libc = platform.Libc
)

// Re-export types from client
type (
	// Client is an HTTP client for the Adoptium API.
	Client = client.Client

	// RateLimiter controls request pacing.
	RateLimiter = client.RateLimiter
)

// Re-export constants
const (
	Linux   = platform.Linux
	MacOS   = platform.MacOS
	Windows = platform.Windows

	X86     = platform.X86
	X64     = platform.X64
	Arm     = platform.Arm
	Arm64   = platform.Arm64
	Riscv64 = platform.Riscv64
	S390x   = platform.S390x

	Gnu  = platform.Gnu
	Musl = platform.Musl

	LatestAlias = core.LatestAlias
)

// Re-export errors
var (
	ErrUnsupportedPlatform = core.ErrUnsupportedPlatform
	ErrNoBinaries          = core.ErrNoBinaries
	ErrUnsupportedVersion  = core.ErrUnsupportedVersion
	ErrUpstreamUnreachable = core.ErrUpstreamUnreachable
	ErrMalformedResponse   = core.ErrMalformedResponse
)

// Error types
type (
	HTTPError                = client.HTTPError
	RateLimitError           = client.RateLimitError
	UnsupportedPlatformError = core.UnsupportedPlatformError
	NoBinariesError          = core.NoBinariesError
	VersionError             = core.VersionError
)

// Tool implements the plugin operations.
type Tool = tool.Tool

// New creates a Tool backed by the API at baseURL.
// If baseURL is empty, the public Adoptium API is used.
// If c is nil, DefaultClient() is used.
func New(baseURL string, c *Client) *Tool {
	return tool.New(newResolver(baseURL, c))
}

func newResolver(baseURL string, c *Client) *release.Resolver {
	if c == nil {
		return release.New(baseURL, nil)
	}
	return release.New(baseURL, c)
}

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - no retries
// - DNS-cached transport
func DefaultClient() *Client {
	return client.DefaultClient()
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	return client.NewClient(opts...)
}

// Option configures a Client.
type Option = client.Option

// WithTimeout sets the HTTP client timeout.
var WithTimeout = client.WithTimeout

// WithMaxRetries sets the maximum number of retries.
var WithMaxRetries = client.WithMaxRetries

// WithCircuitBreaker enables per-host circuit breaking.
var WithCircuitBreaker = client.WithCircuitBreaker

// DetectPlatform returns the platform of the running process.
func DetectPlatform() Triple {
	return platform.Detect()
}

// ParseVersion parses a "{major}.{minor}.{patch}+{build}" version string.
func ParseVersion(s string) (SemanticVersion, error) {
	return core.ParseVersion(s)
}

// ReleaseName returns the upstream release name for a version string,
// for example "jdk-17.0.2+8" or "jdk8u412-b08".
func ReleaseName(version string) (string, error) {
	v, err := core.ParseVersion(version)
	if err != nil {
		return "", err
	}
	return release.Name(v), nil
}

// ListVersions lists the GA versions available for a platform, newest
// first, with the "latest" alias bound to the first entry. The API base
// URL is taken from ADOPTIUM_API_URL when set.
func ListVersions(ctx context.Context, t Triple, c *Client) (VersionList, error) {
	return tool.New(newResolver(client.BaseURLFromEnv(), c)).LoadVersions(ctx, t)
}

// ResolveArtifact returns the archive for version on the given platform.
// The API base URL is taken from ADOPTIUM_API_URL when set.
func ResolveArtifact(ctx context.Context, t Triple, version string, c *Client) (*Artifact, error) {
	return tool.New(newResolver(client.BaseURLFromEnv(), c)).DownloadPrebuilt(ctx, t, version)
}

// LocateExecutables returns where the JDK binaries live inside an
// installed archive for the given operating system.
func LocateExecutables(os OS) ExecutableSet {
	return tool.LocateExecutables(os)
}

// PURL represents a parsed Package URL.
type PURL = purl.PURL

// ParsePURL parses a Package URL string, such as the one attached to a
// resolved Artifact.
func ParsePURL(purlStr string) (*PURL, error) {
	return purl.Parse(purlStr)
}
