// Package tool implements the version-manager plugin contract for
// Eclipse Temurin JDKs.
package tool

import (
	"context"
	"fmt"

	"github.com/github/go-spdx/v2/spdxexp"
	"github.com/hashicorp/go-hclog"

	"github.com/git-pkgs/adoptium/internal/core"
	"github.com/git-pkgs/adoptium/internal/platform"
	"github.com/git-pkgs/adoptium/internal/release"
)

const (
	// Name is the display name reported to the host.
	Name = "Eclipse Adoptium OpenJDK"

	// License is the SPDX expression Temurin builds are distributed under.
	License = "GPL-2.0-only WITH Classpath-exception-2.0"

	// MinimumHostVersion is the oldest host this plugin supports.
	MinimumHostVersion = "0.46.0"
)

// binaries are the JDK executables exposed to the host. java is primary.
var binaries = []string{"java", "javac", "javadoc", "jar", "keytool"}

const primaryBinary = "java"

// Tool implements the plugin contract on top of a release.Resolver.
type Tool struct {
	resolver      *release.Resolver
	logger        hclog.Logger
	pluginVersion string
}

// Option configures a Tool.
type Option func(*Tool)

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(t *Tool) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithPluginVersion sets the version reported by RegisterTool.
func WithPluginVersion(v string) Option {
	return func(t *Tool) {
		t.pluginVersion = v
	}
}

// New creates a Tool. If resolver is nil, a resolver for the public API
// with the default client is used.
func New(resolver *release.Resolver, opts ...Option) *Tool {
	if resolver == nil {
		resolver = release.New("", nil)
	}
	t := &Tool{
		resolver: resolver,
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RegisterTool returns the plugin metadata.
func (t *Tool) RegisterTool() core.ToolMetadata {
	return core.ToolMetadata{
		Name:               Name,
		Type:               core.Language,
		MinimumHostVersion: MinimumHostVersion,
		PluginVersion:      t.pluginVersion,
		License:            License,
	}
}

// LicenseAllowed reports whether the SPDX expression license satisfies one
// of the allowed SPDX license identifiers. An empty allow list allows
// everything.
func LicenseAllowed(license string, allowed []string) (bool, error) {
	if len(allowed) == 0 {
		return true, nil
	}
	if license == "" {
		return false, fmt.Errorf("no license reported")
	}
	if ok, invalid := spdxexp.ValidateLicenses(allowed); !ok {
		return false, fmt.Errorf("invalid SPDX licenses: %v", invalid)
	}
	return spdxexp.Satisfies(license, allowed)
}

// LoadVersions lists every available version for the platform. The
// "latest" alias is bound to the first version upstream returns.
func (t *Tool) LoadVersions(ctx context.Context, triple platform.Triple) (core.VersionList, error) {
	records, err := t.resolver.FetchAllVersions(ctx, triple)
	if err != nil {
		return core.VersionList{}, fmt.Errorf("loading versions: %w", err)
	}

	list := core.NewVersionList(records)
	t.logger.Debug("loaded versions", "count", len(list.Versions), "latest", list.Latest.String())
	return list, nil
}

// DownloadPrebuilt resolves the archive for version on the platform.
// version must be fully qualified, e.g. "25.0.1+8". Platforms outside the
// supported matrix are rejected before any request is made.
func (t *Tool) DownloadPrebuilt(ctx context.Context, triple platform.Triple, version string) (*core.Artifact, error) {
	v, err := core.ParseVersion(version)
	if err != nil {
		return nil, err
	}

	if err := triple.CheckSupported(Name); err != nil {
		return nil, err
	}

	name := release.Name(v)
	t.logger.Debug("resolving artifact", "version", v.String(), "release", name, "platform", triple.String())

	artifact, err := t.resolver.FetchArtifact(ctx, triple, name)
	if err != nil {
		return nil, err
	}

	apiArch, apiOS := platform.Map(triple)
	artifact.PURL = core.ArtifactPURL(v, apiOS, apiArch, artifact.Checksum)
	return artifact, nil
}

// LocateExecutables describes where the JDK binaries live inside an
// installed archive. macOS archives are app bundles rooted at Contents/Home.
func LocateExecutables(os platform.OS) core.ExecutableSet {
	dir := "bin"
	if os == platform.MacOS {
		dir = "Contents/Home/bin"
	}

	exes := make(map[string]core.Executable, len(binaries))
	for _, bin := range binaries {
		exes[bin] = core.Executable{
			Path:    dir + "/" + os.ExeName(bin),
			Primary: bin == primaryBinary,
		}
	}

	return core.ExecutableSet{
		Exes:    exes,
		ExeDirs: []string{dir},
	}
}

// LocateExecutables is the method form of the package-level function.
func (t *Tool) LocateExecutables(triple platform.Triple) core.ExecutableSet {
	return LocateExecutables(triple.OS)
}
