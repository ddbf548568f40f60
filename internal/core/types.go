// Package core provides the value types and error kinds shared by the
// platform mapper, release resolver and plugin handlers.
package core

import "fmt"

// SemanticVersion is a JDK version. Build carries the vendor build counter,
// not semver build metadata.
type SemanticVersion struct {
	Major uint64
	Minor uint64
	Patch uint64
	Build uint64
}

// String formats the version the way the plugin host expects it:
// "{major}.{minor}.{patch}+{build}".
func (v SemanticVersion) String() string {
	return fmt.Sprintf("%d.%d.%d+%d", v.Major, v.Minor, v.Patch, v.Build)
}

// ReleaseVersion is one release reported by the release_versions endpoint.
// Upstream calls the patch component "security".
type ReleaseVersion struct {
	Major  uint64 `json:"major"`
	Minor  uint64 `json:"minor"`
	Patch  uint64 `json:"security"`
	Build  uint64 `json:"build"`
	Semver string `json:"semver"`
}

// Version returns the structured version of the record.
func (r ReleaseVersion) Version() SemanticVersion {
	return SemanticVersion{Major: r.Major, Minor: r.Minor, Patch: r.Patch, Build: r.Build}
}

// ChecksumAlgorithm names a digest algorithm.
type ChecksumAlgorithm string

const SHA256 ChecksumAlgorithm = "sha256"

// Checksum is the expected digest of a downloaded archive.
type Checksum struct {
	Algorithm ChecksumAlgorithm `json:"algorithm"`
	Hash      string            `json:"hash"`
}

// Artifact describes the archive to download for one release and platform.
type Artifact struct {
	DownloadURL   string   `json:"download_url"`
	Checksum      Checksum `json:"checksum"`
	ArchivePrefix string   `json:"archive_prefix"` // release name, the archive's top-level directory
	FileName      string   `json:"file_name,omitempty"`
	PURL          string   `json:"purl,omitempty"`
}

// Executable is one binary exposed from an installed archive.
type Executable struct {
	Path    string `json:"path"`
	Primary bool   `json:"primary,omitempty"`
}

// ExecutableSet maps logical binary names to their location under the
// installed archive root.
type ExecutableSet struct {
	Exes    map[string]Executable `json:"exes"`
	ExeDirs []string              `json:"exes_dirs"`
}

// Primary returns the name and entry of the primary executable.
func (s ExecutableSet) Primary() (string, Executable, bool) {
	for name, exe := range s.Exes {
		if exe.Primary {
			return name, exe, true
		}
	}
	return "", Executable{}, false
}

// VersionList is the result of listing available versions.
type VersionList struct {
	Versions []SemanticVersion          `json:"versions"`
	Aliases  map[string]SemanticVersion `json:"aliases"`
	Latest   SemanticVersion            `json:"latest"`
}

// PluginType is the kind of tool a plugin provides.
type PluginType string

const (
	Language    PluginType = "language"
	CommandLine PluginType = "command-line"
)

// ToolMetadata is returned when the plugin registers with the host.
type ToolMetadata struct {
	Name               string     `json:"name"`
	Type               PluginType `json:"type"`
	MinimumHostVersion string     `json:"minimum_host_version,omitempty"`
	PluginVersion      string     `json:"plugin_version,omitempty"`
	License            string     `json:"license,omitempty"`
}
