package core

import (
	"strconv"

	"github.com/Masterminds/semver/v3"
)

// ParseVersion parses a fully qualified host version such as "25.0.1+8"
// or "8.0.472+8". The build metadata, when present, must be the numeric
// vendor build counter. Aliases, ranges and partial versions are rejected;
// the host resolves those before asking for a download.
func ParseVersion(input string) (SemanticVersion, error) {
	v, err := semver.StrictNewVersion(input)
	if err != nil {
		return SemanticVersion{}, &VersionError{Input: input, Reason: err.Error()}
	}
	if v.Prerelease() != "" {
		return SemanticVersion{}, &VersionError{Input: input, Reason: "pre-releases are not published"}
	}

	var build uint64
	if meta := v.Metadata(); meta != "" {
		build, err = strconv.ParseUint(meta, 10, 64)
		if err != nil {
			return SemanticVersion{}, &VersionError{Input: input, Reason: "build must be numeric"}
		}
	}

	return SemanticVersion{
		Major: v.Major(),
		Minor: v.Minor(),
		Patch: v.Patch(),
		Build: build,
	}, nil
}
