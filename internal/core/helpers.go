package core

// LatestAlias is the alias bound to the newest listed version.
const LatestAlias = "latest"

// NewVersionList converts upstream records into a VersionList, keeping
// upstream order. Latest is the first record: the release_versions
// endpoint returns newest first, an ordering upstream does not document.
// An empty listing yields 0.0.0+0.
func NewVersionList(records []ReleaseVersion) VersionList {
	versions := make([]SemanticVersion, len(records))
	for i, r := range records {
		versions[i] = r.Version()
	}

	var latest SemanticVersion
	if len(versions) > 0 {
		latest = versions[0]
	}

	return VersionList{
		Versions: versions,
		Aliases:  map[string]SemanticVersion{LatestAlias: latest},
		Latest:   latest,
	}
}
