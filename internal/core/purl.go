package core

import (
	packageurl "github.com/package-url/packageurl-go"
)

// PURL wraps packageurl.PackageURL.
type PURL struct {
	packageurl.PackageURL
}

// ParsePURL parses a Package URL string into its components.
func ParsePURL(purl string) (*PURL, error) {
	p, err := packageurl.FromString(purl)
	if err != nil {
		return nil, err
	}
	return &PURL{p}, nil
}

// ArtifactPURL returns a pkg:generic/eclipse/temurin-jdk Package URL
// identifying a JDK build, qualified by API os and arch. The checksum
// qualifier is included when known.
func ArtifactPURL(version SemanticVersion, apiOS, apiArch string, checksum Checksum) string {
	qualifiers := map[string]string{
		"arch": apiArch,
		"os":   apiOS,
	}
	if checksum.Hash != "" {
		qualifiers["checksum"] = string(checksum.Algorithm) + ":" + checksum.Hash
	}

	p := packageurl.NewPackageURL(
		packageurl.TypeGeneric,
		"eclipse",
		"temurin-jdk",
		version.String(),
		packageurl.QualifiersFromMap(qualifiers),
		"",
	)
	return p.ToString()
}
