package release

import (
	"fmt"
	"strconv"

	"github.com/git-pkgs/adoptium/internal/core"
)

// Name returns the vendor release name for a version.
//
// From Java 9 onward releases are named jdk-{major}[.{minor}[.{patch}]]+{build},
// dropping trailing zero components but always keeping the build. Java 8
// uses the legacy jdk8u{update}-b{build} form, where the update number is
// carried in Patch. The build is padded to two digits only when it is a
// single digit, so b08 and b12 but also b100.
func Name(v core.SemanticVersion) string {
	if v.Major >= 9 {
		switch {
		case v.Minor == 0 && v.Patch == 0:
			return fmt.Sprintf("jdk-%d+%d", v.Major, v.Build)
		case v.Patch == 0:
			return fmt.Sprintf("jdk-%d.%d+%d", v.Major, v.Minor, v.Build)
		default:
			return fmt.Sprintf("jdk-%d.%d.%d+%d", v.Major, v.Minor, v.Patch, v.Build)
		}
	}

	build := strconv.FormatUint(v.Build, 10)
	if len(build) == 1 {
		build = "0" + build
	}
	return fmt.Sprintf("jdk%du%d-b%s", v.Major, v.Patch, build)
}
