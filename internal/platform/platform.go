// Package platform maps host platform triples onto the Adoptium API
// vocabulary.
package platform

import (
	"fmt"
	"strings"

	"github.com/git-pkgs/adoptium/internal/core"
)

// OS is a host operating system as reported by the plugin host.
type OS string

const (
	Linux     OS = "linux"
	MacOS     OS = "macos"
	Windows   OS = "windows"
	Android   OS = "android"
	Dragonfly OS = "dragonfly"
	FreeBSD   OS = "freebsd"
	IOS       OS = "ios"
	NetBSD    OS = "netbsd"
	OpenBSD   OS = "openbsd"
	Solaris   OS = "solaris"
)

// Arch is a host CPU architecture as reported by the plugin host.
type Arch string

const (
	X86         Arch = "x86"
	X64         Arch = "x64"
	Arm         Arch = "arm"
	Arm64       Arch = "arm64"
	Loongarch64 Arch = "loongarch64"
	M68k        Arch = "m68k"
	Mips        Arch = "mips"
	Mips64      Arch = "mips64"
	Powerpc     Arch = "powerpc"
	Powerpc64   Arch = "powerpc64"
	Riscv64     Arch = "riscv64"
	S390x       Arch = "s390x"
	Sparc64     Arch = "sparc64"
)

// Libc is the C library flavor of a Linux host.
type Libc string

const (
	Gnu  Libc = "gnu"
	Musl Libc = "musl"
)

// Triple identifies the target runtime environment.
type Triple struct {
	OS   OS   `json:"os"`
	Arch Arch `json:"arch"`
	Libc Libc `json:"libc"`
}

func (t Triple) String() string {
	return fmt.Sprintf("%s/%s/%s", t.OS, t.Arch, t.Libc)
}

// APIArch returns the architecture name used by the Adoptium API.
// Unrecognized values pass through unchanged.
func (a Arch) APIArch() string {
	switch a {
	case Arm64:
		return "aarch64"
	case Powerpc64:
		return "ppc64le"
	case X86, X64, Arm, Loongarch64, M68k, Mips, Mips64, Powerpc, Riscv64, S390x, Sparc64:
		return string(a)
	default:
		return string(a)
	}
}

// APIOS returns the operating system name used by the Adoptium API.
// musl based Linux is published separately as "alpine-linux".
func APIOS(os OS, libc Libc) string {
	switch os {
	case Linux:
		if libc == Musl {
			return "alpine-linux"
		}
		return "linux"
	case MacOS:
		return "mac"
	case Windows, Android, Dragonfly, FreeBSD, IOS, NetBSD, OpenBSD, Solaris:
		return string(os)
	default:
		return string(os)
	}
}

// Map converts a triple into the API's (architecture, os) pair.
// It is total: every input yields a pair and never an error.
func Map(t Triple) (apiArch, apiOS string) {
	return t.Arch.APIArch(), APIOS(t.OS, t.Libc)
}

// supported lists the OS and architecture pairs Adoptium publishes builds for.
var supported = map[OS][]Arch{
	Linux:   {X64, Arm64, Arm, Riscv64, S390x},
	MacOS:   {X64, Arm64},
	Windows: {X86, X64, Arm64},
}

// IsSupported reports whether the triple's OS and architecture are in the
// supported matrix. Libc does not affect support.
func (t Triple) IsSupported() bool {
	for _, arch := range supported[t.OS] {
		if arch == t.Arch {
			return true
		}
	}
	return false
}

// CheckSupported returns an *core.UnsupportedPlatformError when the
// triple is outside the supported matrix.
func (t Triple) CheckSupported(tool string) error {
	if t.IsSupported() {
		return nil
	}
	return &core.UnsupportedPlatformError{Tool: tool, OS: string(t.OS), Arch: string(t.Arch)}
}

// ExeName returns the file name of an executable on os.
func (os OS) ExeName(name string) string {
	if os == Windows {
		return name + ".exe"
	}
	return name
}

// ParseOS accepts the host's OS names plus common aliases such as GOOS
// values. Unknown names are kept as-is.
func ParseOS(s string) OS {
	switch strings.ToLower(s) {
	case "darwin", "mac", "macos", "osx":
		return MacOS
	case "illumos", "sunos":
		return Solaris
	default:
		return OS(strings.ToLower(s))
	}
}

// ParseArch accepts the host's architecture names plus common aliases such
// as GOARCH values and uname -m output. Unknown names are kept as-is.
func ParseArch(s string) Arch {
	switch strings.ToLower(s) {
	case "amd64", "x86_64", "x64":
		return X64
	case "386", "i386", "i686", "x86":
		return X86
	case "arm64", "aarch64":
		return Arm64
	case "arm", "armv7", "armv7l", "armv6l":
		return Arm
	case "ppc64", "ppc64le", "powerpc64":
		return Powerpc64
	case "ppc", "powerpc":
		return Powerpc
	case "loong64", "loongarch64":
		return Loongarch64
	case "mips", "mipsle":
		return Mips
	case "mips64", "mips64le":
		return Mips64
	case "sparc64", "sparcv9":
		return Sparc64
	default:
		return Arch(strings.ToLower(s))
	}
}

// ParseLibc returns Musl for "musl" and Gnu for anything else.
func ParseLibc(s string) Libc {
	if strings.EqualFold(s, "musl") {
		return Musl
	}
	return Gnu
}
