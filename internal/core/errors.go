package core

import (
	"errors"
	"fmt"

	"github.com/git-pkgs/adoptium/client"
)

var (
	// ErrUnsupportedPlatform is returned before any network call when the
	// host OS and architecture are outside the supported matrix.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNoBinaries is returned when upstream has no build for the
	// requested release on the requested platform.
	ErrNoBinaries = errors.New("no binaries available")

	// ErrUnsupportedVersion is returned when the host passes a version
	// that is not a fully qualified semantic version.
	ErrUnsupportedVersion = errors.New("unsupported version")

	ErrUpstreamUnreachable = client.ErrUpstreamUnreachable
	ErrMalformedResponse   = client.ErrMalformedResponse
)

// MalformedResponseError is re-exported from client.
type MalformedResponseError = client.MalformedResponseError

// UnsupportedPlatformError wraps ErrUnsupportedPlatform with the rejected
// platform.
type UnsupportedPlatformError struct {
	Tool string
	OS   string
	Arch string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unable to install %s, unsupported platform %s/%s", e.Tool, e.OS, e.Arch)
}

func (e *UnsupportedPlatformError) Unwrap() error {
	return ErrUnsupportedPlatform
}

// NoBinariesError wraps ErrNoBinaries with the release and platform that
// were queried.
type NoBinariesError struct {
	Release string
	OS      string
	Arch    string
}

func (e *NoBinariesError) Error() string {
	return fmt.Sprintf("API returned no binaries for %s on %s/%s", e.Release, e.OS, e.Arch)
}

func (e *NoBinariesError) Unwrap() error {
	return ErrNoBinaries
}

// VersionError wraps ErrUnsupportedVersion with the offending input.
type VersionError struct {
	Input  string
	Reason string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported version %q: %s", e.Input, e.Reason)
}

func (e *VersionError) Unwrap() error {
	return ErrUnsupportedVersion
}
