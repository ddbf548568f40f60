package platform

import (
	"path/filepath"
	"runtime"
)

// muslLoaderGlob matches the dynamic loader shipped by musl distributions.
var muslLoaderGlob = "/lib/ld-musl-*.so.1"

// Detect returns the triple of the running process.
func Detect() Triple {
	os := ParseOS(runtime.GOOS)
	return Triple{
		OS:   os,
		Arch: ParseArch(runtime.GOARCH),
		Libc: detectLibc(os),
	}
}

func detectLibc(os OS) Libc {
	if os != Linux {
		return Gnu
	}
	if matches, _ := filepath.Glob(muslLoaderGlob); len(matches) > 0 {
		return Musl
	}
	return Gnu
}
