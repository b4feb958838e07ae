package domain

import (
	"runtime"
	"strconv"

	"go.trai.ch/zerr"
)

// PlatformTag is a conda subdir name such as "linux-64" or "noarch".
type PlatformTag string

// NoarchPlatform is the architecture independent subdir.
const NoarchPlatform PlatformTag = "noarch"

// String returns the tag as a plain string.
func (p PlatformTag) String() string {
	return string(p)
}

// platformFamilies maps host operating system identifiers to conda platform families.
// Both Python style (linux2, win32) and Go style (windows) identifiers are accepted.
var platformFamilies = map[string]string{
	"linux":   "linux",
	"linux2":  "linux",
	"darwin":  "osx",
	"win32":   "win",
	"windows": "win",
	"zos":     "zos",
}

// ResolvePlatform derives the conda platform tag for a host.
// A non-empty override is returned verbatim without validation.
func ResolvePlatform(hostOS string, pointerBits int, override string) (PlatformTag, error) {
	if override != "" {
		return PlatformTag(override), nil
	}

	family, ok := platformFamilies[hostOS]
	if !ok {
		return "", zerr.With(zerr.Wrap(ErrUnsupportedPlatform, "no conda platform for host"), "host_os", hostOS)
	}

	return PlatformTag(family + "-" + strconv.Itoa(pointerBits)), nil
}

// HostPlatform resolves the platform tag of the running process.
func HostPlatform(override string) (PlatformTag, error) {
	return ResolvePlatform(runtime.GOOS, strconv.IntSize, override)
}
