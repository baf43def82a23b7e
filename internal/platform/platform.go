// Package platform provides OS detection and per-OS naming helpers.
package platform

import (
	"runtime"
	"strings"
)

// Windows is the runtime.GOOS value of the Windows family.
const Windows = "windows"

// OS returns the operating system name (e.g., "darwin", "linux").
func OS() string {
	return runtime.GOOS
}

// IsWindows reports whether goos names a Windows host.
func IsWindows(goos string) bool {
	return strings.EqualFold(goos, Windows)
}

// BinaryName returns name with the executable extension goos expects.
//
//	windows -> test.exe
//	linux   -> test
func BinaryName(goos, name string) string {
	if IsWindows(goos) && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name + ".exe"
	}
	return name
}

// RunPath returns the path used to invoke binary from the working directory.
// The leading dot segment keeps exec from searching PATH for it.
func RunPath(goos, binary string) string {
	if IsWindows(goos) {
		return `.\` + binary
	}
	return "./" + binary
}
