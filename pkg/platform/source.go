package platform

import (
	"os"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/devrig/devrig/pkg/logging"
)

// Source supplies the raw system identification inputs that detection
// reads. Production uses hostSource; tests supply fixtures.
type Source interface {
	// Kernel returns a kernel identification string, in the spirit of
	// `uname -a`: OS name plus kernel version plus platform hints.
	Kernel() string

	// OSRelease returns the content of the os-release file and whether
	// one was readable.
	OSRelease() (string, bool)

	// HasDebianVersion reports whether the Debian version marker file
	// exists.
	HasDebianVersion() bool

	// Machine returns the raw machine hardware name (uname -m).
	Machine() string
}

// hostSource reads identification from the running host. Kernel facts
// come from gopsutil, the release descriptor straight from /etc.
type hostSource struct{}

func (hostSource) Kernel() string {
	parts := []string{runtime.GOOS}
	info, err := host.Info()
	if err != nil {
		logger := logging.GetLogger("platform")
		logger.Debug().Err(err).Msg("host info unavailable")
		return runtime.GOOS
	}
	if info.KernelVersion != "" {
		parts = append(parts, info.KernelVersion)
	}
	if info.Platform != "" {
		parts = append(parts, info.Platform)
	}
	return strings.Join(parts, " ")
}

func (hostSource) OSRelease() (string, bool) {
	for _, path := range []string{"/etc/os-release", "/usr/lib/os-release"} {
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), true
		}
	}
	return "", false
}

func (hostSource) HasDebianVersion() bool {
	_, err := os.Stat("/etc/debian_version")
	return err == nil
}

func (hostSource) Machine() string {
	info, err := host.Info()
	if err != nil || info.KernelArch == "" {
		return runtime.GOARCH
	}
	return info.KernelArch
}
