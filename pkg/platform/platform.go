// Package platform identifies the host operating system family,
// version and architecture. Detection runs once per process; every
// component that branches on OS consumes the same immutable Info.
package platform

import "fmt"

// Family is the coarse OS/distribution classification used to select
// a package manager.
type Family string

const (
	Darwin     Family = "darwin"
	Debian     Family = "debian"
	Ubuntu     Family = "ubuntu"
	PopOS      Family = "pop"
	Fedora     Family = "fedora"
	OtherLinux Family = "linux"
	Unknown    Family = "unknown"
)

// Arch is the normalized machine architecture.
type Arch string

const (
	Amd64 Arch = "amd64"
	Arm64 Arch = "arm64"
)

// Info is an immutable snapshot of host facts, computed once per run.
// VersionMajor/VersionMinor of 0 mean "version unknown", never "version 0".
type Info struct {
	Family       Family
	Codename     string
	VersionMajor int
	VersionMinor int
	Arch         Arch
}

// PackageFamily maps the detected family onto the lineage that decides
// the primary package manager. Pop!_OS is Ubuntu-compatible and must
// never be treated as plain Debian.
func (i Info) PackageFamily() Family {
	if i.Family == PopOS {
		return Ubuntu
	}
	return i.Family
}

// IsAptBased reports whether apt is the primary package manager.
func (i Info) IsAptBased() bool {
	switch i.PackageFamily() {
	case Debian, Ubuntu:
		return true
	}
	return false
}

func (i Info) String() string {
	if i.VersionMajor == 0 {
		return fmt.Sprintf("%s (%s)", i.Family, i.Arch)
	}
	if i.Codename != "" {
		return fmt.Sprintf("%s %d.%d %q (%s)", i.Family, i.VersionMajor, i.VersionMinor, i.Codename, i.Arch)
	}
	return fmt.Sprintf("%s %d.%d (%s)", i.Family, i.VersionMajor, i.VersionMinor, i.Arch)
}
