package installer

import "github.com/devrig/devrig/pkg/platform"

// manager is one package manager invocation recipe: how to query the
// local package database and how to install non-interactively.
type manager struct {
	name    string
	check   []string
	install []string
}

func (m *manager) checkArgv(pkg string) []string {
	return append(append([]string{}, m.check...), pkg)
}

func (m *manager) installArgv(pkg string) []string {
	return append(append([]string{}, m.install...), pkg)
}

// managerFor selects the primary package manager for a platform.
// Returns nil when the family has none (OtherLinux, Unknown).
func managerFor(info platform.Info) *manager {
	switch info.PackageFamily() {
	case platform.Debian, platform.Ubuntu:
		return &manager{
			name:    "apt",
			check:   []string{"dpkg", "-s"},
			install: []string{"sudo", "apt-get", "install", "-y"},
		}
	case platform.Fedora:
		return &manager{
			name:    "dnf",
			check:   []string{"rpm", "-q"},
			install: []string{"sudo", "dnf", "install", "-y"},
		}
	case platform.Darwin:
		return brewManager()
	}
	return nil
}

// brewManager is the cross-platform fallback: primary on Darwin, tried
// on failure everywhere else when the brew binary is on the host.
func brewManager() *manager {
	return &manager{
		name:    "brew",
		check:   []string{"brew", "list"},
		install: []string{"brew", "install"},
	}
}
