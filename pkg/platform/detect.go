package platform

import (
	"strconv"
	"strings"
	"sync"

	"github.com/devrig/devrig/pkg/logging"
)

var (
	detectOnce sync.Once
	detected   Info
)

// Detect returns the host platform snapshot. The result is memoized
// for the process lifetime; callers may call repeatedly without
// performance concern. Detection never fails: unreadable sources
// degrade to Unknown/zero defaults.
func Detect() Info {
	detectOnce.Do(func() {
		detected = DetectFrom(hostSource{})
		logger := logging.GetLogger("platform")
		logger.Debug().
			Str("family", string(detected.Family)).
			Str("codename", detected.Codename).
			Int("major", detected.VersionMajor).
			Int("minor", detected.VersionMinor).
			Str("arch", string(detected.Arch)).
			Msg("Platform detected")
	})
	return detected
}

// DetectFrom computes platform facts from an explicit source. Pure with
// respect to program state; exported for fixture-driven tests.
func DetectFrom(src Source) Info {
	release := parseOSRelease(src)

	info := Info{
		Family:   detectFamily(src, release),
		Codename: release["VERSION_CODENAME"],
		Arch:     normalizeArch(src.Machine()),
	}
	info.VersionMajor, info.VersionMinor = parseVersion(release["VERSION_ID"])
	return info
}

// detectFamily classifies the host. Pop!_OS must be recognized before
// any generic Debian/Ubuntu check, since its base would otherwise
// misclassify it.
func detectFamily(src Source, release map[string]string) Family {
	kernel := strings.ToLower(src.Kernel())
	if strings.Contains(kernel, "darwin") {
		return Darwin
	}

	switch release["ID"] {
	case "pop":
		return PopOS
	case "fedora":
		return Fedora
	case "ubuntu":
		return Ubuntu
	case "debian":
		return Debian
	}

	if strings.Contains(kernel, "ubuntu") {
		return Ubuntu
	}
	if strings.Contains(kernel, "debian") || src.HasDebianVersion() {
		return Debian
	}

	if len(release) > 0 {
		return OtherLinux
	}
	return Unknown
}

// parseOSRelease splits KEY=value lines, stripping surrounding quotes.
// A missing or malformed file yields an empty map, never an error.
func parseOSRelease(src Source) map[string]string {
	fields := make(map[string]string)
	content, ok := src.OSRelease()
	if !ok {
		return fields
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"'`)
		fields[strings.TrimSpace(key)] = value
	}
	return fields
}

// parseVersion extracts major/minor from a VERSION_ID-style field.
// "22.04" -> 22, 4; "38" -> 38, 0; anything unparseable -> 0, 0.
func parseVersion(versionID string) (major, minor int) {
	if versionID == "" {
		return 0, 0
	}

	majorStr, rest, _ := strings.Cut(versionID, ".")
	major, err := strconv.Atoi(leadingDigits(majorStr))
	if err != nil {
		return 0, 0
	}

	if rest != "" {
		if m, err := strconv.Atoi(leadingDigits(rest)); err == nil {
			minor = m
		}
	}
	return major, minor
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

// normalizeArch maps raw machine hardware names onto the two
// architectures devrig provisions for. Anything unrecognized is
// treated as amd64.
func normalizeArch(machine string) Arch {
	machine = strings.ToLower(machine)
	if machine == "aarch64" || strings.Contains(machine, "arm") {
		return Arm64
	}
	return Amd64
}
