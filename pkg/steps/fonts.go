package steps

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/devrig/devrig/pkg/paths"
	"github.com/devrig/devrig/pkg/platform"
	"github.com/devrig/devrig/pkg/runner"
)

// Fonts installs the configured nerd font into the user font directory
// and, on Linux, registers a fontconfig preference for it.
func Fonts() runner.Step {
	return runner.Step{
		Name: "fonts",
		Run:  runFonts,
	}
}

func runFonts(ctx context.Context, rc *runner.Context) runner.StepResult {
	cfg := rc.Config.Fonts
	if !cfg.Enabled || len(cfg.Files) == 0 {
		return runner.Skip("font installation disabled")
	}

	fontDir, err := paths.UserFontDir(goosFor(rc.Platform.Family))
	if err != nil {
		return runner.Failf("cannot resolve font dir: %v", err)
	}
	if err := os.MkdirAll(fontDir, 0o755); err != nil {
		return runner.Failf("cannot create %s: %v", fontDir, err)
	}

	installed := 0
	for _, f := range cfg.Files {
		if fileExists(filepath.Join(fontDir, f.Name)) {
			continue
		}
		if result := fetchFont(ctx, rc, f.URL, fontDir); result.Outcome == runner.Failed {
			return result
		}
		installed++
	}

	if rc.Platform.Family != platform.Darwin {
		if cfg.Fontconfig && installed > 0 {
			if err := writeFontconfig(cfg.Family); err != nil {
				return runner.Warn("fonts installed, fontconfig not written: %v", err)
			}
		}
		if installed > 0 {
			// Refresh the font cache so the new family resolves without
			// a logout.
			_, _ = rc.Runner.Run(ctx, []string{"fc-cache", "-f", fontDir}, runnerSilent())
		}
	}

	if installed == 0 {
		return runner.Skip("fonts already installed")
	}
	return runner.Success()
}

// fetchFont downloads one artifact into the cache and places it in
// fontDir, unpacking archives in place.
func fetchFont(ctx context.Context, rc *runner.Context, url, fontDir string) runner.StepResult {
	cacheDir := paths.CacheDir()
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return runner.Failf("cannot create %s: %v", cacheDir, err)
	}
	archive := filepath.Join(cacheDir, filepath.Base(url))

	result, err := rc.Runner.Run(ctx, []string{"curl", "-fsSL", "-o", archive, url}, runnerSilent())
	if err != nil {
		return runner.Failf("curl not runnable: %v", err)
	}
	if !result.Succeeded {
		return runner.Fail("download failed: "+result.CombinedOutput, result.ExitCode)
	}

	var unpack []string
	switch {
	case strings.HasSuffix(archive, ".zip"):
		unpack = []string{"unzip", "-o", archive, "-d", fontDir}
	case strings.HasSuffix(archive, ".tar.xz"), strings.HasSuffix(archive, ".tar.gz"):
		unpack = []string{"tar", "-xf", archive, "-C", fontDir}
	default:
		// Plain font file, move it into place.
		unpack = []string{"mv", archive, fontDir}
	}

	result, err = rc.Runner.Run(ctx, unpack, runnerSilent())
	if err != nil {
		return runner.Failf("%s not runnable: %v", unpack[0], err)
	}
	if !result.Succeeded {
		return runner.Fail("unpack failed: "+result.CombinedOutput, result.ExitCode)
	}
	return runner.Success()
}

// writeFontconfig registers family as the preferred monospace font via
// a user fontconfig document.
func writeFontconfig(family string) error {
	if family == "" {
		return nil
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)
	doc.CreateDirective(`DOCTYPE fontconfig SYSTEM "fonts.dtd"`)

	root := doc.CreateElement("fontconfig")
	alias := root.CreateElement("alias")
	alias.CreateElement("family").SetText("monospace")
	alias.CreateElement("prefer").CreateElement("family").SetText(family)

	dir := paths.FontconfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	doc.Indent(2)
	return doc.WriteToFile(filepath.Join(dir, "99-devrig-fonts.conf"))
}

func goosFor(family platform.Family) string {
	if family == platform.Darwin {
		return "darwin"
	}
	return "linux"
}
