package installer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devrig/devrig/pkg/executor"
	"github.com/devrig/devrig/pkg/platform"
	"github.com/devrig/devrig/pkg/testutil"
)

func newTestInstaller(fake *testutil.FakeRunner, info platform.Info, haveBrew bool) *Installer {
	inst := New(fake, info)
	inst.brewAvailable = func() bool { return haveBrew }
	return inst
}

var ubuntu = platform.Info{Family: platform.Ubuntu, Arch: platform.Amd64}
var fedora = platform.Info{Family: platform.Fedora, Arch: platform.Amd64}
var darwin = platform.Info{Family: platform.Darwin, Arch: platform.Arm64}

func failing(line string) map[string]executor.Result {
	return map[string]executor.Result{
		line: {ExitCode: 1, Succeeded: false},
	}
}

func TestAlreadyPresentSkipsInstall(t *testing.T) {
	fake := &testutil.FakeRunner{} // every command succeeds, so dpkg -s finds it
	inst := newTestInstaller(fake, ubuntu, false)

	result := inst.EnsureInstalled(context.Background(), Spec{Name: "git"})

	assert.Equal(t, AlreadyPresent, result.Outcome)
	assert.Equal(t, []string{"dpkg -s git"}, fake.Lines())
	assert.Zero(t, fake.CallsMatching("sudo apt-get"), "no installer invoked when present")
}

func TestInstallWhenMissing(t *testing.T) {
	fake := &testutil.FakeRunner{Results: failing("dpkg -s tmux")}
	inst := newTestInstaller(fake, ubuntu, false)

	result := inst.EnsureInstalled(context.Background(), Spec{Name: "tmux"})

	assert.Equal(t, Installed, result.Outcome)
	assert.Equal(t, []string{"dpkg -s tmux", "sudo apt-get install -y tmux"}, fake.Lines())
}

func TestPerFamilyNameOverride(t *testing.T) {
	spec := Spec{
		Name:      "ssh-askpass",
		Overrides: map[platform.Family]string{platform.Fedora: "openssh-askpass"},
	}

	fake := &testutil.FakeRunner{Results: failing("rpm -q openssh-askpass")}
	inst := newTestInstaller(fake, fedora, false)

	result := inst.EnsureInstalled(context.Background(), spec)

	assert.Equal(t, Installed, result.Outcome)
	assert.Equal(t, []string{"rpm -q openssh-askpass", "sudo dnf install -y openssh-askpass"}, fake.Lines())
}

func TestPopOSUsesApt(t *testing.T) {
	pop := platform.Info{Family: platform.PopOS, Arch: platform.Amd64}
	fake := &testutil.FakeRunner{Results: failing("dpkg -s zsh")}
	inst := newTestInstaller(fake, pop, false)

	result := inst.EnsureInstalled(context.Background(), Spec{Name: "zsh"})

	assert.Equal(t, Installed, result.Outcome)
	assert.Equal(t, 1, fake.CallsMatching("sudo apt-get install -y zsh"))
}

func TestBrewFallbackAfterPrimaryFailure(t *testing.T) {
	fake := &testutil.FakeRunner{Results: map[string]executor.Result{
		"dpkg -s fzf":                 {ExitCode: 1},
		"brew list fzf":               {ExitCode: 1},
		"sudo apt-get install -y fzf": {ExitCode: 100, CombinedOutput: "E: Unable to locate package fzf"},
	}}
	inst := newTestInstaller(fake, ubuntu, true)

	result := inst.EnsureInstalled(context.Background(), Spec{Name: "fzf"})

	assert.Equal(t, Installed, result.Outcome)
	assert.Equal(t, []string{
		"dpkg -s fzf",
		"brew list fzf",
		"sudo apt-get install -y fzf",
		"brew install fzf",
	}, fake.Lines())
	assert.Equal(t, 2, fake.CallsMatching("sudo apt-get install")+fake.CallsMatching("brew install"),
		"exactly two install attempts: primary then fallback")
}

func TestBrewFallbackUsesLogicalName(t *testing.T) {
	spec := Spec{
		Name:      "ssh-askpass",
		Overrides: map[platform.Family]string{platform.Fedora: "openssh-askpass"},
	}
	fake := &testutil.FakeRunner{Results: map[string]executor.Result{
		"rpm -q openssh-askpass":              {ExitCode: 1},
		"brew list ssh-askpass":               {ExitCode: 1},
		"sudo dnf install -y openssh-askpass": {ExitCode: 1},
	}}
	inst := newTestInstaller(fake, fedora, true)

	result := inst.EnsureInstalled(context.Background(), spec)

	assert.Equal(t, Installed, result.Outcome)
	assert.Equal(t, 1, fake.CallsMatching("brew install ssh-askpass"))
}

func TestPresentViaBrewOnLinux(t *testing.T) {
	// Installed earlier by hand with brew: the presence check must see
	// it and never reinstall.
	fake := &testutil.FakeRunner{Results: failing("dpkg -s ripgrep")}
	inst := newTestInstaller(fake, ubuntu, true)

	result := inst.EnsureInstalled(context.Background(), Spec{Name: "ripgrep"})

	assert.Equal(t, AlreadyPresent, result.Outcome)
	assert.Equal(t, []string{"dpkg -s ripgrep", "brew list ripgrep"}, fake.Lines())
}

func TestFailedWhenAllAttemptsFail(t *testing.T) {
	fake := &testutil.FakeRunner{Results: map[string]executor.Result{
		"dpkg -s xyz":                 {ExitCode: 1},
		"brew list xyz":               {ExitCode: 1},
		"sudo apt-get install -y xyz": {ExitCode: 100, CombinedOutput: "E: Unable to locate package xyz"},
		"brew install xyz":            {ExitCode: 1, CombinedOutput: "Error: No formulae found"},
	}}
	inst := newTestInstaller(fake, ubuntu, true)

	result := inst.EnsureInstalled(context.Background(), Spec{Name: "xyz"})

	assert.Equal(t, Failed, result.Outcome)
	assert.Contains(t, result.Detail, "No formulae found")
}

func TestNoManagerNoBrew(t *testing.T) {
	other := platform.Info{Family: platform.OtherLinux, Arch: platform.Amd64}
	fake := &testutil.FakeRunner{}
	inst := newTestInstaller(fake, other, false)

	result := inst.EnsureInstalled(context.Background(), Spec{Name: "git"})

	assert.Equal(t, Failed, result.Outcome)
	assert.Empty(t, fake.Calls, "nothing to invoke without a manager")
}

func TestDarwinBrewIsPrimaryNoDoubleAttempt(t *testing.T) {
	fake := &testutil.FakeRunner{Results: map[string]executor.Result{
		"brew list git":    {ExitCode: 1},
		"brew install git": {ExitCode: 1, CombinedOutput: "Error: failure"},
	}}
	inst := newTestInstaller(fake, darwin, true)

	result := inst.EnsureInstalled(context.Background(), Spec{Name: "git"})

	assert.Equal(t, Failed, result.Outcome)
	assert.Equal(t, 1, fake.CallsMatching("brew install git"), "brew not retried as its own fallback")
}

func TestSpawnFailureTreatedAsFailedAttempt(t *testing.T) {
	fake := &testutil.FakeRunner{
		Results: map[string]executor.Result{
			"dpkg -s htop":   {ExitCode: 1, Succeeded: false},
			"brew list htop": {ExitCode: 1, Succeeded: false},
		},
		Errors: map[string]error{
			"sudo apt-get install -y htop": assert.AnError,
		},
	}
	inst := newTestInstaller(fake, ubuntu, true)

	result := inst.EnsureInstalled(context.Background(), Spec{Name: "htop"})

	assert.Equal(t, Installed, result.Outcome, "fallback still runs after spawn failure")
	assert.Equal(t, 1, fake.CallsMatching("brew install htop"))
}
