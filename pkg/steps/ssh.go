package steps

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/devrig/devrig/pkg/config"
	"github.com/devrig/devrig/pkg/paths"
	"github.com/devrig/devrig/pkg/runner"
)

// SSHKey generates the forge SSH key if it does not exist, then walks
// the user through registering it: print the public key, wait for
// confirmation, probe the forge, and re-prompt until the probe passes.
// Fatal because the dotfiles clone authenticates with this key.
func SSHKey(cfg config.SSHConfig) runner.Step {
	s := &sshStep{cfg: cfg, prompt: stdinPrompt}
	return runner.Step{
		Name:  "ssh key",
		Fatal: true,
		Run:   s.run,
	}
}

type sshStep struct {
	cfg config.SSHConfig

	// prompt shows msg and returns one line of user input. Injectable
	// for tests.
	prompt func(msg string) (string, error)
}

func (s *sshStep) run(ctx context.Context, rc *runner.Context) runner.StepResult {
	sshDir, err := paths.SSHDir()
	if err != nil {
		return runner.Failf("cannot resolve ~/.ssh: %v", err)
	}
	keyType := s.cfg.KeyType
	if keyType == "" {
		keyType = "ed25519"
	}
	keyPath, err := paths.SSHKeyPath(keyType)
	if err != nil {
		return runner.Failf("cannot resolve key path: %v", err)
	}

	generated := false
	if !fileExists(keyPath) {
		if err := os.MkdirAll(sshDir, 0o700); err != nil {
			return runner.Failf("cannot create %s: %v", sshDir, err)
		}
		argv := []string{"ssh-keygen", "-t", keyType, "-f", keyPath, "-N", ""}
		if s.cfg.KeyComment != "" {
			argv = append(argv, "-C", s.cfg.KeyComment)
		}
		result, err := rc.Runner.Run(ctx, argv, runnerSilent())
		if err != nil {
			return runner.Failf("ssh-keygen not runnable: %v", err)
		}
		if !result.Succeeded {
			return runner.Fail(result.CombinedOutput, result.ExitCode)
		}
		generated = true
	}

	if s.cfg.VerifyHost == "" {
		return s.done(generated, "no verification host configured")
	}
	if s.verify(ctx, rc) {
		return s.done(generated, "")
	}

	if !rc.Interactive {
		// No terminal to walk the user through forge registration.
		// Proceed and let the dotfiles clone surface the real error.
		return runner.Warn("key not verified against %s (no terminal)", s.cfg.VerifyHost)
	}

	pub, readErr := os.ReadFile(keyPath + ".pub")
	if readErr == nil {
		rc.Console.Println("\nAdd this public key to your forge account:\n\n" + strings.TrimSpace(string(pub)) + "\n")
	}

	for {
		answer, err := s.prompt(fmt.Sprintf(
			"Press Enter to verify against %s, or type 'skip' to continue without: ", s.cfg.VerifyHost))
		if err != nil {
			return runner.Warn("key not verified against %s: %v", s.cfg.VerifyHost, err)
		}
		if strings.EqualFold(strings.TrimSpace(answer), "skip") {
			return runner.Warn("key verification skipped")
		}
		if s.verify(ctx, rc) {
			return s.done(generated, "")
		}
		rc.Console.Println("Authentication against " + s.cfg.VerifyHost + " failed, key not registered yet.")
	}
}

// verify probes the forge with the new key. Forges close `ssh -T` with
// exit 1 after a successful greeting, so only 255 (connection or auth
// failure) counts as unverified.
func (s *sshStep) verify(ctx context.Context, rc *runner.Context) bool {
	result, err := rc.Runner.Run(ctx, []string{
		"ssh", "-T", "-o", "StrictHostKeyChecking=accept-new", "-o", "BatchMode=yes", s.cfg.VerifyHost,
	}, runnerSilent())
	return err == nil && result.ExitCode != 255
}

func (s *sshStep) done(generated bool, caveat string) runner.StepResult {
	if caveat != "" {
		if generated {
			return runner.Warn("key generated, %s", caveat)
		}
		return runner.Skip("key already exists, %s", caveat)
	}
	if generated {
		return runner.Success()
	}
	return runner.Skip("key already exists and verified")
}

func stdinPrompt(msg string) (string, error) {
	fmt.Fprint(os.Stderr, msg)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return line, nil
}
