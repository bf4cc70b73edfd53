package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/devrig/devrig/internal/version"
	"github.com/devrig/devrig/pkg/config"
	"github.com/devrig/devrig/pkg/errors"
	"github.com/devrig/devrig/pkg/executor"
	"github.com/devrig/devrig/pkg/installer"
	"github.com/devrig/devrig/pkg/logging"
	"github.com/devrig/devrig/pkg/platform"
	"github.com/devrig/devrig/pkg/privilege"
	"github.com/devrig/devrig/pkg/runner"
	"github.com/devrig/devrig/pkg/steps"
	"github.com/devrig/devrig/pkg/style"
)

var (
	verbosity  int
	dryRun     bool
	configPath string
	genConfig  bool

	rootCmd = &cobra.Command{
		Use:   "devrig",
		Short: "Idempotent workstation provisioning",
		Long: `devrig brings a fresh macOS or Linux machine to a working
development setup: packages, shell, dotfiles, SSH key, fonts and
editor preferences. Every step checks its end state first, so re-runs
are safe and cheap.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runProvision,
	}
)

// Execute runs the root command. Called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Log commands without executing them")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the manifest file (default devrig.toml/devrig.yaml in the config dir)")
	rootCmd.Flags().BoolVar(&genConfig, "gen-config", false,
		"Print a commented manifest template and exit")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(completionCmd)
}

func runProvision(cmd *cobra.Command, args []string) error {
	if genConfig {
		fmt.Fprintln(cmd.OutOrStdout(), config.GenerateTemplate())
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	info := platform.Detect()
	log.Info().Str("platform", info.String()).Msg("Platform detected")

	exec := executor.New(verbosity > 0, dryRun)
	console := style.NewConsole()
	interactive := style.IsTTY(os.Stdin)

	keepAlive := privilege.New(exec)
	if !dryRun {
		if err := keepAlive.Start(cmd.Context()); err != nil {
			return err
		}
		defer keepAlive.Stop()
	}

	run := runner.New(console)
	rc := &runner.Context{
		Platform:    info,
		Runner:      exec,
		Installer:   installer.New(exec, info),
		Config:      cfg,
		Console:     console,
		Logger:      logging.GetLogger("steps"),
		Interactive: interactive,
	}

	report := run.Run(cmd.Context(), rc, steps.Build(cfg))

	console.Println()
	console.Println(style.RenderSummary(report.Summary(info), style.IsTTY(os.Stderr) && style.ColorEnabled()))

	if report.Fatal != nil {
		return errors.Newf(errors.ErrStepFatal, "provisioning aborted at step %q", report.Fatal.Name)
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Load the manifest (embedded defaults, user file, DEVRIG_* environment
overrides) and print the merged result as TOML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		dump, err := config.Dump(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), dump)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("devrig version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:                   "completion [bash|zsh|fish|powershell]",
	Short:                 "Generate shell completion script",
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate bash completion")
			}
		case "zsh":
			if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate zsh completion")
			}
		case "fish":
			if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
				log.Error().Err(err).Msg("Failed to generate fish completion")
			}
		case "powershell":
			if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate powershell completion")
			}
		}
	},
}
