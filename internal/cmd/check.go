package cmd

import (
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a newer Codex CLI release is available",
		Long: `Compare the installed Codex CLI version with the latest stable release
without changing anything. Exits with an error when the check cannot be
completed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd)
		},
	}
	addWrapperFlags(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	current, err := newProbe(cfg).CurrentVersion(cmd.Context())
	if err != nil {
		return err
	}

	resolver, err := newResolver(cfg)
	if err != nil {
		return err
	}
	latest, err := resolver.LatestStable(cmd.Context())
	if err != nil {
		return err
	}

	if !latest.Version.GreaterThan(current) {
		cmd.Printf("%s %s is up to date\n", cfg.Command, current)
		return nil
	}
	cmd.Printf("%s %s installed, %s available\n", cfg.Command, current, latest.Version)
	if latest.ReleaseNotes != "" {
		cmd.Printf("\n%s\n", latest.ReleaseNotes)
	}
	cmd.Printf("\nRun 'codexup update' to install\n")
	return nil
}
