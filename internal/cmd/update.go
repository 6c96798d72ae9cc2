package cmd

import (
	"github.com/spf13/cobra"

	"github.com/codexup/codexup/internal/updater"
)

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the Codex CLI to the latest stable release",
		Long: `Check for a newer Codex CLI release and install it without launching.
Unlike the default launch path, a failed update is reported as an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd)
		},
	}
	addWrapperFlags(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	u, err := newUpdater(cfg)
	if err != nil {
		return err
	}

	_, outcome := u.Run(cmd.Context())
	switch outcome.Status {
	case updater.AlreadyCurrent:
		cmd.Printf("%s %s is up to date\n", cfg.Command, outcome.From)
	case updater.Updated:
		cmd.Printf("%s updated from %s to %s\n", cfg.Command, outcome.From, outcome.To)
	case updater.Failed:
		return outcome.Err
	}
	return nil
}
