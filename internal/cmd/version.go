package cmd

import (
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the wrapper and Codex CLI versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd)
		},
	}
	addWrapperFlags(cmd)
	return cmd
}

func runVersion(cmd *cobra.Command) error {
	cmd.Printf("codexup %s (%s, built %s)\n", buildVersion, buildCommit, buildDate)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	current, err := newProbe(cfg).CurrentVersion(cmd.Context())
	if err != nil {
		cmd.Printf("%s: version unavailable (%s)\n", cfg.Command, err)
		return nil
	}
	cmd.Printf("%s %s\n", cfg.Command, current)
	return nil
}
