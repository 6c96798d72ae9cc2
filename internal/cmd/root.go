// Package cmd defines the codexup command line. The root command forwards
// everything to the Codex CLI after an update check; the subcommands expose
// the check and the update on their own.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool

	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// Execute runs the wrapper. Arguments that do not name a subcommand are
// handed to the Codex CLI untouched, flags included.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codexup [codex arguments]",
		Short: "Launch the Codex CLI, keeping it up to date",
		Long: `codexup checks for a newer Codex CLI release, updates the installation
when one is found, then launches codex with the given arguments. A failed
check never blocks the launch.

Every flag outside of a subcommand belongs to codex and is passed through;
the wrapper's own flags live on the subcommands.`,
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd.Context(), args)
		},
	}

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// addWrapperFlags registers the wrapper's own flags. The root command does
// not carry them: it parses nothing, so everything it receives goes to
// codex verbatim.
func addWrapperFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "Path to the configuration file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}
