// Package cli implements the cobra-based commands for jungle.
//
// Each subcommand (list, new, delete, switch, branches, status) is
// defined in its own file within this package. This file defines the
// root command, the global flags, and the error-to-exit-code plumbing.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jungle-sh/jungle/internal/model"
)

// Global flag variables bound to cobra persistent flags on the root
// command, available to every subcommand.
var (
	// tableOutput switches the worktree listing from the compact
	// symbol-coded format to a tabular view.
	tableOutput bool

	// verbose enables trace output on stderr.
	verbose bool
)

// Version, Commit and Date are injected from the main package, where
// they are set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// Running jungle with no subcommand is the same as `jungle list`.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jungle",
		Short: "Git worktree manager",
		Long: `jungle lists, creates, deletes, and switches between git worktrees
of one shared repository.

New worktrees default to the ./trees/ directory, keeping checkouts
cleanly separated from the main project files (and easy to .gitignore
as a whole).

Status symbols:
  ✓ Clean       ? Untracked files
  ! Modified    S Staged changes
  M Mixed       ✗ Error`,

		// Errors are formatted by Execute; cobra must not print usage
		// or the error a second time.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&tableOutput, "table", false, "Use table format for worktree listings")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewNewCommand())
	rootCmd.AddCommand(NewDeleteCommand())
	rootCmd.AddCommand(NewSwitchCommand())
	rootCmd.AddCommand(NewBranchesCommand())
	rootCmd.AddCommand(NewStatusCommand())

	return rootCmd
}

// Execute runs the root command and translates errors into process
// exit codes. CLIError values carry their own code; anything else
// exits 1. The error text is printed as `Error: <message>` with git's
// stderr surfaced verbatim inside the message.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())

		if cliErr, ok := err.(*model.CLIError); ok {
			os.Exit(int(cliErr.Code))
		}
		os.Exit(int(model.ExitGeneralError))
	}
}

// VerboseLog prints a trace message to stderr when --verbose is set.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
