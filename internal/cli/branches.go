// The "jungle branches" command: the recency-ranked branch listing
// with worktree cross-references.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jungle-sh/jungle/internal/branch"
	"github.com/jungle-sh/jungle/internal/config"
)

type branchesFlags struct {
	limit int // --limit: maximum records shown
}

// NewBranchesCommand creates the "branches" cobra command.
func NewBranchesCommand() *cobra.Command {
	flags := &branchesFlags{}

	cmd := &cobra.Command{
		Use:   "branches",
		Short: "List recent branches by activity",
		Long: `List local and origin branches ordered by most recent commit,
marking branches that currently have a worktree. A remote-tracking
branch is suppressed when its local counterpart is shown.

Examples:
  jungle branches
  jungle branches --limit 5`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBranches(cmd, flags)
		},
	}

	cmd.Flags().IntVar(&flags.limit, "limit", 0, "Number of branches to show (default: 10)")

	return cmd
}

func runBranches(cmd *cobra.Command, flags *branchesFlags) error {
	g, repo, root, _, err := repoContext()
	if err != nil {
		return err
	}

	limit := flags.limit
	if !cmd.Flags().Changed("limit") {
		// The config default only applies when the flag is absent.
		cfg, _ := config.Load(root)
		limit = cfg.BranchLimit
	}

	records, err := branch.NewLister(g, repo).ListRecent(root, limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println(styleYellow.Render("No branches found"))
		return nil
	}

	fmt.Print(formatBranches(records))
	return nil
}
