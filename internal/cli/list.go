// The "jungle list" command, which is also what a bare `jungle`
// invocation runs.
//
// The command discovers every worktree of the surrounding repository,
// classifies each one's branch and dirty state, and renders the result
// as a compact symbol-coded listing or (with --table) a tabular view.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jungle-sh/jungle/internal/git"
	"github.com/jungle-sh/jungle/internal/model"
	"github.com/jungle-sh/jungle/internal/worktree"
)

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all worktrees with status",
		Long: `List every worktree of the surrounding repository with its branch
and a dirty/clean classification.

Examples:
  jungle
  jungle list
  jungle list --table`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList()
		},
	}
}

// repoContext resolves the pieces every command needs: the git runner,
// the repository query layer, the primary root, and the invocation
// directory. Fails with NotARepository outside a git checkout.
func repoContext() (*git.Runner, *worktree.Repository, string, string, error) {
	g := git.NewRunner()
	repo := worktree.NewRepository(g)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, "", "", model.WrapCLIError(model.ExitGeneralError, "cannot determine current directory", err)
	}

	root, err := repo.Root(cwd)
	if err != nil {
		return nil, nil, "", "", err
	}

	return g, repo, root, cwd, nil
}

func runList() error {
	_, repo, root, cwd, err := repoContext()
	if err != nil {
		return err
	}
	VerboseLog("repository root: %s", root)

	trees := repo.Collect(root, cwd)
	VerboseLog("discovered %d worktree(s)", len(trees))

	printWorktrees(trees)
	return nil
}
