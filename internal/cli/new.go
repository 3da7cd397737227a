// The "jungle new" command.
//
// The command creates a worktree for the named branch, creating the
// branch too when it exists neither locally nor as origin/<branch>.
// Without --path the tree lands under the trees directory, the branch
// name flattened (`feature/login` → `trees/feature-login`). Configured
// auxiliary files (default: .env) are copied into the new tree
// best-effort, and the updated listing is shown afterwards.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jungle-sh/jungle/internal/config"
	"github.com/jungle-sh/jungle/internal/worktree"
)

type newFlags struct {
	path string // --path: custom worktree directory
}

// NewNewCommand creates the "new" cobra command.
func NewNewCommand() *cobra.Command {
	flags := &newFlags{}

	cmd := &cobra.Command{
		Use:   "new <branch>",
		Short: "Create worktree (creates branch if needed)",
		Long: `Create a worktree for the given branch. If the branch does not exist
locally or on origin, it is created together with the worktree.

Examples:
  jungle new feature/login
  jungle new bugfix --path ./fix`,

		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.path, "path", "", "Custom path for the new worktree (default: ./trees/<branch>)")

	return cmd
}

func runNew(branch string, flags *newFlags) error {
	g, repo, root, cwd, err := repoContext()
	if err != nil {
		return err
	}

	cfg, cfgErr := config.Load(root)
	if cfgErr != nil {
		fmt.Println(styleYellow.Render(fmt.Sprintf("⚠️  Ignoring broken config: %v", cfgErr)))
	}

	lc := worktree.NewLifecycle(g, repo, cfg, nil)
	res, err := lc.Create(root, branch, flags.path)
	if err != nil {
		return err
	}

	if res.BranchExisted {
		fmt.Printf("%s Created worktree for existing branch %s at %s\n",
			styleGreen.Render("✓"), styleBlue.Render(branch), styleCyan.Render(res.Path))
	} else {
		fmt.Printf("%s Created new branch %s with worktree at %s\n",
			styleGreen.Render("✓"), styleBlue.Render(branch), styleCyan.Render(res.Path))
	}

	for _, name := range res.CopiedFiles {
		fmt.Println(styleDim.Render("📄 Copied " + name + " to worktree"))
	}
	for _, warn := range res.CopyWarnings {
		fmt.Println(styleYellow.Render("⚠️  " + warn))
	}

	fmt.Println()
	fmt.Println(styleBold.Render("Updated worktrees:"))
	fmt.Print(formatCompact(repo.Collect(root, cwd)))
	return nil
}
