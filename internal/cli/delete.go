// The "jungle delete" command (aliased as "remove").
//
// The command resolves the named worktree by basename or full path and
// removes it. Unless --force is given, an unmerged branch triggers a
// warning and an interactive confirmation; declining aborts cleanly
// with no side effects. The primary worktree is always refused.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jungle-sh/jungle/internal/config"
	"github.com/jungle-sh/jungle/internal/worktree"
)

type deleteFlags struct {
	force bool // --force: skip the merge-safety guard
}

// NewDeleteCommand creates the "delete" cobra command.
func NewDeleteCommand() *cobra.Command {
	flags := &deleteFlags{}

	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"remove"},
		Short:   "Delete worktree (with merge safety check)",
		Long: `Delete the named worktree. Before deleting, the worktree's branch is
checked against the merged-branch list of the configured base branches
(default: main, master, develop); an unmerged branch requires
confirmation.

Examples:
  jungle delete feature-login
  jungle remove bugfix --force`,

		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "Skip merge safety check when deleting")

	return cmd
}

func runDelete(name string, flags *deleteFlags) error {
	g, repo, root, cwd, err := repoContext()
	if err != nil {
		return err
	}

	cfg, cfgErr := config.Load(root)
	if cfgErr != nil {
		fmt.Println(styleYellow.Render(fmt.Sprintf("⚠️  Ignoring broken config: %v", cfgErr)))
	}

	lc := worktree.NewLifecycle(g, repo, cfg, promptUnmergedConfirmation)
	res, err := lc.Delete(root, name, flags.force)
	if err != nil {
		return err
	}

	switch {
	case res.RefusedPrimary:
		fmt.Println(styleRed.Render("Error: Cannot delete main worktree"))
		return nil
	case res.Cancelled:
		fmt.Println(styleDim.Render("Cancelled"))
		return nil
	}

	verb := "Deleted"
	if res.Forced {
		verb = "Force deleted"
	}
	fmt.Printf("%s %s worktree %s at %s\n",
		styleGreen.Render("✓"), verb, styleBlue.Render(res.Branch), styleCyan.Render(res.Path))

	fmt.Println()
	fmt.Println(styleBold.Render("Remaining worktrees:"))
	fmt.Print(formatCompact(repo.Collect(root, cwd)))
	return nil
}

// promptUnmergedConfirmation warns about the unmerged branch and asks
// for an explicit go-ahead. Only "y"/"yes" proceeds. When stdin is not
// a terminal there is nobody to ask, so the deletion is declined.
func promptUnmergedConfirmation(branch, path string) bool {
	fmt.Println(styleYellow.Render(fmt.Sprintf("⚠️  Warning: Branch '%s' may not be merged!", branch)))
	fmt.Println(styleYellow.Render("   Deleting worktree at: " + path))
	fmt.Println(styleDim.Render("   Use --force to skip this check"))

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}

	fmt.Print("Continue anyway? [y/N]: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "y" || answer == "yes"
}
