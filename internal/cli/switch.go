// The "jungle switch" command.
//
// A child process cannot change its parent shell's directory, so the
// command resolves the target worktree, prints the `cd` command to run,
// and copies it to the system clipboard best-effort.
package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/jungle-sh/jungle/internal/model"
)

// NewSwitchCommand creates the "switch" cobra command.
func NewSwitchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <name>",
		Short: "Switch to worktree directory",
		Long: `Resolve a worktree by branch name, directory name, or path, and print
the cd command to enter it. The command is also copied to the clipboard
when one is available.

Examples:
  jungle switch feature-login`,

		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwitch(args[0])
		},
	}
}

func runSwitch(name string) error {
	_, repo, root, cwd, err := repoContext()
	if err != nil {
		return err
	}

	trees := repo.Collect(root, cwd)

	var target *model.WorkingTree
	for i := range trees {
		t := &trees[i]
		if name == t.Branch || name == filepath.Base(t.Path) || name == t.Path ||
			strings.HasSuffix(t.Path, "/"+name) {
			target = t
			break
		}
	}

	if target == nil {
		fmt.Println(styleRed.Render(fmt.Sprintf("Error: Worktree '%s' not found", name)))
		fmt.Println()
		fmt.Println(styleDim.Render("Available worktrees:"))
		fmt.Print(formatCompact(trees))
		return nil
	}

	absPath, err := filepath.Abs(target.Path)
	if err != nil {
		absPath = target.Path
	}
	cdCommand := fmt.Sprintf("cd '%s'", absPath)

	fmt.Printf("%s Switch to worktree: %s\n", styleGreen.Render("🌿"), styleBlue.Render(target.Branch))
	fmt.Println(styleCyan.Render("📁 Path: " + absPath))
	fmt.Println()

	// Clipboard is best-effort: a headless machine simply skips it.
	if err := clipboard.WriteAll(cdCommand); err == nil {
		fmt.Println(styleDim.Render("💾 Command copied to clipboard!"))
	}

	fmt.Println(styleBold.Render("Run this command:"))
	fmt.Println(styleYellow.Render(cdCommand))

	fmt.Println()
	fmt.Println(styleDim.Render("Quick commands for this worktree:"))
	fmt.Println(styleDim.Render("  git status"))
	fmt.Println(styleDim.Render("  git log --oneline -5"))
	return nil
}
