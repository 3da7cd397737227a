// The "jungle status" command: a diagnostic dump of the environment,
// the repository, its worktrees, and a few best-effort health checks.
//
// Every probe degrades independently. A failed git call prints a
// placeholder for its own line and the dump continues.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jungle-sh/jungle/internal/config"
	"github.com/jungle-sh/jungle/internal/git"
	"github.com/jungle-sh/jungle/internal/worktree"
)

// fsckTimeout bounds the repository integrity check. A timeout reports
// an unknown status, not a failure.
const fsckTimeout = 5 * time.Second

// NewStatusCommand creates the "status" cobra command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show comprehensive debug information",
		Long: `Dump diagnostic information: system environment, repository
configuration, worktree inventory, branch statistics, filesystem
probes, and health checks.`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func runStatus() error {
	fmt.Println(styleTitle.Render("🔍 Jungle Status - Debug Information"))
	fmt.Println()

	printSystemInfo()

	g, repo, root, cwd, err := repoContext()
	if err != nil {
		return err
	}

	printRepositoryInfo(g, root, cwd)
	printCurrentContext(g, repo, root, cwd)
	printWorktreeInfo(repo, root)
	printTreesDir(root, cwd)
	printBranchStats(g, root)
	printFilesystemInfo(root)
	printRecentActivity(g, root)
	printHealthChecks(g, root)
	return nil
}

func section(title string) {
	fmt.Println(styleHeader.Render(title))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printSystemInfo() {
	section("📱 System Information")
	fmt.Printf("  Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("  Go Runtime: %s\n", runtime.Version())
	if cwd, err := os.Getwd(); err == nil {
		fmt.Printf("  Current Directory: %s\n", cwd)
	}
	fmt.Printf("  User: %s\n", envOr("USER", "unknown"))
	fmt.Printf("  Home: %s\n", envOr("HOME", "unknown"))
	fmt.Println()
}

func printRepositoryInfo(g *git.Runner, root, cwd string) {
	section("🌿 Git Repository Information")
	fmt.Printf("  Git Root: %s\n", root)
	if rel, err := filepath.Rel(cwd, root); err == nil {
		fmt.Printf("  Relative Path: %s\n", rel)
	}

	printConfigValue := func(label, key string) {
		value, err := g.ConfigGet(root, key)
		if err != nil || value == "" {
			value = "Not set"
		}
		fmt.Printf("  %s: %s\n", label, value)
	}
	printConfigValue("Git User", "user.name")
	printConfigValue("Git Email", "user.email")

	if remotes, err := g.Remotes(root); err != nil {
		fmt.Println("  Remotes: Error retrieving")
	} else if strings.TrimSpace(remotes) == "" {
		fmt.Println("  Remotes: None")
	} else {
		fmt.Println("  Remotes:")
		for _, line := range strings.Split(strings.TrimSpace(remotes), "\n") {
			fmt.Printf("    %s\n", line)
		}
	}
	fmt.Println()
}

func printCurrentContext(g *git.Runner, repo *worktree.Repository, root, cwd string) {
	section("🎯 Current Context")
	currentBranch, _ := repo.Classify(cwd)
	fmt.Printf("  Current Branch: %s\n", currentBranch)

	if sha, err := g.HeadSHA(root); err == nil && len(sha) >= 12 {
		fmt.Printf("  HEAD SHA: %s...\n", sha[:12])
	} else {
		fmt.Println("  HEAD SHA: Unable to retrieve")
	}

	if desc, err := g.Describe(root); err == nil {
		fmt.Printf("  Description: %s\n", desc)
	} else {
		fmt.Println("  Description: No tags found")
	}
	fmt.Println()
}

func printWorktreeInfo(repo *worktree.Repository, root string) {
	paths := repo.Discover(root)

	section("🌳 Worktree Information")
	fmt.Printf("  Total Worktrees: %d\n", len(paths))
	fmt.Printf("  Main Worktree: %s\n", root)

	if len(paths) <= 1 {
		fmt.Println("  Additional Worktrees: None")
	} else {
		fmt.Println("  Additional Worktrees:")
		for _, path := range paths[1:] {
			branch, state := repo.Classify(path)
			fmt.Printf("    %s\n", path)
			fmt.Printf("      Branch: %s\n", branch)
			fmt.Printf("      Status: %s\n", colorStyle(state.Color()).Render(state.String()))
		}
	}
	fmt.Println()
}

func printTreesDir(root, cwd string) {
	cfg, _ := config.Load(root)
	treesDir := filepath.Join(cwd, cfg.TreesDir)

	section("📁 Trees Directory")
	fmt.Printf("  Trees Path: %s\n", treesDir)

	entries, err := os.ReadDir(treesDir)
	if err != nil {
		fmt.Printf("  Exists: %v\n", false)
		fmt.Println()
		return
	}
	fmt.Printf("  Exists: %v\n", true)
	fmt.Printf("  Entries: %d\n", len(entries))

	if len(entries) > 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		sort.Strings(names)

		fmt.Println("  Contents:")
		shown := names
		if len(shown) > 10 {
			shown = shown[:10]
		}
		for _, name := range shown {
			marker := "📄"
			if info, err := os.Stat(filepath.Join(treesDir, name)); err == nil && info.IsDir() {
				marker = "📁"
			}
			fmt.Printf("    %s %s\n", marker, name)
		}
		if len(names) > 10 {
			fmt.Printf("    ... and %d more\n", len(names)-10)
		}
	}
	fmt.Println()
}

func printBranchStats(g *git.Runner, root string) {
	section("📊 Branch Statistics")

	if n, err := g.LocalBranchCount(root); err != nil {
		fmt.Println("  Local Branches: Error counting")
	} else {
		fmt.Printf("  Local Branches: %d\n", n)
	}

	if n, err := g.RemoteBranchCount(root); err != nil {
		fmt.Println("  Remote Branches: Error counting")
	} else {
		fmt.Printf("  Remote Branches: %d\n", n)
	}

	if n, err := g.StashCount(root); err != nil {
		fmt.Println("  Stashes: 0")
	} else {
		fmt.Printf("  Stashes: %d\n", n)
	}
	fmt.Println()
}

// projectFiles are the well-known files probed for in the repository
// root, purely informational.
var projectFiles = []string{".env", ".gitignore", "package.json", "requirements.txt", "Cargo.toml", "pom.xml", "go.mod"}

func printFilesystemInfo(root string) {
	section("💾 File System")

	var found []string
	for _, name := range projectFiles {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			found = append(found, name)
		}
	}
	if len(found) > 0 {
		fmt.Printf("  Project Files: %s\n", strings.Join(found, ", "))
	} else {
		fmt.Println("  Project Files: None detected")
	}

	// The .env file gets a closer look since jungle propagates it into
	// new worktrees.
	envPath := filepath.Join(root, ".env")
	if info, err := os.Stat(envPath); err != nil {
		fmt.Println("  .env File: Not found")
	} else {
		detail := fmt.Sprintf("modified %s", info.ModTime().Format("2006-01-02 15:04:05"))
		if vars, err := godotenv.Read(envPath); err == nil {
			detail = fmt.Sprintf("%s, %d keys", detail, len(vars))
		}
		fmt.Printf("  .env File: Exists (%s)\n", detail)
	}

	gitignorePath := filepath.Join(root, ".gitignore")
	if content, err := os.ReadFile(gitignorePath); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  .gitignore: Not found")
		} else {
			fmt.Println("  .gitignore: Exists but unreadable")
		}
	} else if strings.Contains(strings.ToLower(string(content)), "trees") {
		fmt.Println("  .gitignore: Contains 'trees' pattern ✓")
	} else {
		fmt.Println("  .gitignore: No 'trees' pattern found")
	}
	fmt.Println()
}

func printRecentActivity(g *git.Runner, root string) {
	section("⏰ Recent Activity")
	if log, err := g.RecentLog(root, 5); err != nil {
		fmt.Println("  Recent Commits: Error retrieving")
	} else if strings.TrimSpace(log) == "" {
		fmt.Println("  Recent Commits: None")
	} else {
		fmt.Println("  Recent Commits:")
		for _, line := range strings.Split(strings.TrimSpace(log), "\n") {
			fmt.Printf("    %s\n", line)
		}
	}
	fmt.Println()
}

func printHealthChecks(g *git.Runner, root string) {
	section("⚡ Health Checks")

	if _, err := g.Version(); err == nil {
		fmt.Printf("  Git Command: %s\n", styleGreen.Render("✓ Working"))
	} else {
		fmt.Printf("  Git Command: %s\n", styleRed.Render("✗ Not working"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), fsckTimeout)
	defer cancel()
	switch err := g.Fsck(ctx, root); {
	case err == nil:
		fmt.Printf("  Repository Integrity: %s\n", styleGreen.Render("✓ OK"))
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Printf("  Repository Integrity: %s\n", styleYellow.Render("⏳ Check timeout"))
	default:
		fmt.Printf("  Repository Integrity: %s\n", styleRed.Render("✗ Issues found"))
	}

	if g.WorktreeListWorks(root) {
		fmt.Printf("  Worktree Command: %s\n", styleGreen.Render("✓ Working"))
	} else {
		fmt.Printf("  Worktree Command: %s\n", styleRed.Render("✗ Not working"))
	}
}
