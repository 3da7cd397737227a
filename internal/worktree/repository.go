package worktree

import (
	"path/filepath"
	"strings"

	"github.com/jungle-sh/jungle/internal/git"
	"github.com/jungle-sh/jungle/internal/model"
)

// Repository discovers the worktrees of one git repository and resolves
// the branch and dirty state of each. It holds no state between calls;
// every property is re-derived by fresh git queries.
type Repository struct {
	git *git.Runner
}

// NewRepository creates a Repository backed by the given git runner.
func NewRepository(g *git.Runner) *Repository {
	return &Repository{git: g}
}

// Root returns the primary repository root for the invocation directory,
// or a NotARepository error when dir is not inside a git repository.
func (r *Repository) Root(dir string) (string, error) {
	root, err := r.git.ShowToplevel(dir)
	if err != nil {
		return "", model.NewCLIError(model.ExitNotARepository, "Not in a Git repository.")
	}
	return root, nil
}

// Discover returns the ordered worktree paths for the repository at
// root. The primary root is always first; remaining entries come from
// the porcelain worktree enumeration, excluding any entry equal to the
// primary root. An enumeration failure degrades to the primary alone.
func (r *Repository) Discover(root string) []string {
	paths := []string{root}

	out, err := r.git.WorktreeListPorcelain(root)
	if err != nil {
		return paths
	}
	return append(paths, ParseWorktreePaths(out, root)...)
}

// ParseWorktreePaths extracts worktree paths from porcelain enumeration
// output, skipping the primary root to avoid duplicating it.
//
// Porcelain blocks look like:
//
//	worktree /path/to/tree
//	HEAD abc123
//	branch refs/heads/feature
func ParseWorktreePaths(output, root string) []string {
	var paths []string
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		path, ok := strings.CutPrefix(line, "worktree ")
		if !ok {
			continue
		}
		if path == root {
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

// Classify resolves the current branch and dirty state of the worktree
// at path. Neither query failure is propagated as an error: a failed
// branch query degrades to UNKNOWN and a failed status query to ERROR,
// so listing one broken tree never aborts the whole listing.
func (r *Repository) Classify(path string) (string, model.DirtyState) {
	branch, err := r.git.CurrentBranch(path)
	switch {
	case err != nil:
		branch = model.BranchUnknown
	case branch == "":
		branch = model.BranchDetached
	}

	out, err := r.git.StatusPorcelain(path)
	if err != nil {
		return branch, model.StateError
	}
	return branch, ClassifyStatusOutput(out)
}

// ClassifyStatusOutput buckets a porcelain-v2 status report into the
// three entry counts and applies the classification table. The per-line
// type markers are: "1 " ordinary changed entry, "2 " rename/copy
// (staged) entry, "? " untracked item.
func ClassifyStatusOutput(output string) model.DirtyState {
	if strings.TrimSpace(output) == "" {
		return model.StateClean
	}

	var modified, staged, untracked int
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		switch {
		case strings.HasPrefix(line, "1 "):
			modified++
		case strings.HasPrefix(line, "2 "):
			staged++
		case strings.HasPrefix(line, "? "):
			untracked++
		}
	}
	return model.ClassifyCounts(staged, modified, untracked)
}

// DisplayFields computes the compact display name and path for a
// worktree. The primary tree shows as "."/"main"; other trees show
// their basename as name, and "./<relative>" as path when the relative
// path from cwd does not escape upward, else the absolute path.
func DisplayFields(path, root, cwd string) (name, displayPath string) {
	if path == root {
		return "main", "."
	}

	name = filepath.Base(path)
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return name, path
	}
	return name, "./" + rel
}

// Collect runs the full discovery-and-status pipeline: every worktree of
// the repository at root, each with branch, dirty state, and display
// fields relative to cwd. The primary tree is always first.
func (r *Repository) Collect(root, cwd string) []model.WorkingTree {
	paths := r.Discover(root)

	trees := make([]model.WorkingTree, 0, len(paths))
	for _, path := range paths {
		branch, state := r.Classify(path)
		name, displayPath := DisplayFields(path, root, cwd)
		trees = append(trees, model.WorkingTree{
			Path:        path,
			IsPrimary:   path == root,
			Branch:      branch,
			State:       state,
			Name:        name,
			DisplayPath: displayPath,
		})
	}
	return trees
}
