package worktree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jungle-sh/jungle/internal/config"
	"github.com/jungle-sh/jungle/internal/git"
	"github.com/jungle-sh/jungle/internal/model"
)

// ConfirmFunc is the confirmation callback invoked by Delete when the
// merge-safety guard finds an unmerged branch. It receives the branch
// name and the worktree path about to be deleted and returns true to
// proceed. Injecting it keeps the interactive prompt out of the core.
type ConfirmFunc func(branch, path string) bool

// Lifecycle creates and deletes worktrees against one shared repository.
type Lifecycle struct {
	git     *git.Runner
	repo    *Repository
	cfg     *config.Config
	confirm ConfirmFunc
}

// NewLifecycle creates a Lifecycle. confirm may be nil, in which case an
// unmerged-branch deletion is always declined.
func NewLifecycle(g *git.Runner, repo *Repository, cfg *config.Config, confirm ConfirmFunc) *Lifecycle {
	return &Lifecycle{git: g, repo: repo, cfg: cfg, confirm: confirm}
}

// CreateResult describes a completed worktree creation.
type CreateResult struct {
	// Path is the worktree path as passed to git (default form:
	// <treesDir>/<branch with '/' replaced by '-'>).
	Path string

	// Branch is the bound branch name.
	Branch string

	// BranchExisted is true when the branch already existed locally or
	// as origin/<branch>, false when it was created with the worktree.
	BranchExisted bool

	// CopiedFiles lists the auxiliary files propagated into the tree.
	CopiedFiles []string

	// CopyWarnings lists best-effort copy failures. They never abort
	// the creation.
	CopyWarnings []string
}

// DefaultPath returns the worktree path used when no explicit path is
// given: <treesDir>/<branch> with every '/' in the branch name replaced
// by '-'.
func DefaultPath(treesDir, branch string) string {
	return filepath.Join(treesDir, strings.ReplaceAll(branch, "/", "-"))
}

// Create adds a worktree for branch at explicitPath, or at the default
// trees-directory path when explicitPath is empty (creating the trees
// directory if absent). When the branch exists, locally or as the
// remote-tracking origin/<branch>, the worktree binds to it; otherwise
// the branch is created together with the worktree.
//
// After a successful add, each configured auxiliary file (default:
// .env) present at the repository root is copied into the new tree as
// an opaque byte copy. Copy failures are reported in the result, never
// as errors.
func (l *Lifecycle) Create(root, branch, explicitPath string) (*CreateResult, error) {
	path := explicitPath
	if path == "" {
		if err := os.MkdirAll(l.cfg.TreesDir, 0o755); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("cannot create trees directory %s", l.cfg.TreesDir), err)
		}
		path = DefaultPath(l.cfg.TreesDir, branch)
	}

	exists := l.git.LocalBranchExists(root, branch) || l.git.RemoteBranchExists(root, branch)

	var err error
	if exists {
		err = l.git.WorktreeAdd(root, path, branch)
	} else {
		err = l.git.WorktreeAddNewBranch(root, branch, path)
	}
	if err != nil {
		return nil, err
	}

	res := &CreateResult{Path: path, Branch: branch, BranchExisted: exists}
	for _, name := range l.cfg.CopyFiles {
		src := filepath.Join(root, name)
		if _, statErr := os.Stat(src); statErr != nil {
			continue
		}
		if copyErr := copyFile(src, filepath.Join(path, name)); copyErr != nil {
			res.CopyWarnings = append(res.CopyWarnings,
				fmt.Sprintf("could not copy %s: %v", name, copyErr))
			continue
		}
		res.CopiedFiles = append(res.CopiedFiles, name)
	}

	return res, nil
}

// DeleteResult describes the outcome of a deletion attempt.
type DeleteResult struct {
	// Path and Branch identify the resolved worktree.
	Path   string
	Branch string

	// Forced is true when the plain removal failed and the forced
	// variant succeeded.
	Forced bool

	// Cancelled is true when the merge-safety guard fired and the
	// confirmation declined. No side effects occurred.
	Cancelled bool

	// RefusedPrimary is true when the name resolved to the primary
	// worktree, which is never deletable.
	RefusedPrimary bool
}

// Delete removes the worktree matched by nameOrPath (basename or full
// path). The primary worktree is always refused. Unless force is set,
// or the tree's branch is a sentinel, the branch is checked against the
// merged-branch list of each configured base branch in turn; if merged
// into none, the confirmation callback decides. A failed plain removal
// is retried once with the forced variant before giving up.
func (l *Lifecycle) Delete(root, nameOrPath string, force bool) (*DeleteResult, error) {
	var target string
	for _, path := range l.repo.Discover(root) {
		if nameOrPath != filepath.Base(path) && nameOrPath != path {
			continue
		}
		if path == root {
			return &DeleteResult{Path: path, RefusedPrimary: true}, nil
		}
		target = path
		break
	}
	if target == "" {
		return nil, model.NewCLIError(model.ExitNotFound,
			fmt.Sprintf("Worktree '%s' not found", nameOrPath))
	}

	branch, _ := l.repo.Classify(target)

	if !force && branch != model.BranchDetached && branch != model.BranchUnknown {
		if !l.isMerged(root, branch) {
			if l.confirm == nil || !l.confirm(branch, target) {
				return &DeleteResult{Path: target, Branch: branch, Cancelled: true}, nil
			}
		}
	}

	res := &DeleteResult{Path: target, Branch: branch}
	if err := l.git.WorktreeRemove(root, target, false); err != nil {
		if err := l.git.WorktreeRemove(root, target, true); err != nil {
			return nil, err
		}
		res.Forced = true
	}
	return res, nil
}

// isMerged reports whether branch appears in the merged-branch list of
// any configured base branch. Bases that do not exist are skipped; the
// first successful match wins.
func (l *Lifecycle) isMerged(root, branch string) bool {
	for _, base := range l.cfg.BaseBranches {
		out, err := l.git.MergedBranches(root, base)
		if err != nil {
			continue
		}
		if mergedListContains(out, branch) {
			return true
		}
	}
	return false
}

// mergedListContains tests branch membership in `git branch --merged`
// output, where the current branch carries a "*" (or "+") marker.
func mergedListContains(output, branch string) bool {
	for _, line := range strings.Split(output, "\n") {
		name := strings.TrimSpace(strings.TrimLeft(line, "*+ "))
		if name == branch {
			return true
		}
	}
	return false
}

// copyFile performs an opaque byte copy preserving the source mode.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
