package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/jungle-sh/jungle/internal/model"
)

// Runner invokes the git CLI. It is stateless: all methods receive the
// target directory as a parameter. The struct exists as a receiver to
// support future extensions such as a configurable git binary path.
type Runner struct{}

// NewRunner creates a new Runner instance.
func NewRunner() *Runner {
	return &Runner{}
}

// run executes a git command with the given arguments against the
// specified directory. The directory is passed via `git -C`, which is
// handled by git itself and works correctly with all subcommands.
//
// On success the captured stdout is returned. On failure the trimmed
// stderr text is included verbatim in a model.CLIError with ExitGitError.
func (r *Runner) run(dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)

	// #nosec G204 -- args are constructed internally, not from user input
	cmd := exec.Command("git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitGitError, message, err)
	}

	return stdout.String(), nil
}

// ShowToplevel returns the absolute root path of the working tree
// containing dir, or an error when dir is not inside a git repository.
func (r *Runner) ShowToplevel(dir string) (string, error) {
	out, err := r.run(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// WorktreeListPorcelain returns the raw machine-parsable worktree
// enumeration (`git worktree list --porcelain`), one block per tree.
func (r *Runner) WorktreeListPorcelain(dir string) (string, error) {
	return r.run(dir, "worktree", "list", "--porcelain")
}

// CurrentBranch returns the checked-out branch name for the worktree at
// dir. An empty string means detached HEAD; the caller maps that to the
// DETACHED sentinel.
func (r *Runner) CurrentBranch(dir string) (string, error) {
	out, err := r.run(dir, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// StatusPorcelain returns the raw v2 porcelain status report for the
// worktree at dir. Each line carries a type marker in its first column.
func (r *Runner) StatusPorcelain(dir string) (string, error) {
	return r.run(dir, "status", "--porcelain=v2")
}

// LocalBranchExists reports whether a local branch with exactly the
// given name exists. Query failures count as "does not exist".
func (r *Runner) LocalBranchExists(dir, name string) bool {
	out, err := r.run(dir, "branch", "--list", name)
	return err == nil && strings.TrimSpace(out) != ""
}

// RemoteBranchExists reports whether the remote-tracking branch
// origin/<name> exists. Query failures count as "does not exist".
func (r *Runner) RemoteBranchExists(dir, name string) bool {
	out, err := r.run(dir, "branch", "-r", "--list", "origin/"+name)
	return err == nil && strings.TrimSpace(out) != ""
}

// WorktreeAdd creates a worktree at path bound to an existing branch.
func (r *Runner) WorktreeAdd(dir, path, branch string) error {
	_, err := r.run(dir, "worktree", "add", path, branch)
	return err
}

// WorktreeAddNewBranch creates a worktree at path together with a new
// branch of the given name.
func (r *Runner) WorktreeAddNewBranch(dir, branch, path string) error {
	_, err := r.run(dir, "worktree", "add", "-b", branch, path)
	return err
}

// WorktreeRemove removes the worktree at path. With force set, the
// forced variant is used, which also removes dirty worktrees.
func (r *Runner) WorktreeRemove(dir, path string, force bool) error {
	args := []string{"worktree", "remove", path}
	if force {
		args = []string{"worktree", "remove", "--force", path}
	}
	_, err := r.run(dir, args...)
	return err
}

// MergedBranches returns the raw `git branch --merged <base>` listing:
// one branch per line, the current branch marked with "*".
func (r *Runner) MergedBranches(dir, base string) (string, error) {
	return r.run(dir, "branch", "--merged", base)
}

// ActivityFeed returns local and origin remote-tracking branches sorted
// by commit time descending, one pipe-delimited record per line:
//
//	name|relativeTime|author|subject
func (r *Runner) ActivityFeed(dir string) (string, error) {
	return r.run(dir, "for-each-ref",
		"--sort=-committerdate",
		"--format=%(refname:short)|%(committerdate:relative)|%(authorname)|%(subject)",
		"refs/heads/", "refs/remotes/origin/")
}

// ConfigGet reads a single git config value. A missing key is an error
// (git exits non-zero); callers treat that as "not set".
func (r *Runner) ConfigGet(dir, key string) (string, error) {
	out, err := r.run(dir, "config", "--get", key)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Remotes returns the raw `git remote -v` listing.
func (r *Runner) Remotes(dir string) (string, error) {
	return r.run(dir, "remote", "-v")
}

// HeadSHA returns the full commit SHA of HEAD.
func (r *Runner) HeadSHA(dir string) (string, error) {
	out, err := r.run(dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Describe returns `git describe --tags --always` output.
func (r *Runner) Describe(dir string) (string, error) {
	out, err := r.run(dir, "describe", "--tags", "--always")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// LocalBranchCount counts local branches.
func (r *Runner) LocalBranchCount(dir string) (int, error) {
	out, err := r.run(dir, "branch", "--list")
	if err != nil {
		return 0, err
	}
	return countNonEmptyLines(out, ""), nil
}

// RemoteBranchCount counts remote-tracking branches, excluding the HEAD
// pseudo-ref.
func (r *Runner) RemoteBranchCount(dir string) (int, error) {
	out, err := r.run(dir, "branch", "-r", "--list")
	if err != nil {
		return 0, err
	}
	return countNonEmptyLines(out, "HEAD"), nil
}

// StashCount counts entries in the stash list.
func (r *Runner) StashCount(dir string) (int, error) {
	out, err := r.run(dir, "stash", "list")
	if err != nil {
		return 0, err
	}
	return countNonEmptyLines(out, ""), nil
}

// RecentLog returns the last n commits across all refs, one line each.
func (r *Runner) RecentLog(dir string, n int) (string, error) {
	return r.run(dir, "log", "--oneline", fmt.Sprintf("-%d", n), "--all")
}

// Version probes the git binary itself (`git --version`, no -C).
func (r *Runner) Version() (string, error) {
	out, err := exec.Command("git", "--version").Output()
	if err != nil {
		return "", model.WrapCLIError(model.ExitGitError, "git --version failed", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Fsck runs the repository integrity check, bounded by the context
// deadline. The caller distinguishes a timeout (ctx deadline exceeded)
// from an actual integrity failure.
func (r *Runner) Fsck(ctx context.Context, dir string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "fsck", "--no-progress")
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return model.WrapCLIError(model.ExitGitError, "git fsck failed", err)
	}
	return nil
}

// WorktreeListWorks probes whether `git worktree list` runs cleanly.
// Used only by the diagnostic dump.
func (r *Runner) WorktreeListWorks(dir string) bool {
	_, err := r.run(dir, "worktree", "list")
	return err == nil
}

// countNonEmptyLines counts lines with content, optionally skipping
// lines containing the exclude substring.
func countNonEmptyLines(out, exclude string) int {
	n := 0
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if exclude != "" && strings.Contains(line, exclude) {
			continue
		}
		n++
	}
	return n
}
