package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary directory with an initialized git
// repository containing a single commit. Most worktree commands require
// at least one commit to exist, so this is the baseline for every test.
//
// user.name and user.email are configured at the repo level so commits
// work in CI environments without a global git config.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	runTestGit(t, dir, "init")
	runTestGit(t, dir, "config", "user.email", "test@example.com")
	runTestGit(t, dir, "config", "user.name", "Test User")

	err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test Repo\n"), 0644)
	require.NoError(t, err, "failed to create initial file")

	runTestGit(t, dir, "add", ".")
	runTestGit(t, dir, "commit", "-m", "initial commit")

	return dir
}

// runTestGit runs a git command in dir and fails the test on a non-zero
// exit, keeping setup code free of repetitive error checks.
func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}

func TestShowToplevel(t *testing.T) {
	repo := setupTestRepo(t)
	r := NewRunner()

	root, err := r.ShowToplevel(repo)
	require.NoError(t, err)

	// macOS TempDir paths may go through /var → /private/var symlinks.
	resolved, _ := filepath.EvalSymlinks(repo)
	gotResolved, _ := filepath.EvalSymlinks(root)
	assert.Equal(t, resolved, gotResolved)
}

func TestShowToplevelOutsideRepo(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner()

	_, err := r.ShowToplevel(dir)
	assert.Error(t, err, "rev-parse should fail outside a repository")
}

func TestCurrentBranch(t *testing.T) {
	repo := setupTestRepo(t)
	r := NewRunner()

	branch, err := r.CurrentBranch(repo)
	require.NoError(t, err)
	assert.NotEmpty(t, branch)
}

func TestCurrentBranchDetached(t *testing.T) {
	repo := setupTestRepo(t)
	r := NewRunner()

	sha, err := r.HeadSHA(repo)
	require.NoError(t, err)
	runTestGit(t, repo, "checkout", "--detach", sha)

	branch, err := r.CurrentBranch(repo)
	require.NoError(t, err)
	assert.Empty(t, branch, "detached HEAD should report an empty branch name")
}

func TestBranchExistence(t *testing.T) {
	repo := setupTestRepo(t)
	r := NewRunner()

	runTestGit(t, repo, "branch", "feature/login")

	assert.True(t, r.LocalBranchExists(repo, "feature/login"))
	assert.False(t, r.LocalBranchExists(repo, "feature/logout"))
	assert.False(t, r.RemoteBranchExists(repo, "feature/login"), "no origin remote configured")
}

func TestWorktreeAddAndRemove(t *testing.T) {
	repo := setupTestRepo(t)
	r := NewRunner()

	wt := filepath.Join(t.TempDir(), "feature-x")
	err := r.WorktreeAddNewBranch(repo, "feature-x", wt)
	require.NoError(t, err)

	out, err := r.WorktreeListPorcelain(repo)
	require.NoError(t, err)
	resolved, _ := filepath.EvalSymlinks(wt)
	assert.Contains(t, out, resolved)

	require.NoError(t, r.WorktreeRemove(repo, wt, false))

	_, statErr := os.Stat(wt)
	assert.True(t, os.IsNotExist(statErr), "worktree directory should be gone after remove")
}

func TestWorktreeAddExistingBranch(t *testing.T) {
	repo := setupTestRepo(t)
	r := NewRunner()

	runTestGit(t, repo, "branch", "existing")

	wt := filepath.Join(t.TempDir(), "existing-wt")
	require.NoError(t, r.WorktreeAdd(repo, wt, "existing"))

	branch, err := r.CurrentBranch(wt)
	require.NoError(t, err)
	assert.Equal(t, "existing", branch)
}

func TestWorktreeRemoveForcedFallback(t *testing.T) {
	repo := setupTestRepo(t)
	r := NewRunner()

	wt := filepath.Join(t.TempDir(), "dirty")
	require.NoError(t, r.WorktreeAddNewBranch(repo, "dirty", wt))

	// An untracked file makes the plain removal refuse.
	require.NoError(t, os.WriteFile(filepath.Join(wt, "junk.txt"), []byte("x"), 0644))

	err := r.WorktreeRemove(repo, wt, false)
	assert.Error(t, err, "plain removal should refuse a dirty worktree")

	require.NoError(t, r.WorktreeRemove(repo, wt, true))
}

func TestMergedBranches(t *testing.T) {
	repo := setupTestRepo(t)
	r := NewRunner()

	base, err := r.CurrentBranch(repo)
	require.NoError(t, err)

	// A branch pointing at HEAD is merged into the base by definition.
	runTestGit(t, repo, "branch", "merged-branch")

	out, err := r.MergedBranches(repo, base)
	require.NoError(t, err)
	assert.Contains(t, out, "merged-branch")
}

func TestActivityFeed(t *testing.T) {
	repo := setupTestRepo(t)
	r := NewRunner()

	out, err := r.ActivityFeed(repo)
	require.NoError(t, err)

	base, err := r.CurrentBranch(repo)
	require.NoError(t, err)
	assert.Contains(t, out, base+"|")
	assert.Contains(t, out, "|initial commit")
}

func TestStatusPorcelain(t *testing.T) {
	repo := setupTestRepo(t)
	r := NewRunner()

	out, err := r.StatusPorcelain(repo)
	require.NoError(t, err)
	assert.Empty(t, out, "fresh repo should report an empty status")

	require.NoError(t, os.WriteFile(filepath.Join(repo, "new.txt"), []byte("x"), 0644))
	out, err = r.StatusPorcelain(repo)
	require.NoError(t, err)
	assert.Contains(t, out, "? new.txt")
}

func TestDiagnosticProbes(t *testing.T) {
	repo := setupTestRepo(t)
	r := NewRunner()

	version, err := r.Version()
	require.NoError(t, err)
	assert.Contains(t, version, "git version")

	sha, err := r.HeadSHA(repo)
	require.NoError(t, err)
	assert.Len(t, sha, 40)

	desc, err := r.Describe(repo)
	require.NoError(t, err)
	assert.NotEmpty(t, desc, "describe --always falls back to the SHA")

	locals, err := r.LocalBranchCount(repo)
	require.NoError(t, err)
	assert.Equal(t, 1, locals)

	stashes, err := r.StashCount(repo)
	require.NoError(t, err)
	assert.Equal(t, 0, stashes)

	log, err := r.RecentLog(repo, 5)
	require.NoError(t, err)
	assert.Contains(t, log, "initial commit")

	assert.True(t, r.WorktreeListWorks(repo))
}

func TestFsck(t *testing.T) {
	repo := setupTestRepo(t)
	r := NewRunner()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, r.Fsck(ctx, repo))
}

func TestFsckTimeout(t *testing.T) {
	repo := setupTestRepo(t)
	r := NewRunner()

	// An already-expired context must surface as a context error, which
	// the status command reports as "unknown" rather than a failure.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Fsck(ctx, repo)
	assert.ErrorIs(t, err, context.Canceled)
}
