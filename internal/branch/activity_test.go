package branch

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jungle-sh/jungle/internal/git"
	"github.com/jungle-sh/jungle/internal/worktree"
)

// A local branch followed by its remote-tracking copy yields exactly
// one record, the local one.
func TestParseFeedDeduplicatesRemote(t *testing.T) {
	feed := strings.Join([]string{
		"main|2 days ago|Alice|Fix bug",
		"origin/main|2 days ago|Alice|Fix bug",
	}, "\n")

	records := ParseFeed(feed, nil, 10)
	require.Len(t, records, 1)
	assert.Equal(t, "main", records[0].Name)
	assert.False(t, records[0].IsRemote)
	assert.Equal(t, "2 days ago", records[0].LastActivity)
	assert.Equal(t, "Alice", records[0].Author)
	assert.Equal(t, "Fix bug", records[0].Subject)
}

// A remote branch with no local counterpart is kept, prefixed.
func TestParseFeedKeepsRemoteOnly(t *testing.T) {
	feed := "origin/feature/remote-only|1 hour ago|Bob|Add thing"

	records := ParseFeed(feed, nil, 10)
	require.Len(t, records, 1)
	assert.Equal(t, "origin/feature/remote-only", records[0].Name)
	assert.True(t, records[0].IsRemote)
}

// The dedup set is fed only by local lines: a remote copy appearing
// BEFORE its local branch in the feed is emitted, and so is the local.
func TestParseFeedRemoteBeforeLocal(t *testing.T) {
	feed := strings.Join([]string{
		"origin/main|3 days ago|Alice|Older on remote",
		"main|2 days ago|Alice|Fix bug",
	}, "\n")

	records := ParseFeed(feed, nil, 10)
	require.Len(t, records, 2)
	assert.Equal(t, "origin/main", records[0].Name)
	assert.Equal(t, "main", records[1].Name)
}

func TestParseFeedSkipsRemoteHEAD(t *testing.T) {
	feed := strings.Join([]string{
		"origin/HEAD|2 days ago|Alice|Fix bug",
		"origin/main|2 days ago|Alice|Fix bug",
	}, "\n")

	records := ParseFeed(feed, nil, 10)
	require.Len(t, records, 1)
	assert.Equal(t, "origin/main", records[0].Name)
}

func TestParseFeedSkipsMalformedLines(t *testing.T) {
	feed := strings.Join([]string{
		"only|three|fields",
		"",
		"good|1 day ago|Carol|Works",
	}, "\n")

	records := ParseFeed(feed, nil, 10)
	require.Len(t, records, 1)
	assert.Equal(t, "good", records[0].Name)
}

// Subjects containing the delimiter survive: only the first three pipes
// split fields, the rest stays in the subject.
func TestParseFeedSubjectWithPipes(t *testing.T) {
	feed := "dev|1 day ago|Dan|Pipe | in | subject"

	records := ParseFeed(feed, nil, 10)
	require.Len(t, records, 1)
	assert.Equal(t, "Pipe | in | subject", records[0].Subject)
}

func TestParseFeedLimit(t *testing.T) {
	feed := strings.Join([]string{
		"b1|1 day ago|A|s",
		"origin/b1|1 day ago|A|s", // filtered, does not count toward limit
		"b2|2 days ago|A|s",
		"b3|3 days ago|A|s",
		"b4|4 days ago|A|s",
	}, "\n")

	records := ParseFeed(feed, nil, 3)
	require.Len(t, records, 3)
	assert.Equal(t, "b1", records[0].Name)
	assert.Equal(t, "b2", records[1].Name)
	assert.Equal(t, "b3", records[2].Name)
}

func TestParseFeedBoundBranches(t *testing.T) {
	feed := strings.Join([]string{
		"checked-out|1 day ago|A|s",
		"origin/also-checked-out|2 days ago|A|s",
		"idle|3 days ago|A|s",
	}, "\n")

	bound := map[string]bool{"checked-out": true, "also-checked-out": true}
	records := ParseFeed(feed, bound, 10)
	require.Len(t, records, 3)

	assert.True(t, records[0].HasWorktree)
	assert.True(t, records[1].HasWorktree, "remote form counts as bound when its local counterpart is checked out")
	assert.False(t, records[2].HasWorktree)
}

func TestTruncateSubject(t *testing.T) {
	assert.Equal(t, "short", TruncateSubject("short"))

	exactly50 := strings.Repeat("a", 50)
	assert.Equal(t, exactly50, TruncateSubject(exactly50))

	long := strings.Repeat("a", 51)
	got := TruncateSubject(long)
	assert.Equal(t, exactly50+"...", got)
	assert.Equal(t, 53, len([]rune(got)))

	// Truncation counts characters, not bytes.
	unicode := strings.Repeat("ü", 60)
	got = TruncateSubject(unicode)
	assert.Equal(t, strings.Repeat("ü", 50)+"...", got)
}

// setupTestRepo builds a small repository with a few dated branches for
// the live-listing test.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v failed: %s", args, string(out))
	}

	run("init")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test User")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x\n"), 0644))
	run("add", ".")
	run("commit", "-m", "initial commit")
	run("branch", "feature/one")

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return resolved
}

func TestListRecentLive(t *testing.T) {
	repo := setupTestRepo(t)

	g := git.NewRunner()
	l := NewLister(g, worktree.NewRepository(g))

	records, err := l.ListRecent(repo, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	names := []string{records[0].Name, records[1].Name}
	assert.Contains(t, names, "feature/one")

	// The checked-out primary branch must be flagged as bound.
	current, err := g.CurrentBranch(repo)
	require.NoError(t, err)
	for _, rec := range records {
		if rec.Name == current {
			assert.True(t, rec.HasWorktree)
		} else {
			assert.False(t, rec.HasWorktree)
		}
	}
}

func TestListRecentLimitLive(t *testing.T) {
	repo := setupTestRepo(t)

	g := git.NewRunner()
	l := NewLister(g, worktree.NewRepository(g))

	records, err := l.ListRecent(repo, 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
