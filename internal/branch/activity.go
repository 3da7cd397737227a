// Package branch ranks branches by recency of change for the jungle
// `branches` command.
//
// The listing is driven by a single for-each-ref feed over local and
// origin remote-tracking refs, already sorted by commit time descending.
// Lines are processed strictly in source order and never re-sorted, so
// the feed order is the final order. A remote-tracking copy is
// suppressed once its local counterpart has been emitted, and the
// origin/HEAD pseudo-ref is always suppressed.
package branch

import (
	"strings"

	"github.com/jungle-sh/jungle/internal/git"
	"github.com/jungle-sh/jungle/internal/model"
	"github.com/jungle-sh/jungle/internal/worktree"
)

// remotePrefix marks remote-tracking names in the feed. Only the origin
// remote participates in the listing.
const remotePrefix = "origin/"

// subjectLimit is the truncation point for commit subjects.
const subjectLimit = 50

// Lister produces the recency-ranked branch listing.
type Lister struct {
	git  *git.Runner
	repo *worktree.Repository
}

// NewLister creates a Lister backed by the given runner and repository.
func NewLister(g *git.Runner, repo *worktree.Repository) *Lister {
	return &Lister{git: g, repo: repo}
}

// ListRecent returns at most limit branch records for the repository at
// root, most recently changed first.
func (l *Lister) ListRecent(root string, limit int) ([]model.BranchRecord, error) {
	feed, err := l.git.ActivityFeed(root)
	if err != nil {
		return nil, err
	}
	return ParseFeed(feed, l.boundBranches(root), limit), nil
}

// boundBranches collects the set of branches currently checked out in
// any worktree. Sentinel branch values are not bound to anything.
func (l *Lister) boundBranches(root string) map[string]bool {
	bound := make(map[string]bool)
	for _, path := range l.repo.Discover(root) {
		b, _ := l.repo.Classify(path)
		if b != model.BranchDetached && b != model.BranchUnknown {
			bound[b] = true
		}
	}
	return bound
}

// ParseFeed turns the raw activity feed into branch records. Per line,
// in source order:
//
//   - split into exactly 4 pipe-delimited fields; malformed lines are
//     skipped
//   - a remote name whose stripped local form was already emitted as a
//     local branch is skipped, as is the remote HEAD pseudo-ref
//   - local names are recorded so later remote copies are suppressed
//   - subjects longer than 50 characters are truncated with "..."
//   - the bound test strips the remote prefix first, so a remote record
//     counts as bound when its local counterpart is checked out
//
// Processing stops once limit records have been accumulated; the limit
// applies after filtering.
func ParseFeed(feed string, bound map[string]bool, limit int) []model.BranchRecord {
	var records []model.BranchRecord
	seen := make(map[string]bool)

	for _, line := range strings.Split(strings.TrimSpace(feed), "\n") {
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, "|", 4)
		if len(parts) != 4 {
			continue
		}
		name, lastActivity, author, subject := parts[0], parts[1], parts[2], parts[3]

		isRemote := strings.HasPrefix(name, remotePrefix)
		if isRemote {
			local := strings.TrimPrefix(name, remotePrefix)
			if seen[local] || strings.HasSuffix(name, "/HEAD") {
				continue
			}
		} else {
			seen[name] = true
		}

		records = append(records, model.BranchRecord{
			Name:         name,
			LastActivity: lastActivity,
			Author:       author,
			Subject:      TruncateSubject(subject),
			HasWorktree:  bound[name] || bound[strings.TrimPrefix(name, remotePrefix)],
			IsRemote:     isRemote,
		})

		if len(records) >= limit {
			break
		}
	}

	return records
}

// TruncateSubject caps a subject line at 50 characters of content,
// appending "..." when anything was cut.
func TruncateSubject(subject string) string {
	runes := []rune(subject)
	if len(runes) <= subjectLimit {
		return subject
	}
	return string(runes[:subjectLimit]) + "..."
}
