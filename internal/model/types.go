package model

import "fmt"

// DirtyState classifies the working state of a single worktree, derived
// from `git status --porcelain=v2` output.
//
// Exactly one state is produced for any status report. The classification
// buckets every reported entry into three counts (staged, modified,
// untracked) and applies the truth table implemented in ClassifyCounts.
type DirtyState string

const (
	// StateClean means the status report contained no entries.
	StateClean DirtyState = "Clean"

	// StateModified means only tracked-file modifications were reported.
	StateModified DirtyState = "Modified"

	// StateStaged means only staged (rename/copy) entries were reported.
	StateStaged DirtyState = "Staged"

	// StateUntracked means only untracked files were reported.
	StateUntracked DirtyState = "Untracked"

	// StateMixed means two or more of the three buckets were non-empty.
	StateMixed DirtyState = "Mixed"

	// StateError means the status query itself failed. It is a sentinel,
	// not an error: one broken worktree never aborts a listing.
	StateError DirtyState = "ERROR"
)

// String returns the display label of the state. Satisfies fmt.Stringer.
func (s DirtyState) String() string {
	return string(s)
}

// Symbol returns the one-character status symbol shown in the compact
// listing. The mapping is a compatibility requirement and must not change:
//
//	Clean → ✓   Modified → !   Staged → S
//	Untracked → ?   Mixed → M   ERROR → ✗
func (s DirtyState) Symbol() string {
	switch s {
	case StateClean:
		return "✓"
	case StateModified:
		return "!"
	case StateStaged:
		return "S"
	case StateUntracked:
		return "?"
	case StateMixed:
		return "M"
	case StateError:
		return "✗"
	default:
		return "?"
	}
}

// Color returns the display color name paired with the state's symbol.
// Like Symbol, this mapping is fixed for compatibility.
func (s DirtyState) Color() string {
	switch s {
	case StateClean:
		return "green"
	case StateUntracked:
		return "yellow"
	case StateModified, StateStaged, StateMixed, StateError:
		return "red"
	default:
		return "white"
	}
}

// ClassifyCounts maps the three status-entry counts onto a DirtyState.
//
// Any combination with two or more non-zero counts is Mixed. Exactly one
// non-zero count yields that bucket's state. All zero is Clean. A failed
// status query never reaches this function (it maps to StateError at the
// query site).
func ClassifyCounts(staged, modified, untracked int) DirtyState {
	nonZero := 0
	if staged > 0 {
		nonZero++
	}
	if modified > 0 {
		nonZero++
	}
	if untracked > 0 {
		nonZero++
	}

	switch {
	case nonZero > 1:
		return StateMixed
	case staged > 0:
		return StateStaged
	case modified > 0:
		return StateModified
	case untracked > 0:
		return StateUntracked
	default:
		return StateClean
	}
}

// Branch sentinels. A worktree checked out at a bare commit reports
// BranchDetached; a failed branch query reports BranchUnknown. Both
// degrade the listing instead of aborting it.
const (
	BranchDetached = "DETACHED"
	BranchUnknown  = "UNKNOWN"
)

// WorkingTree is one filesystem checkout bound to the shared repository.
//
// Every field is re-derived by fresh git queries on each invocation; the
// CLI holds no cache between runs.
type WorkingTree struct {
	// Path is the canonical absolute filesystem path, unique among all
	// worktrees of one repository.
	Path string

	// IsPrimary is true for exactly one worktree per repository: the
	// checkout that holds the shared .git metadata directory directly.
	IsPrimary bool

	// Branch is the checked-out branch name, or one of the sentinels
	// BranchDetached / BranchUnknown.
	Branch string

	// State is the coarse dirty/clean classification.
	State DirtyState

	// Name is the compact display name: "main" for the primary tree,
	// the directory basename otherwise.
	Name string

	// DisplayPath is the path shown in listings: "." for the primary
	// tree, "./<relative>" when the tree sits below the current
	// directory, the absolute path otherwise.
	DisplayPath string
}

// BranchRecord is one named branch (local or remote-tracking) in the
// recency-ranked activity listing.
type BranchRecord struct {
	// Name is the bare local name ("feature/x") or the remote-prefixed
	// form ("origin/feature/x").
	Name string

	// LastActivity is git's relative committer-date ("2 days ago").
	LastActivity string

	// Author is the last commit's author name.
	Author string

	// Subject is the last commit's subject line, truncated to 50
	// characters with a trailing "..." when longer.
	Subject string

	// HasWorktree reports whether the branch is currently checked out
	// in any worktree (remote prefix stripped before the test).
	HasWorktree bool

	// IsRemote reports whether Name carries the remote prefix.
	IsRemote bool
}

// ExitCode defines the process exit codes used by the CLI. Scripts can
// rely on these to distinguish failure classes.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully. A user
	// declining a confirmation prompt is also a success (clean no-op).
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitNotARepository indicates the current directory is not inside
	// a recognized git repository.
	ExitNotARepository ExitCode = 2

	// ExitGitError indicates a git subprocess invocation failed.
	ExitGitError ExitCode = 3

	// ExitNotFound indicates the named worktree does not exist.
	ExitNotFound ExitCode = 4
)

// CLIError is an error carrying an exit code, letting the CLI layer
// translate domain failures into process exit statuses.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description. Text captured
	// from git's stderr is surfaced here verbatim, never parsed.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
