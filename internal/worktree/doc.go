// Package worktree implements the worktree discovery/status pipeline and
// the create/delete lifecycle for the jungle CLI.
//
// Repository is the query side: it enumerates the worktrees of one
// repository and resolves, for each, the checked-out branch and a coarse
// dirty/clean classification. Broken trees degrade to sentinels
// (UNKNOWN branch, ERROR state) so one bad checkout never aborts a
// listing.
//
// Lifecycle is the mutation side: it creates worktrees (creating the
// branch too when it does not exist locally or on origin) and deletes
// them behind a merge-safety guard with an injectable confirmation
// callback, so the interactive prompt is testable without a terminal.
package worktree
