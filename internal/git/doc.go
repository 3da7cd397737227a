// Package git is the external VCS gateway for the jungle CLI.
//
// Every primitive operation (root discovery, worktree enumeration, branch
// and status queries, worktree add/remove, merge checks, and the diagnostic
// probes) is a synchronous subprocess invocation of the git binary via
// os/exec, with stdout captured for parsing and stderr surfaced verbatim
// in errors.
//
// We shell out to `git` rather than using a Go Git library (e.g., go-git)
// because worktree operations require full Git CLI compatibility, and
// go-git's worktree support is limited. Failures are classified by exit
// status only; stderr text is never parsed for meaning.
package git
