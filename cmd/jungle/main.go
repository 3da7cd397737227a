// Package main is the entry point for the jungle CLI.
//
// This binary lists, creates, deletes, and switches between git
// worktrees. It delegates all functionality to the internal/cli
// package, which defines cobra commands.
package main

import (
	"github.com/jungle-sh/jungle/internal/cli"
)

// version, commit, and date are set at build time via ldflags. During
// development they default to "dev", "none", and "unknown".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
