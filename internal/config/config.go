// Package config loads the optional per-repository jungle configuration.
//
// A repository may carry a `.jungle.yml` (or `.jungle.yaml`) file parsed
// with gopkg.in/yaml.v3, or a `.jungle.jsonc` file in JSONC (JSON with
// Comments) parsed by stripping comments with github.com/tidwall/jsonc
// before handing the bytes to encoding/json.
//
// Every field has a default; a missing config file is not an error. A
// malformed file degrades to the defaults with a returned error so the
// caller can warn without aborting.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Config holds the tunable behavior of the CLI for one repository.
type Config struct {
	// TreesDir is the directory (relative to the invocation directory)
	// where new worktrees are placed when no explicit path is given.
	TreesDir string `yaml:"treesDir" json:"treesDir"`

	// BaseBranches are the candidate integration branches checked, in
	// order, by the delete merge-safety guard.
	BaseBranches []string `yaml:"baseBranches" json:"baseBranches"`

	// CopyFiles are files copied (opaque byte copies) from the
	// repository root into every newly created worktree, best-effort.
	CopyFiles []string `yaml:"copyFiles" json:"copyFiles"`

	// BranchLimit is the default number of records shown by the
	// branches command.
	BranchLimit int `yaml:"branchLimit" json:"branchLimit"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		TreesDir:     "trees",
		BaseBranches: []string{"main", "master", "develop"},
		CopyFiles:    []string{".env"},
		BranchLimit:  10,
	}
}

// candidate config file names, checked in order. The first one that
// exists wins.
var candidates = []string{".jungle.yml", ".jungle.yaml", ".jungle.jsonc"}

// Load reads the repository config from root. A missing file yields the
// defaults with a nil error. A file that exists but cannot be parsed
// yields the defaults together with the parse error, so listing still
// works while the user is told their config is broken.
func Load(root string) (*Config, error) {
	for _, name := range candidates {
		path := filepath.Join(root, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Default(), fmt.Errorf("reading %s: %w", name, err)
		}

		cfg := Default()
		if filepath.Ext(name) == ".jsonc" {
			// JSONC: strip comments and trailing commas, then parse as
			// plain JSON.
			if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
				return Default(), fmt.Errorf("parsing %s: %w", name, err)
			}
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return Default(), fmt.Errorf("parsing %s: %w", name, err)
			}
		}

		cfg.fillDefaults()
		return cfg, nil
	}

	return Default(), nil
}

// fillDefaults restores defaults for fields the file left empty, so a
// config that only sets treesDir keeps the stock base branches.
func (c *Config) fillDefaults() {
	d := Default()
	if c.TreesDir == "" {
		c.TreesDir = d.TreesDir
	}
	if len(c.BaseBranches) == 0 {
		c.BaseBranches = d.BaseBranches
	}
	if c.CopyFiles == nil {
		c.CopyFiles = d.CopyFiles
	}
	if c.BranchLimit <= 0 {
		c.BranchLimit = d.BranchLimit
	}
}
