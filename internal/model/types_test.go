package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestClassifyCounts exercises every combination of the three count
// buckets. Any combination with two or more non-zero counts must be
// Mixed; a single non-zero bucket maps to its own state; all-zero is
// Clean.
func TestClassifyCounts(t *testing.T) {
	tests := []struct {
		name      string
		staged    int
		modified  int
		untracked int
		want      DirtyState
	}{
		{"all zero", 0, 0, 0, StateClean},
		{"staged only", 2, 0, 0, StateStaged},
		{"modified only", 0, 3, 0, StateModified},
		{"untracked only", 0, 0, 1, StateUntracked},
		{"staged and modified", 1, 2, 0, StateMixed},
		{"staged and untracked", 1, 0, 1, StateMixed},
		{"modified and untracked", 0, 1, 4, StateMixed},
		{"all three", 1, 1, 1, StateMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCounts(tt.staged, tt.modified, tt.untracked))
		})
	}
}

// TestClassifyCountsExhaustive sweeps all 8 boolean combinations and
// asserts that exactly one state is produced and that it is never
// StateError (which is reserved for failed status queries).
func TestClassifyCountsExhaustive(t *testing.T) {
	for s := 0; s <= 1; s++ {
		for m := 0; m <= 1; m++ {
			for u := 0; u <= 1; u++ {
				got := ClassifyCounts(s, m, u)
				assert.NotEqual(t, StateError, got)
				assert.Contains(t, []DirtyState{
					StateClean, StateModified, StateStaged, StateUntracked, StateMixed,
				}, got)
			}
		}
	}
}

// TestSymbolColorMapping pins down the fixed symbol/color table. This
// mapping is a compatibility requirement.
func TestSymbolColorMapping(t *testing.T) {
	tests := []struct {
		state  DirtyState
		symbol string
		color  string
	}{
		{StateClean, "✓", "green"},
		{StateModified, "!", "red"},
		{StateStaged, "S", "red"},
		{StateUntracked, "?", "yellow"},
		{StateMixed, "M", "red"},
		{StateError, "✗", "red"},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.symbol, tt.state.Symbol())
			assert.Equal(t, tt.color, tt.state.Color())
		})
	}
}

func TestCLIError(t *testing.T) {
	err := NewCLIError(ExitNotFound, "worktree 'x' not found")
	assert.Equal(t, "worktree 'x' not found", err.Error())
	assert.Equal(t, ExitNotFound, err.Code)
	assert.Nil(t, err.Unwrap())

	wrapped := WrapCLIError(ExitGitError, "git worktree add failed", err)
	assert.Contains(t, wrapped.Error(), "git worktree add failed")
	assert.Equal(t, err, wrapped.Unwrap())
}
