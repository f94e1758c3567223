// Package undo keeps grid snapshots so a sculpt session can be rolled back.
package undo

import (
	"errors"
	"time"

	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
	"github.com/google/uuid"
)

var ErrNoCleanState = errors.New("undo: no clean state recorded")

// DefaultDepth bounds the number of snapshots kept.
const DefaultDepth = 32

// Checkpoint is one snapshot of the grid.
type Checkpoint struct {
	ID    string
	Label string
	At    time.Time

	grid *bricks.Grid
}

// Stack is a bounded history of clean grid states. The session owns undo
// while it runs, so the stack only records where each session began. It
// is not safe for concurrent use.
type Stack struct {
	grid  *bricks.Grid
	depth int
	clean []Checkpoint
}

func NewStack(grid *bricks.Grid, depth int) *Stack {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Stack{grid: grid, depth: depth}
}

// PushClean records the current grid under label and returns the
// checkpoint id. The oldest checkpoint is dropped past the stack depth.
func (s *Stack) PushClean(label string) string {
	cp := Checkpoint{
		ID:    uuid.NewString(),
		Label: label,
		At:    time.Now(),
		grid:  s.grid.Clone(),
	}
	s.clean = append(s.clean, cp)
	if len(s.clean) > s.depth {
		s.clean = s.clean[len(s.clean)-s.depth:]
	}
	return cp.ID
}

// RollbackToCleanState restores the newest clean checkpoint and consumes it.
func (s *Stack) RollbackToCleanState() error {
	if len(s.clean) == 0 {
		return ErrNoCleanState
	}
	cp := s.clean[len(s.clean)-1]
	s.clean = s.clean[:len(s.clean)-1]
	s.grid.Restore(cp.grid)
	return nil
}

func (s *Stack) Len() int {
	return len(s.clean)
}
