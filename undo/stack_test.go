package undo

import (
	"testing"

	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGrid(t *testing.T) *bricks.Grid {
	t.Helper()
	g := bricks.NewGrid("Cube", "BRICKS", mgl32.Vec3{1, 1, 1})
	require.NoError(t, g.AddBrick(bricks.K(0, 0, 0), [3]int{1, 1, 1}, "Red"))
	return g
}

func TestRollbackToCleanState(t *testing.T) {
	g := newGrid(t)
	s := NewStack(g, 0)

	id := s.PushClean("sculpt")
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	require.NoError(t, g.AddBrick(bricks.K(1, 0, 0), [3]int{1, 1, 1}, "Blue"))
	g.Cell(bricks.K(0, 0, 0)).MatName = "Green"

	require.NoError(t, s.RollbackToCleanState())
	assert.Nil(t, g.Cell(bricks.K(1, 0, 0)))
	assert.Equal(t, "Red", g.Cell(bricks.K(0, 0, 0)).MatName)
	assert.Equal(t, 0, s.Len())

	assert.ErrorIs(t, s.RollbackToCleanState(), ErrNoCleanState)
}

func TestRollbackReturnsToNewestCleanState(t *testing.T) {
	g := newGrid(t)
	s := NewStack(g, 0)

	s.PushClean("first")
	g.Cell(bricks.K(0, 0, 0)).MatName = "Blue"
	s.PushClean("second")
	g.Cell(bricks.K(0, 0, 0)).MatName = "Green"

	require.NoError(t, s.RollbackToCleanState())
	assert.Equal(t, "Blue", g.Cell(bricks.K(0, 0, 0)).MatName)
	require.NoError(t, s.RollbackToCleanState())
	assert.Equal(t, "Red", g.Cell(bricks.K(0, 0, 0)).MatName)
}

func TestDepthIsBounded(t *testing.T) {
	g := newGrid(t)
	s := NewStack(g, 2)
	s.PushClean("a")
	g.Cell(bricks.K(0, 0, 0)).MatName = "Blue"
	s.PushClean("b")
	s.PushClean("c")
	require.Equal(t, 2, s.Len())

	require.NoError(t, s.RollbackToCleanState())
	require.NoError(t, s.RollbackToCleanState())
	assert.Equal(t, "Blue", g.Cell(bricks.K(0, 0, 0)).MatName, "the oldest state was dropped")
	assert.ErrorIs(t, s.RollbackToCleanState(), ErrNoCleanState)
}
