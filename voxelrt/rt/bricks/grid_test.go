package bricks

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrid() *Grid {
	return NewGrid("Cube", "BRICKS", mgl32.Vec3{1, 1, 1})
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey(" 3,-2, 7")
	require.NoError(t, err)
	assert.Equal(t, K(3, -2, 7), k)
	assert.Equal(t, "3,-2,7", k.String())

	_, err = ParseKey("1,2")
	assert.Error(t, err)
	_, err = ParseKey("1,b,2")
	assert.Error(t, err)
}

func TestGrid_NameRoundTrip(t *testing.T) {
	g := newTestGrid()
	name := g.Name(K(1, 2, 3))
	assert.Equal(t, "Bricker_Cube_brick__1,2,3", name)

	k, ok := g.KeyFromName(name)
	require.True(t, ok)
	assert.Equal(t, K(1, 2, 3), k)

	_, ok = g.KeyFromName("Bricker_Other_brick__1,2,3")
	assert.False(t, ok)
}

func TestGrid_AddBrickAndRoot(t *testing.T) {
	g := newTestGrid()
	require.NoError(t, g.AddBrick(K(0, 0, 0), [3]int{2, 2, 1}, "Red"))

	for _, k := range g.KeysInBrick(K(0, 0, 0), [3]int{2, 2, 1}) {
		root, ok := g.Root(k)
		require.True(t, ok, "key %s should resolve", k)
		assert.Equal(t, K(0, 0, 0), root)
	}
	assert.Equal(t, []Key{K(0, 0, 0)}, g.Roots())
	assert.Equal(t, "2x2x1 Red", g.Describe(K(1, 1, 0)))

	// overlapping placement is refused
	assert.Error(t, g.AddBrick(K(1, 1, 0), UnitSize, "Blue"))
}

func TestGrid_AddBrickOutOfBounds(t *testing.T) {
	g := newTestGrid()
	g.Bounds = &Bounds{Min: K(0, 0, 0), Max: K(3, 3, 3)}
	err := g.AddBrick(K(3, 0, 0), [3]int{2, 1, 1}, "Red")
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestGrid_CloneIsDeep(t *testing.T) {
	g := newTestGrid()
	require.NoError(t, g.AddBrick(K(0, 0, 0), [3]int{2, 1, 1}, "Red"))

	snap := g.Clone()
	g.Cell(K(1, 0, 0)).Parent = nil
	g.Cell(K(0, 0, 0)).MatName = "Blue"

	assert.Equal(t, "Red", snap.Cell(K(0, 0, 0)).MatName)
	require.NotNil(t, snap.Cell(K(1, 0, 0)).Parent)

	g.Restore(snap)
	assert.Equal(t, "Red", g.Cell(K(0, 0, 0)).MatName)
}

func TestGrid_Layer(t *testing.T) {
	g := newTestGrid()
	require.NoError(t, g.AddBrick(K(0, 0, 0), [3]int{1, 1, 3}, "Red"))
	require.NoError(t, g.AddBrick(K(1, 0, 1), UnitSize, "Red"))
	require.NoError(t, g.AddBrick(K(2, 0, 4), UnitSize, "Red"))

	assert.Equal(t, []Key{K(0, 0, 0), K(1, 0, 1)}, g.Layer(1))
	assert.Empty(t, g.Layer(3))
}

func TestGrid_WorldLocUsesTransform(t *testing.T) {
	g := newTestGrid()
	g.Transform.Position = mgl32.Vec3{10, 0, 0}
	g.Transform.Scale = mgl32.Vec3{2, 2, 2}

	loc := g.WorldLoc(K(1, 0, 0))
	assert.InDelta(t, 12.0, loc.X(), 1e-5)
	assert.InDelta(t, 0.5, g.ToLocal(mgl32.Vec3{1, 0, 0}).X(), 1e-5)
}
