package bricks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addUnits(t *testing.T, g *Grid, mat string, keys ...Key) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, g.AddBrick(k, UnitSize, mat))
	}
}

func TestMerge_Row(t *testing.T) {
	g := newTestGrid()
	row := []Key{K(0, 0, 0), K(1, 0, 0), K(2, 0, 0), K(3, 0, 0)}
	addUnits(t, g, "Red", row...)

	roots := g.Merge(row, MergeOptions{})
	assert.Equal(t, []Key{K(0, 0, 0)}, roots)
	assert.Equal(t, [3]int{4, 1, 1}, g.Cell(K(0, 0, 0)).Size)
	for _, k := range row[1:] {
		require.NotNil(t, g.Cell(k).Parent)
		assert.Equal(t, K(0, 0, 0), *g.Cell(k).Parent)
	}
}

func TestMerge_Square(t *testing.T) {
	g := newTestGrid()
	keys := []Key{K(0, 0, 0), K(1, 0, 0), K(0, 1, 0), K(1, 1, 0)}
	addUnits(t, g, "Red", keys...)

	roots := g.Merge(keys, MergeOptions{})
	assert.Equal(t, []Key{K(0, 0, 0)}, roots)
	assert.Equal(t, [3]int{2, 2, 1}, g.Cell(K(0, 0, 0)).Size)
}

func TestMerge_RespectsMaterialAndCandidates(t *testing.T) {
	g := newTestGrid()
	addUnits(t, g, "Red", K(0, 0, 0), K(1, 0, 0))
	addUnits(t, g, "Blue", K(2, 0, 0))
	addUnits(t, g, "Red", K(3, 0, 0))

	// K(3,0,0) is outside the candidate set
	roots := g.Merge([]Key{K(0, 0, 0), K(1, 0, 0), K(2, 0, 0)}, MergeOptions{})
	assert.ElementsMatch(t, []Key{K(0, 0, 0), K(2, 0, 0)}, roots)
	assert.Equal(t, [3]int{2, 1, 1}, g.Cell(K(0, 0, 0)).Size)
	assert.Equal(t, UnitSize, g.Cell(K(2, 0, 0)).Size)
	assert.True(t, g.Cell(K(3, 0, 0)).IsRoot())
}

func TestMerge_Heights(t *testing.T) {
	column := []Key{K(0, 0, 0), K(0, 0, 1), K(0, 0, 2)}

	g := newTestGrid()
	addUnits(t, g, "Red", column...)
	roots := g.Merge(column, MergeOptions{})
	assert.Len(t, roots, 3)

	g = newTestGrid()
	addUnits(t, g, "Red", column...)
	roots = g.Merge(column, MergeOptions{AnyHeight: true})
	assert.Equal(t, []Key{K(0, 0, 0)}, roots)
	assert.Equal(t, [3]int{1, 1, 3}, g.Cell(K(0, 0, 0)).Size)

	g = NewGrid("Cube", "BRICKS AND PLATES", newTestGrid().Step)
	addUnits(t, g, "Red", column...)
	roots = g.Merge(column, MergeOptions{TargetType: "BRICK"})
	assert.Equal(t, []Key{K(0, 0, 0)}, roots)
}

func TestMerge_ThenSplitAllRecoversUnits(t *testing.T) {
	g := newTestGrid()
	var keys []Key
	for x := 0; x < 3; x++ {
		for y := 0; y < 2; y++ {
			keys = append(keys, K(x, y, 0))
		}
	}
	addUnits(t, g, "Red", keys...)
	before := g.Roots()

	roots := g.Merge(keys, MergeOptions{AnyHeight: true})
	require.Len(t, roots, 1)

	split := g.SplitAll(keys)
	assert.ElementsMatch(t, keys, split)
	assert.Equal(t, before, g.Roots())
	for _, k := range keys {
		assert.True(t, g.Cell(k).IsUnit())
	}
}

func TestMerge_KeepsExistingLargeBricks(t *testing.T) {
	g := newTestGrid()
	require.NoError(t, g.AddBrick(K(0, 0, 0), [3]int{2, 1, 1}, "Red"))
	addUnits(t, g, "Red", K(5, 0, 0))

	roots := g.Merge([]Key{K(0, 0, 0), K(5, 0, 0)}, MergeOptions{})
	assert.ElementsMatch(t, []Key{K(0, 0, 0), K(5, 0, 0)}, roots)
}
