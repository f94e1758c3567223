package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/bricksculpt/config"
	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
)

const rowModel = `
source: Wall
position: [1, 2, 3]
bounds:
  min: "-5,-5,0"
  max: "5,5,4"
bricks:
  - at: "0,0,0"
    size: [2, 1, 1]
    material: Red
  - at: "2,0,0"
    material: Blue
    custom: true
shell:
  - "0,0,-1"
`

func TestDecodeGrid(t *testing.T) {
	g, err := decodeGrid([]byte(rowModel), config.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "Wall", g.Source)
	assert.Equal(t, "BRICKS", g.BrickType, "brick type defaults from config")
	assert.InDelta(t, 1.2, g.Step.Z(), 1e-6)
	assert.Equal(t, float32(2), g.Transform.Position.Y())
	require.NotNil(t, g.Bounds)
	assert.Equal(t, bricks.K(5, 5, 4), g.Bounds.Max)

	assert.Equal(t, []bricks.Key{bricks.K(0, 0, 0), bricks.K(2, 0, 0)}, g.Roots())
	root, ok := g.Root(bricks.K(1, 0, 0))
	require.True(t, ok)
	assert.Equal(t, bricks.K(0, 0, 0), root)
	assert.Equal(t, "Red", g.Cell(root).MatName)
	assert.True(t, g.Cell(bricks.K(2, 0, 0)).CustomMat)

	shell := g.Cell(bricks.K(0, 0, -1))
	require.NotNil(t, shell)
	assert.False(t, shell.Draw)
}

func TestDecodeGrid_Errors(t *testing.T) {
	cfg := config.DefaultConfig()
	tests := map[string]string{
		"bad key":      "bricks:\n  - at: \"1,2\"\n",
		"overlap":      "bricks:\n  - at: \"0,0,0\"\n    size: [2, 1, 1]\n  - at: \"1,0,0\"\n",
		"shell on top": "bricks:\n  - at: \"0,0,0\"\nshell:\n  - \"0,0,0\"\n",
		"bad bounds":   "bounds:\n  min: x\n  max: \"1,1,1\"\n",
		"not yaml":     "bricks: [",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := decodeGrid([]byte(src), cfg)
			assert.Error(t, err)
		})
	}
}

func TestGridFile_RoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	g, err := decodeGrid([]byte(rowModel), cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, saveGrid(path, g))

	back, err := loadGrid(path, cfg)
	require.NoError(t, err)
	assert.Equal(t, g.Source, back.Source)
	assert.Equal(t, g.Bounds, back.Bounds)
	assert.Equal(t, g.Roots(), back.Roots())
	assert.Equal(t, g.Len(), back.Len())
	for _, k := range g.Keys() {
		want, got := g.Cell(k), back.Cell(k)
		require.NotNil(t, got, k.String())
		assert.Equal(t, want.Draw, got.Draw, k.String())
		assert.Equal(t, want.Size, got.Size, k.String())
		assert.Equal(t, want.MatName, got.MatName, k.String())
		assert.Equal(t, want.CustomMat, got.CustomMat, k.String())
	}
}

func TestLoadGrid_Missing(t *testing.T) {
	_, err := loadGrid(filepath.Join(t.TempDir(), "nope.yaml"), config.DefaultConfig())
	assert.Error(t, err)
}
