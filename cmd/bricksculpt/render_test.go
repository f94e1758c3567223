package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/bricksculpt/config"
	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
)

func TestMaterialColor(t *testing.T) {
	assert.Equal(t, palette["Red"], materialColor("Red"))
	assert.Equal(t, materialColor("Teal"), materialColor("Teal"), "fallback is stable")
	assert.Equal(t, uint8(0xff), materialColor("Teal").A)
}

func TestRenderLayers(t *testing.T) {
	assert.Equal(t, "(empty grid)\n", renderLayers(bricks.NewGrid("Model", "BRICKS", [3]float32{1, 1, 1})))

	g, err := decodeGrid([]byte(rowModel), config.DefaultConfig())
	require.NoError(t, err)
	out := renderLayers(g)
	assert.Contains(t, out, "z=0")
	assert.Contains(t, out, "z=-1")
	assert.Contains(t, out, "▓▓")
	assert.Contains(t, out, "██")
	assert.Contains(t, out, "··")
}

func TestExportPNG(t *testing.T) {
	g, err := decodeGrid([]byte(rowModel), config.DefaultConfig())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "layers.png")
	require.NoError(t, exportPNG(path, g))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, exportPNG(path, bricks.NewGrid("Model", "BRICKS", [3]float32{1, 1, 1})))
}
