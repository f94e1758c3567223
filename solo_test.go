package bricksculpt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
)

func newSoloHarness(t *testing.T) *harness {
	g := newTestGrid()
	addBrick(t, g, bricks.K(0, 0, 0), bricks.UnitSize, "Red")
	addBrick(t, g, bricks.K(1, 0, 0), bricks.UnitSize, "Red")
	addBrick(t, g, bricks.K(0, 0, 1), bricks.UnitSize, "Blue")
	return newHarness(t, g, ModeDraw)
}

func assertHidden(t *testing.T, h *harness, k bricks.Key, hidden bool) {
	t.Helper()
	obj, ok := h.scene.Object(k)
	require.True(t, ok, k.String())
	assert.Equal(t, hidden, obj.Hidden, k.String())
}

func TestSolo_CtrlHoverHidesOtherLayers(t *testing.T) {
	h := newSoloHarness(t)

	h.move(0, 0.2, ctrlMods)
	z, ok := h.s.SoloLayer()
	require.True(t, ok)
	assert.Equal(t, 1, z)
	assertHidden(t, h, bricks.K(0, 0, 0), true)
	assertHidden(t, h, bricks.K(1, 0, 0), true)
	assertHidden(t, h, bricks.K(0, 0, 1), false)

	// hidden bricks cannot be hovered
	h.move(1, 0, noMods)
	assert.False(t, h.s.hovering)
}

func TestSolo_CtrlTapRestores(t *testing.T) {
	h := newSoloHarness(t)
	h.move(0, 0.2, ctrlMods)
	require.True(t, h.s.solo.active)

	h.press(KeyLeftControl, 0, 0.2, ctrlMods)
	h.release(KeyLeftControl, 0, 0.2, ctrlMods)
	_, ok := h.s.SoloLayer()
	assert.False(t, ok)
	assertHidden(t, h, bricks.K(0, 0, 0), false)

	// a slow press is not a tap
	h.move(0, 0.4, ctrlMods)
	require.True(t, h.s.solo.active)
	h.press(KeyLeftControl, 0, 0.4, ctrlMods)
	h.clock.Advance(300 * time.Millisecond)
	h.release(KeyLeftControl, 0, 0.4, noMods)
	assert.True(t, h.s.solo.active)

	// moving between press and release is not a tap either
	h.press(KeyLeftControl, 0, 0.4, ctrlMods)
	h.move(0, 0.45, ctrlMods)
	h.release(KeyLeftControl, 0, 0.45, noMods)
	assert.True(t, h.s.solo.active)
}

func TestSolo_EscapeRestoresWithoutCancelling(t *testing.T) {
	h := newSoloHarness(t)
	h.move(0, 0.2, ctrlMods)
	require.True(t, h.s.solo.active)

	assert.Equal(t, StatusRunning, h.press(KeyEscape, 0, 0.2, noMods))
	assert.False(t, h.s.solo.active)
	assertHidden(t, h, bricks.K(1, 0, 0), false)

	assert.Equal(t, StatusCancelled, h.press(KeyEscape, 0, 0.2, noMods))
}

func TestSolo_WaitsAfterStroke(t *testing.T) {
	h := newSoloHarness(t)

	h.press(MouseButtonLeft, 1, 0, noMods)
	h.release(MouseButtonLeft, 1, 0, noMods)
	require.True(t, h.grid.Drawn(bricks.K(1, 0, 1)))

	h.move(0, 0.6, ctrlMods)
	assert.False(t, h.s.solo.active)

	h.clock.Advance(800 * time.Millisecond)
	h.move(0, 0.8, ctrlMods)
	z, ok := h.s.SoloLayer()
	require.True(t, ok)
	assert.Equal(t, 1, z)
	assertHidden(t, h, bricks.K(1, 0, 1), false)
	assertHidden(t, h, bricks.K(1, 0, 0), true)

	assert.Equal(t, StatusFinished, h.press(KeyEnter, 0, 0.8, noMods))
	for _, obj := range h.scene.Objects() {
		assert.False(t, obj.Hidden, obj.Name)
	}
}
