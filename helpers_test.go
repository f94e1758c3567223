package bricksculpt

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/bricksculpt/config"
	"github.com/gekko3d/bricksculpt/undo"
	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
	"github.com/gekko3d/bricksculpt/voxelrt/rt/editor"
)

const pxPerUnit = 100.0

// columnPicker looks straight down: pixel (x, y) is world (x, y)/scale and
// the hit is the top face of the highest drawn cell in that column.
type columnPicker struct {
	grid   *bricks.Grid
	scale  float64
	hidden func(bricks.Key) bool
	calls  int
}

func (p *columnPicker) Pick(x, y float64, source string) (editor.Hit, bool) {
	p.calls++
	if source != p.grid.Source {
		return editor.Hit{}, false
	}
	wx, wy := x/p.scale, y/p.scale
	cx, cy := int(math.Floor(wx+0.5)), int(math.Floor(wy+0.5))

	var best bricks.Key
	found := false
	for _, k := range p.grid.Keys() {
		if k.X != cx || k.Y != cy || !p.grid.Drawn(k) {
			continue
		}
		root, ok := p.grid.Root(k)
		if !ok || (p.hidden != nil && p.hidden(root)) {
			continue
		}
		if !found || k.Z > best.Z {
			best = k
			found = true
		}
	}
	if !found {
		return editor.Hit{}, false
	}
	root, _ := p.grid.Root(best)
	top := (float32(best.Z) + 0.5) * p.grid.Step.Z()
	return editor.Hit{
		ObjectName: p.grid.Name(root),
		Key:        root,
		Point:      mgl32.Vec3{float32(wx), float32(wy), top},
		Normal:     mgl32.Vec3{0, 0, 1},
	}, true
}

type panicPicker struct{}

func (panicPicker) Pick(x, y float64, source string) (editor.Hit, bool) {
	panic("picker exploded")
}

type recordingWindow struct {
	cursors []Cursor
	headers []string
}

func (w *recordingWindow) SetCursor(c Cursor)        { w.cursors = append(w.cursors, c) }
func (w *recordingWindow) SetHeaderText(text string) { w.headers = append(w.headers, text) }

func (w *recordingWindow) lastCursor() Cursor {
	if len(w.cursors) == 0 {
		return CursorDefault
	}
	return w.cursors[len(w.cursors)-1]
}

func (w *recordingWindow) lastHeader() string {
	if len(w.headers) == 0 {
		return ""
	}
	return w.headers[len(w.headers)-1]
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	t       *testing.T
	grid    *bricks.Grid
	scene   *BrickScene
	window  *recordingWindow
	history *undo.Stack
	clock   *fakeClock
	picker  *columnPicker
	s       *Session
}

func newTestGrid() *bricks.Grid {
	return bricks.NewGrid("Cube", "BRICKS", mgl32.Vec3{1, 1, 1})
}

func addBrick(t *testing.T, g *bricks.Grid, k bricks.Key, size [3]int, mat string) {
	t.Helper()
	require.NoError(t, g.AddBrick(k, size, mat))
}

func newHarness(t *testing.T, g *bricks.Grid, mode Mode, mutate ...func(*config.Config)) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Model.Source = g.Source
	for _, m := range mutate {
		m(cfg)
	}

	h := &harness{
		t:       t,
		grid:    g,
		scene:   NewBrickScene(g),
		window:  &recordingWindow{},
		history: undo.NewStack(g, 0),
		clock:   &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
	}
	h.picker = &columnPicker{grid: g, scale: pxPerUnit, hidden: h.scene.Hidden}

	s, err := NewSession(Options{
		Grid:     g,
		Picker:   h.picker,
		Redrawer: h.scene,
		Window:   h.window,
		History:  h.history,
		Config:   cfg,
		Clock:    h.clock.Now,
		Mode:     mode,
	})
	require.NoError(t, err)
	h.s = s
	return h
}

func px(wx, wy float64) (float64, float64) {
	return wx * pxPerUnit, wy * pxPerUnit
}

func (h *harness) moveAt(x, y float64, mods Modifiers) Status {
	return h.s.Handle(Event{Type: EventMove, X: x, Y: y, Mods: mods})
}

func (h *harness) move(wx, wy float64, mods Modifiers) Status {
	x, y := px(wx, wy)
	return h.moveAt(x, y, mods)
}

func (h *harness) press(k Key, wx, wy float64, mods Modifiers) Status {
	x, y := px(wx, wy)
	return h.s.Handle(Event{Type: EventPress, Key: k, X: x, Y: y, Mods: mods})
}

func (h *harness) release(k Key, wx, wy float64, mods Modifiers) Status {
	x, y := px(wx, wy)
	return h.s.Handle(Event{Type: EventRelease, Key: k, X: x, Y: y, Mods: mods})
}

var (
	noMods    = Modifiers{}
	altMods   = Modifiers{Alt: true}
	shiftMods = Modifiers{Shift: true}
	ctrlMods  = Modifiers{Ctrl: true}
)
