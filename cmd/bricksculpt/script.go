package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/bricksculpt"
	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
	"github.com/gekko3d/bricksculpt/voxelrt/rt/core"
)

// script is a recorded sculpt session: a camera, a viewport and the input
// that was given.
type script struct {
	Mode     string       `yaml:"mode"`
	Material string       `yaml:"material"`
	Camera   *cameraFile  `yaml:"camera"`
	Viewport viewportFile `yaml:"viewport"`
	Steps    []scriptStep `yaml:"events"`
}

type cameraFile struct {
	Position [3]float32 `yaml:"position,flow"`
	Yaw      float32    `yaml:"yaw"`
	Pitch    float32    `yaml:"pitch"`
	Fov      float32    `yaml:"fov"`
}

type viewportFile struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// scriptStep is one of press, release, move or wait. Press and release use
// the last pointer position unless at is given.
type scriptStep struct {
	Press   string    `yaml:"press,omitempty"`
	Release string    `yaml:"release,omitempty"`
	Move    []float64 `yaml:"move,flow,omitempty"`
	At      []float64 `yaml:"at,flow,omitempty"`
	Mods    []string  `yaml:"mods,flow,omitempty"`
	Wait    string    `yaml:"wait,omitempty"`
}

// timedEvent is an event delivered after Delay of virtual time.
type timedEvent struct {
	Delay time.Duration
	Event bricksculpt.Event
}

func loadScript(path string) (*script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return decodeScript(data)
}

func decodeScript(data []byte) (*script, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		s.Viewport = viewportFile{Width: 800, Height: 600}
	}
	return &s, nil
}

func parseMode(name string) (bricksculpt.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "draw":
		return bricksculpt.ModeDraw, nil
	case "merge_split", "merge", "split":
		return bricksculpt.ModeMergeSplit, nil
	case "paint":
		return bricksculpt.ModePaint, nil
	}
	return 0, fmt.Errorf("unknown mode %q", name)
}

func parseMods(names []string) (bricksculpt.Modifiers, error) {
	var m bricksculpt.Modifiers
	for _, n := range names {
		switch strings.ToUpper(n) {
		case "ALT":
			m.Alt = true
		case "SHIFT":
			m.Shift = true
		case "CTRL", "CONTROL":
			m.Ctrl = true
		default:
			return m, fmt.Errorf("unknown modifier %q", n)
		}
	}
	return m, nil
}

func pointerArg(v []float64, what string) (float64, float64, error) {
	if len(v) != 2 {
		return 0, 0, fmt.Errorf("%s needs [x, y], got %v", what, v)
	}
	return v[0], v[1], nil
}

// events expands the steps into input events. A wait becomes a timer event
// after the given delay.
func (s *script) events() ([]timedEvent, error) {
	var out []timedEvent
	var x, y float64
	for i, st := range s.Steps {
		mods, err := parseMods(st.Mods)
		if err != nil {
			return nil, fmt.Errorf("events[%d]: %w", i, err)
		}
		if st.At != nil {
			if x, y, err = pointerArg(st.At, "at"); err != nil {
				return nil, fmt.Errorf("events[%d]: %w", i, err)
			}
		}

		ev := bricksculpt.Event{Mods: mods}
		var delay time.Duration
		switch {
		case st.Press != "" || st.Release != "":
			name, typ := st.Press, bricksculpt.EventPress
			if name == "" {
				name, typ = st.Release, bricksculpt.EventRelease
			}
			if ev.Key, err = bricksculpt.ParseKeyName(name); err != nil {
				return nil, fmt.Errorf("events[%d]: %w", i, err)
			}
			ev.Type = typ
		case st.Move != nil:
			if x, y, err = pointerArg(st.Move, "move"); err != nil {
				return nil, fmt.Errorf("events[%d]: %w", i, err)
			}
			ev.Type = bricksculpt.EventMove
		case st.Wait != "":
			if delay, err = time.ParseDuration(st.Wait); err != nil {
				return nil, fmt.Errorf("events[%d]: wait: %w", i, err)
			}
			ev.Type = bricksculpt.EventTimer
		default:
			return nil, fmt.Errorf("events[%d]: empty step", i)
		}
		ev.X, ev.Y = x, y
		out = append(out, timedEvent{Delay: delay, Event: ev})
	}
	return out, nil
}

// camera returns the scripted camera, or one looking straight down on the
// middle of the grid.
func (s *script) camera(g *bricks.Grid) *core.CameraState {
	cam := core.NewCameraState()
	if s.Camera != nil {
		cam.Position = mgl32.Vec3(s.Camera.Position)
		cam.Yaw = s.Camera.Yaw
		cam.Pitch = s.Camera.Pitch
		if s.Camera.Fov > 0 {
			cam.FovY = s.Camera.Fov
		}
		return cam
	}
	return topDownCamera(g)
}

func topDownCamera(g *bricks.Grid) *core.CameraState {
	cam := core.NewCameraState()
	var lo, hi mgl32.Vec3
	for i, root := range g.Roots() {
		minB, maxB := g.BrickAABB(root)
		if i == 0 {
			lo, hi = minB, maxB
			continue
		}
		for a := 0; a < 3; a++ {
			lo[a] = min(lo[a], minB[a])
			hi[a] = max(hi[a], maxB[a])
		}
	}
	centre := g.Transform.PointToWorld(lo.Add(hi).Mul(0.5))
	extent := hi.Sub(lo)
	cam.Position = mgl32.Vec3{centre.X(), centre.Y(), centre.Z() + 2*max(extent.X(), extent.Y(), 4)}
	cam.Pitch = -mgl32.DegToRad(90)
	return cam
}

// virtualClock advances only when the script waits.
type virtualClock struct {
	now time.Time
}

func (c *virtualClock) Now() time.Time { return c.now }

// replay feeds events to the session until it ends or the script runs out.
func replay(s *bricksculpt.Session, events []timedEvent, clock *virtualClock) bricksculpt.Status {
	for _, te := range events {
		clock.now = clock.now.Add(te.Delay)
		if st := s.Handle(te.Event); st != bricksculpt.StatusRunning {
			return st
		}
	}
	return s.Status()
}
