package bricksculpt

import (
	"time"

	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
)

// soloLayer hides every brick outside one z-layer while the user holds Ctrl
// over it.
type soloLayer struct {
	active bool
	z      int
	hidden []bricks.Key

	ctrlPressedAt  time.Time
	pendingDisable bool
}

// handleSolo consumes the Ctrl taps and Escape presses that end a solo.
func (s *Session) handleSolo(ev Event) bool {
	now := s.now()
	tap := s.cfg.Thresholds.CtrlTapWindow.Duration

	switch {
	case ev.Type == EventPress && ev.Key.IsCtrl():
		if s.solo.active {
			s.solo.ctrlPressedAt = now
			s.solo.pendingDisable = true
			return true
		}
	case ev.Type == EventMove:
		s.solo.pendingDisable = false
	}

	if !s.solo.active {
		return false
	}
	escape := ev.Type == EventPress && ev.Key == KeyEscape
	tapped := ev.Type == EventRelease && ev.Key.IsCtrl() &&
		s.solo.pendingDisable && now.Sub(s.solo.ctrlPressedAt) < tap
	if escape || tapped {
		s.unsolo()
		return true
	}
	return false
}

// maybeSolo solos the hovered layer when Ctrl is held, the pointer moved
// and the last stroke ended long enough ago.
func (s *Session) maybeSolo() {
	t := s.cfg.Thresholds
	now := s.now()
	if !s.mods.Ctrl {
		return
	}
	if s.solo.pendingDisable && now.Sub(s.solo.ctrlPressedAt) <= t.CtrlTapWindow.Duration {
		return
	}
	if s.moved <= t.SoloTravelPixels || now.Sub(s.releasedAt) < t.SoloDelay.Duration {
		return
	}
	if s.solo.active && s.solo.z == s.hovered.Z {
		return
	}
	s.soloLayerAt(s.hovered.Z)
}

func (s *Session) soloLayerAt(z int) {
	s.unsolo()
	inLayer := make(map[bricks.Key]struct{})
	for _, k := range s.grid.Layer(z) {
		inLayer[k] = struct{}{}
	}
	var hidden []bricks.Key
	for _, k := range s.grid.Roots() {
		if _, ok := inLayer[k]; !ok {
			hidden = append(hidden, k)
		}
	}
	s.redraw.SetHidden(hidden, true)
	s.solo.active = true
	s.solo.z = z
	s.solo.hidden = hidden
	s.log.Debugf("solo layer %d, %d bricks hidden", z, len(hidden))
}

func (s *Session) unsolo() {
	if !s.solo.active {
		return
	}
	s.redraw.SetHidden(s.solo.hidden, false)
	s.solo = soloLayer{}
}

// SoloLayer returns the soloed z-layer, if any.
func (s *Session) SoloLayer() (int, bool) {
	return s.solo.z, s.solo.active
}
