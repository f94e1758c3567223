package bricksculpt

import (
	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
)

// normalizeRelease re-merges the candidates of the stroke that just ended.
// Both stroke lists are reset whether or not anything merged.
func (s *Session) normalizeRelease() {
	defer func() {
		s.added.Reset()
		s.mergeCandidates.Reset()
	}()
	if s.mergeCandidates.Len() < 2 {
		return
	}

	cand := s.mergeCandidates.Keys()
	s.redraw.DeleteObjects(s.added.Keys()...)
	split := s.grid.SplitAll(cand)
	merged := s.grid.Merge(cand, bricks.MergeOptions{AnyHeight: true})
	s.touched.Add(merged...)
	s.touched.Add(cand...)
	s.touched.Add(split...)
	redraw := append(append(merged, cand...), split...)
	s.redraw.RequestRedraw(bricks.Uniquify(redraw), "merging bricks", false, true)
	s.log.Debugf("merged %d candidates into %d bricks", len(cand), len(merged))
}

// commit finalizes the session. Merge/split sessions only refresh exposure
// of what they touched; draw and paint sessions also merge what they added,
// painted or exposed back into larger bricks.
func (s *Session) commit() {
	g := s.grid
	var redraw []bricks.Key

	if s.mode == ModeMergeSplit {
		s.redraw.DeselectAll()
		for _, k := range s.touched.Keys() {
			if _, ok := g.Root(k); ok {
				g.SetAllExposures(k)
			}
		}
		redraw = s.touched.Keys()
	} else {
		cand := s.commitMerge.Keys()
		var merged []bricks.Key
		if bricks.MergeableType(g.BrickType) {
			opts := bricks.MergeOptions{}
			if g.BrickType == "BRICKS AND PLATES" {
				opts.TargetType = "BRICK"
			}
			merged = g.Merge(cand, opts)
		}

		expose := append([]bricks.Key(nil), merged...)
		if s.mode == ModeDraw {
			expose = append(expose, s.targeted.Keys()...)
		}
		expose = append(expose, cand...)
		for _, k := range bricks.Uniquify(expose) {
			if _, ok := g.Root(k); ok {
				g.SetAllExposures(k)
			}
		}

		// candidates absorbed into a merged brick lose their own object
		var absorbed []bricks.Key
		for _, k := range cand {
			if c := g.Cell(k); c != nil && c.Parent != nil {
				absorbed = append(absorbed, k)
			}
		}
		s.redraw.DeleteObjects(absorbed...)
		redraw = bricks.Uniquify(append(merged, cand...))
	}

	s.redraw.RequestRedraw(redraw, "committing changes", false, false)
	s.finish(StatusFinished)
	s.log.Infof("committed %d changed cells", s.touched.Len())
}

// cancel ends the session and rolls the grid back to where it began.
func (s *Session) cancel() {
	if s.status != StatusRunning {
		return
	}
	s.finish(StatusCancelled)
	if err := s.history.RollbackToCleanState(); err != nil {
		s.log.Errorf("rollback: %v", err)
	}
	if s.touched.Len() > 0 {
		s.redraw.RequestRedraw(s.touched.Keys(), "restoring bricks", false, false)
	}
	s.log.Infof("cancelled")
}

func (s *Session) finish(st Status) {
	s.unsolo()
	s.cursor = CursorDefault
	s.window.SetCursor(CursorDefault)
	s.setHeader("")
	s.status = st
	s.stateTransitioning = false
}
