package bricksculpt

import (
	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
)

func (s *Session) widthDivisor() float32 {
	if bricks.IsRoundType(s.grid.BrickType) {
		return s.cfg.Thresholds.RoundWidthDivisor
	}
	return s.cfg.Thresholds.SquareWidthDivisor
}

// addBrick places a unit brick next to the hovered one, on the side the
// pointer hit.
func (s *Session) addBrick() Result {
	g := s.grid
	cur := s.hovered
	cell := g.Cell(cur)
	if cell == nil {
		return reject(ReportError, "add brick: %s: %v", cur, bricks.ErrNoBrick)
	}

	diff := g.ToLocal(s.hit.Point.Sub(g.WorldLoc(cur)))
	next := bricks.NearbyKey(diff, cur, g.Step, s.widthDivisor())
	if s.added.Has(next) {
		return okResult
	}
	if nc := g.Cell(next); nc != nil && nc.Val != 0 {
		return okResult
	}
	if !g.InBounds(next) {
		return reject(ReportWarning, "brick could not be added at %s: outside the model bounds", next)
	}

	c := bricks.NewCell(cell.MatName)
	c.CustomMat = cell.CustomMat
	from := cur
	c.CreatedFrom = &from
	g.Set(next, c)

	s.added.Add(next)
	s.mergeCandidates.Add(next)
	s.commitMerge.Add(next)
	s.targeted.Add(cur)
	s.touched.Add(next)
	s.redraw.RequestRedraw([]bricks.Key{next}, "adding new brick", false, true)
	return okResult
}

// removeBrick erases the hovered brick. Bricks added during the current
// stroke are dropped outright; an existing brick needs Shift and is first
// split down to the unit cell under the pointer.
func (s *Session) removeBrick(mods Modifiers) Result {
	g := s.grid
	cur := s.hovered
	shallow := s.added.Has(cur)
	deep := !shallow && mods.Shift && !s.deletedByCascade.Has(cur)
	if !shallow && !deep {
		if s.deletedByCascade.Has(cur) {
			return okResult
		}
		return reject(ReportInfo, "hold Shift to remove existing bricks")
	}

	var redraw []bricks.Key
	if deep {
		keys, unit, err := s.splitToNearestUnit(cur)
		if err != nil {
			return reject(ReportError, "remove brick: %v", err)
		}
		cur = unit
		update, created := g.UpdateAdjacentAfterDelete(cur)
		s.deletedByCascade.Add(created...)
		redraw = bricks.Uniquify(append(keys, s.brickKeys(update)...))
	} else {
		s.added.Remove(cur)
		s.mergeCandidates.Remove(cur)
		s.commitMerge.Remove(cur)
	}

	g.Cell(cur).Clear()
	if s.redraw.DeleteObjects(cur) > 0 {
		s.redraw.TagRedraw()
	}
	s.touched.Add(cur)

	if deep {
		s.redraw.RequestRedraw(redraw, "updating surrounding bricks", false, true)
		s.mergeCandidates.Add(redraw...)
		s.commitMerge.Add(redraw...)
		s.touched.Add(redraw...)
	}
	return okResult
}

// brickKeys expands representative keys to every key their bricks cover.
func (s *Session) brickKeys(roots []bricks.Key) []bricks.Key {
	var out []bricks.Key
	for _, k := range roots {
		root, ok := s.grid.Root(k)
		if !ok {
			out = append(out, k)
			continue
		}
		out = append(out, s.grid.KeysInBrick(root, s.grid.Cell(root).Size)...)
	}
	return bricks.Uniquify(out)
}

// splitToNearestUnit splits the brick at root into unit cells and returns
// the covered keys plus the one nearest to the hit point. The old object is
// deleted.
func (s *Session) splitToNearestUnit(root bricks.Key) ([]bricks.Key, bricks.Key, error) {
	keys, err := s.grid.Split(root, true, true)
	if err != nil {
		return nil, root, err
	}
	s.redraw.DeleteObjects(root)

	nearest := root
	best := float32(-1)
	for _, k := range keys {
		d := s.hit.Point.Sub(s.grid.WorldLoc(k))
		dist := abs32(d.X()) + abs32(d.Y()) + abs32(d.Z())
		if best < 0 || dist < best {
			best = dist
			nearest = k
		}
	}
	return keys, nearest, nil
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (s *Session) paintable(k bricks.Key) bool {
	c := s.grid.Cell(k)
	return c != nil && c.MatName != s.material && !s.added.Has(k)
}

// paint recolours the unit cell under the pointer, splitting wide bricks
// first.
func (s *Session) paint() Result {
	if s.material == "" {
		return reject(ReportWarning, "no paint material selected")
	}
	g := s.grid
	cur := s.hovered
	c := g.Cell(cur)
	if c == nil {
		return reject(ReportError, "paint: %s: %v", cur, bricks.ErrNoBrick)
	}

	keys := []bricks.Key{cur}
	if max(c.Size[0], c.Size[1]) > 1 {
		var err error
		keys, cur, err = s.splitToNearestUnit(cur)
		if err != nil {
			return reject(ReportError, "paint: %v", err)
		}
	}

	pc := g.Cell(cur)
	pc.MatName = s.material
	pc.CustomMat = true

	s.added.Add(cur)
	s.mergeCandidates.Add(keys...)
	s.commitMerge.Add(keys...)
	s.touched.Add(keys...)
	s.redraw.RequestRedraw(keys, "updating material", false, true)
	return okResult
}

// split breaks the hovered brick apart: Alt splits it in plan, Shift splits
// it into layers. A brick that cannot be split is selected instead.
func (s *Session) split(mods Modifiers) Result {
	g := s.grid
	cur := s.hovered
	c := g.Cell(cur)
	if c == nil {
		return reject(ReportError, "split: %s: %v", cur, bricks.ErrNoBrick)
	}
	s.added.Add(cur)

	splittable := (mods.Alt && max(c.Size[0], c.Size[1]) > 1) || (mods.Shift && c.Size[2] > 1)
	if !splittable {
		s.redraw.Select(cur)
		return okResult
	}

	keys, err := g.Split(cur, mods.Alt, mods.Shift)
	if err != nil {
		return reject(ReportError, "split: %v", err)
	}
	s.touched.Add(keys...)
	s.redraw.DeleteObjects(cur)
	s.redraw.RequestRedraw(keys, "splitting bricks", true, true)
	return okResult
}

// mergeDrag collects the hovered brick as a merge candidate.
func (s *Session) mergeDrag() Result {
	cur := s.hovered
	c := s.grid.Cell(cur)
	if c == nil {
		return reject(ReportError, "merge: %s: %v", cur, bricks.ErrNoBrick)
	}
	s.mergeCandidates.Add(s.grid.KeysInBrick(cur, c.Size)...)
	s.added.Add(cur)
	s.redraw.Select(cur)
	return okResult
}
