package bricks

import "fmt"

// Split breaks the brick covering k into smaller bricks. h splits the plan
// (x/y) down to single cells, v splits the height down to single layers.
// It returns every key the original brick covered. A brick that is already
// minimal along the requested axes is left untouched.
func (g *Grid) Split(k Key, h, v bool) ([]Key, error) {
	root, ok := g.Root(k)
	if !ok {
		return nil, fmt.Errorf("split %s: %w", k, ErrNoBrick)
	}
	orig := g.cells[root].Copy()
	keys := g.KeysInBrick(root, orig.Size)

	newSize := orig.Size
	if h {
		newSize[0], newSize[1] = 1, 1
	}
	if v {
		newSize[2] = 1
	}
	if newSize == orig.Size {
		return keys, nil
	}

	for _, kk := range keys {
		off := kk.Sub(root)
		anchor := root.Add(
			off.X/newSize[0]*newSize[0],
			off.Y/newSize[1]*newSize[1],
			off.Z/newSize[2]*newSize[2],
		)

		c := g.cells[kk]
		if c == nil {
			c = &Cell{}
			g.cells[kk] = c
		}
		c.Draw = true
		if c.Val == 0 {
			c.Val = orig.Val
		}
		c.MatName = orig.MatName
		c.CustomMat = orig.CustomMat
		c.Flipped = orig.Flipped
		c.Rotated = orig.Rotated
		c.TopExposed = false
		c.BotExposed = false
		if kk == anchor {
			c.Parent = nil
			c.Size = newSize
		} else {
			p := anchor
			c.Parent = &p
			c.Size = UnitSize
		}
	}
	return keys, nil
}

// SplitAll splits every brick covering any of keys down to unit cells and
// returns the affected keys without repeats.
func (g *Grid) SplitAll(keys []Key) []Key {
	done := make(map[Key]struct{})
	var out []Key
	for _, k := range keys {
		root, ok := g.Root(k)
		if !ok {
			continue
		}
		if _, seen := done[root]; seen {
			continue
		}
		done[root] = struct{}{}
		split, err := g.Split(root, true, true)
		if err != nil {
			continue
		}
		out = append(out, split...)
	}
	return Uniquify(out)
}
