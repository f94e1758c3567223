package bricks

// SetAllExposures recomputes the top/bottom exposure of the brick covering k
// and stores it on every cell of that brick. A face is exposed when at least
// one cell on it has no drawn neighbour beyond it.
func (g *Grid) SetAllExposures(k Key) (top, bot bool) {
	root, ok := g.Root(k)
	if !ok {
		return false, false
	}
	c := g.cells[root]
	keys := g.KeysInBrick(root, c.Size)
	topZ := root.Z + c.Size[2] - 1
	for _, kk := range keys {
		if kk.Z == topZ && !g.Drawn(kk.Add(0, 0, 1)) {
			top = true
		}
		if kk.Z == root.Z && !g.Drawn(kk.Add(0, 0, -1)) {
			bot = true
		}
	}
	for _, kk := range keys {
		cc := g.cells[kk]
		cc.TopExposed = top
		cc.BotExposed = bot
	}
	return top, bot
}

// UpdateAdjacentAfterDelete is called before the cell at k is cleared. Hidden
// shell cells next to k (Val > 0 but not drawn) become drawn unit bricks and
// are returned in created; every affected brick, old or new, is in update.
func (g *Grid) UpdateAdjacentAfterDelete(k Key) (update, created []Key) {
	deleted := g.cells[k]
	for _, o := range faceOffsets {
		nk := k.Add(o[0], o[1], o[2])
		c := g.cells[nk]
		if c == nil {
			continue
		}
		if c.Draw {
			if root, ok := g.Root(nk); ok {
				update = append(update, root)
			}
			continue
		}
		if c.Val <= 0 {
			continue
		}
		c.Draw = true
		c.Size = UnitSize
		c.Parent = nil
		if c.MatName == "" && deleted != nil {
			c.MatName = deleted.MatName
		}
		created = append(created, nk)
		update = append(update, nk)
	}
	return Uniquify(update), created
}
