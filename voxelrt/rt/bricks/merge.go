package bricks

import "slices"

const MaxMergeHeight = 3

// MergeOptions tunes the greedy merge pass.
type MergeOptions struct {
	// AnyHeight allows stacking unit cells up to MaxMergeHeight layers.
	AnyHeight bool
	// TargetType is the brick type merged bricks should become. "BRICK" on a
	// "BRICKS AND PLATES" model lets three plate layers fuse into one brick.
	TargetType string
}

// legal plan sizes, the other orientation is derived
var legalPlans = [][2]int{
	{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 6}, {1, 8},
	{2, 2}, {2, 3}, {2, 4}, {2, 6}, {2, 8}, {2, 10},
}

func (g *Grid) mergeHeights(opts MergeOptions) []int {
	switch {
	case opts.AnyHeight:
		return []int{1, 2, 3}
	case opts.TargetType == "BRICK" && g.BrickType == "BRICKS AND PLATES":
		return []int{1, 3}
	}
	return []int{1}
}

func candidateSizes(heights []int) [][3]int {
	var sizes [][3]int
	for _, h := range heights {
		for _, p := range legalPlans {
			sizes = append(sizes, [3]int{p[0], p[1], h})
			if p[0] != p[1] {
				sizes = append(sizes, [3]int{p[1], p[0], h})
			}
		}
	}
	slices.SortStableFunc(sizes, func(a, b [3]int) int {
		return b[0]*b[1]*b[2] - a[0]*a[1]*a[2]
	})
	return sizes
}

// Merge greedily fuses the drawn unit cells among keys into the largest
// legal bricks, considering only cells inside keys. It returns the
// representative keys of every brick that now covers the input, including
// unit cells that found no partner.
func (g *Grid) Merge(keys []Key, opts MergeOptions) []Key {
	cand := make(map[Key]struct{})
	for _, k := range keys {
		c := g.cells[k]
		if c != nil && c.IsRoot() && c.IsUnit() {
			cand[k] = struct{}{}
		}
	}
	ordered := make([]Key, 0, len(cand))
	for k := range cand {
		ordered = append(ordered, k)
	}
	SortKeys(ordered)

	sizes := candidateSizes(g.mergeHeights(opts))
	used := make(map[Key]struct{}, len(cand))
	var roots []Key

	for _, k := range ordered {
		if _, ok := used[k]; ok {
			continue
		}
		best := UnitSize
		for _, size := range sizes {
			if g.fits(k, size, cand, used) {
				best = size
				break
			}
		}
		for _, kk := range g.KeysInBrick(k, best) {
			used[kk] = struct{}{}
			c := g.cells[kk]
			if kk == k {
				c.Size = best
				c.Parent = nil
				continue
			}
			p := k
			c.Parent = &p
			c.Size = UnitSize
		}
		roots = append(roots, k)
	}

	// bricks that were already larger than a unit cell stay as they are
	for _, k := range Uniquify(keys) {
		c := g.cells[k]
		if c == nil || !c.IsRoot() || c.IsUnit() {
			continue
		}
		if _, ok := cand[k]; !ok {
			roots = append(roots, k)
		}
	}
	return roots
}

func (g *Grid) fits(k Key, size [3]int, cand, used map[Key]struct{}) bool {
	base := g.cells[k]
	for _, kk := range g.KeysInBrick(k, size) {
		if _, ok := cand[kk]; !ok {
			return false
		}
		if _, ok := used[kk]; ok {
			return false
		}
		if !base.compatible(g.cells[kk]) {
			return false
		}
	}
	return true
}
