package bricks

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/bricksculpt/voxelrt/rt/core"
)

const NamePrefix = "Bricker_"

var (
	ErrNoBrick     = errors.New("no brick at key")
	ErrOutOfBounds = errors.New("key outside model bounds")
)

// Bounds limits where new bricks may be placed (inclusive).
type Bounds struct {
	Min Key
	Max Key
}

func (b Bounds) Contains(k Key) bool {
	return k.X >= b.Min.X && k.X <= b.Max.X &&
		k.Y >= b.Min.Y && k.Y <= b.Max.Y &&
		k.Z >= b.Min.Z && k.Z <= b.Max.Z
}

// Grid is the shared bricks dictionary of one model.
// It has no locking; callers mutate it from a single goroutine.
type Grid struct {
	Source    string
	BrickType string
	// Step is the local-space size of one unit cell.
	Step      mgl32.Vec3
	Transform core.Transform
	Bounds    *Bounds

	cells map[Key]*Cell
}

func NewGrid(source, brickType string, step mgl32.Vec3) *Grid {
	return &Grid{
		Source:    source,
		BrickType: brickType,
		Step:      step,
		Transform: *core.NewTransform(),
		cells:     make(map[Key]*Cell),
	}
}

func (g *Grid) Get(k Key) (*Cell, bool) {
	c, ok := g.cells[k]
	return c, ok
}

// Cell returns the record at k or nil.
func (g *Grid) Cell(k Key) *Cell {
	return g.cells[k]
}

func (g *Grid) Set(k Key, c *Cell) {
	g.cells[k] = c
}

func (g *Grid) Delete(k Key) {
	delete(g.cells, k)
}

func (g *Grid) Len() int {
	return len(g.cells)
}

// Keys returns every stored key in layer order.
func (g *Grid) Keys() []Key {
	keys := make([]Key, 0, len(g.cells))
	for k := range g.cells {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// Roots returns the representative keys of all drawn bricks in layer order.
func (g *Grid) Roots() []Key {
	var keys []Key
	for k, c := range g.cells {
		if c.IsRoot() {
			keys = append(keys, k)
		}
	}
	SortKeys(keys)
	return keys
}

func (g *Grid) Clone() *Grid {
	newG := *g
	if g.Bounds != nil {
		b := *g.Bounds
		newG.Bounds = &b
	}
	newG.cells = make(map[Key]*Cell, len(g.cells))
	for k, c := range g.cells {
		newG.cells[k] = c.Copy()
	}
	return &newG
}

// Restore replaces the cells of g with copies of the cells of src.
func (g *Grid) Restore(src *Grid) {
	g.cells = make(map[Key]*Cell, len(src.cells))
	for k, c := range src.cells {
		g.cells[k] = c.Copy()
	}
}

func (g *Grid) InBounds(k Key) bool {
	return g.Bounds == nil || g.Bounds.Contains(k)
}

// Name is the rendered object name of the brick whose representative is k.
func (g *Grid) Name(k Key) string {
	return fmt.Sprintf("%s%s_brick__%s", NamePrefix, g.Source, k)
}

func (g *Grid) OwnsName(name string) bool {
	return strings.HasPrefix(name, NamePrefix+g.Source)
}

func (g *Grid) KeyFromName(name string) (Key, bool) {
	if !g.OwnsName(name) {
		return Key{}, false
	}
	idx := strings.LastIndex(name, "__")
	if idx < 0 {
		return Key{}, false
	}
	k, err := ParseKey(name[idx+2:])
	if err != nil {
		return Key{}, false
	}
	return k, true
}

// Root resolves k to the representative key of the drawn brick covering it.
func (g *Grid) Root(k Key) (Key, bool) {
	c := g.cells[k]
	if c == nil || !c.Draw {
		return Key{}, false
	}
	if c.Parent == nil {
		return k, true
	}
	p := g.cells[*c.Parent]
	if p == nil || !p.Draw {
		return Key{}, false
	}
	return *c.Parent, true
}

func (g *Grid) Drawn(k Key) bool {
	c := g.cells[k]
	return c != nil && c.Draw
}

// AddBrick places a drawn brick of the given size with its representative at k.
func (g *Grid) AddBrick(k Key, size [3]int, mat string) error {
	keys := g.KeysInBrick(k, size)
	for _, kk := range keys {
		if !g.InBounds(kk) {
			return fmt.Errorf("add brick at %s: %w", kk, ErrOutOfBounds)
		}
		if g.Drawn(kk) {
			return fmt.Errorf("add brick at %s: cell %s already drawn", k, kk)
		}
	}
	for _, kk := range keys {
		c := NewCell(mat)
		if kk != k {
			p := k
			c.Parent = &p
		}
		g.cells[kk] = c
	}
	g.cells[k].Size = size
	return nil
}

// KeysInBrick lists the keys covered by a brick of size anchored at k.
func (g *Grid) KeysInBrick(k Key, size [3]int) []Key {
	keys := make([]Key, 0, size[0]*size[1]*size[2])
	for z := 0; z < size[2]; z++ {
		for y := 0; y < size[1]; y++ {
			for x := 0; x < size[0]; x++ {
				keys = append(keys, k.Add(x, y, z))
			}
		}
	}
	return keys
}

// Loc is the local-space centre of the unit cell at k.
func (g *Grid) Loc(k Key) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(k.X) * g.Step.X(),
		float32(k.Y) * g.Step.Y(),
		float32(k.Z) * g.Step.Z(),
	}
}

func (g *Grid) WorldLoc(k Key) mgl32.Vec3 {
	return g.Transform.ObjectToWorld().Mul4x1(g.Loc(k).Vec4(1.0)).Vec3()
}

// ToLocal converts a world-space offset into model space.
func (g *Grid) ToLocal(v mgl32.Vec3) mgl32.Vec3 {
	return g.Transform.WorldToObject().Mul4x1(v.Vec4(0.0)).Vec3()
}

// BrickAABB returns the local-space bounds of the brick whose representative is root.
func (g *Grid) BrickAABB(root Key) (mgl32.Vec3, mgl32.Vec3) {
	size := UnitSize
	if c := g.cells[root]; c != nil {
		size = c.Size
	}
	half := g.Step.Mul(0.5)
	minB := g.Loc(root).Sub(half)
	maxB := g.Loc(root.Add(size[0]-1, size[1]-1, size[2]-1)).Add(half)
	return minB, maxB
}

// Layer returns the representative keys of drawn bricks that occupy layer z.
func (g *Grid) Layer(z int) []Key {
	var keys []Key
	for k, c := range g.cells {
		if c.IsRoot() && k.Z <= z && z < k.Z+c.Size[2] {
			keys = append(keys, k)
		}
	}
	SortKeys(keys)
	return keys
}

// Describe is a short human label for the brick at k, e.g. "2x4x1 ABS Red".
func (g *Grid) Describe(k Key) string {
	root, ok := g.Root(k)
	if !ok {
		return ""
	}
	c := g.cells[root]
	label := fmt.Sprintf("%dx%dx%d", c.Size[0], c.Size[1], c.Size[2])
	if c.MatName != "" {
		label += " " + c.MatName
	}
	return label
}

func SortKeys(keys []Key) {
	slices.SortFunc(keys, func(a, b Key) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
}

// Uniquify drops repeated keys, keeping first occurrences in order.
func Uniquify(keys []Key) []Key {
	seen := make(map[Key]struct{}, len(keys))
	out := make([]Key, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
