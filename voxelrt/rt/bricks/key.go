package bricks

import (
	"fmt"
	"strconv"
	"strings"
)

// Key addresses one unit cell of the brick grid.
type Key struct {
	X, Y, Z int
}

func K(x, y, z int) Key {
	return Key{X: x, Y: y, Z: z}
}

func (k Key) Add(dx, dy, dz int) Key {
	return Key{X: k.X + dx, Y: k.Y + dy, Z: k.Z + dz}
}

func (k Key) Sub(o Key) Key {
	return Key{X: k.X - o.X, Y: k.Y - o.Y, Z: k.Z - o.Z}
}

// Less orders keys layer by layer (z, then y, then x).
func (k Key) Less(o Key) bool {
	if k.Z != o.Z {
		return k.Z < o.Z
	}
	if k.Y != o.Y {
		return k.Y < o.Y
	}
	return k.X < o.X
}

func (k Key) String() string {
	return fmt.Sprintf("%d,%d,%d", k.X, k.Y, k.Z)
}

// ParseKey reads the "x,y,z" form produced by String.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("parse key %q: want 3 components, got %d", s, len(parts))
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Key{}, fmt.Errorf("parse key %q: %w", s, err)
		}
		v[i] = n
	}
	return Key{X: v[0], Y: v[1], Z: v[2]}, nil
}

// face-adjacent offsets
var faceOffsets = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}
