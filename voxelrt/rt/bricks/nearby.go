package bricks

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	RoundWidthDivisor  = 3.2
	SquareWidthDivisor = 2.05
)

var roundTypes = map[string]bool{
	"CYLINDER":    true,
	"CONE":        true,
	"STUD":        true,
	"STUD_HOLLOW": true,
}

func IsRoundType(brickType string) bool {
	return roundTypes[brickType]
}

// MergeableType reports whether bricks of brickType can be fused by Merge.
func MergeableType(brickType string) bool {
	switch brickType {
	case "BRICK", "BRICKS", "PLATE", "PLATES", "BRICKS AND PLATES":
		return true
	}
	return false
}

// NearbyKey picks the key next to cur that a local-space offset diff (hit
// point minus the centre of cur) points into. The x/y threshold is
// step/widthDivisor, so a larger divisor selects the neighbour sooner.
// Offsets beyond the hovered brick jump over it.
func NearbyKey(diff mgl32.Vec3, cur Key, step mgl32.Vec3, widthDivisor float32) Key {
	return cur.Add(
		stepsToward(diff.X(), step.X()/widthDivisor),
		stepsToward(diff.Y(), step.Y()/widthDivisor),
		stepsToward(diff.Z(), step.Z()/2),
	)
}

func stepsToward(d, half float32) int {
	const eps = 1e-4
	if half <= 0 {
		return 0
	}
	switch {
	case d > half-eps:
		return max(1, int(math.Ceil(float64((d-half)/(2*half)))))
	case d < -(half - eps):
		return -max(1, int(math.Ceil(float64((-d-half)/(2*half)))))
	}
	return 0
}
