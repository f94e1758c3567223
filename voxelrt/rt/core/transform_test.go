package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTransform_RoundTrip(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{1, 2, 3}
	tr.Rotation = mgl32.QuatRotate(float32(math.Pi/2), mgl32.Vec3{0, 0, 1})
	tr.Scale = mgl32.Vec3{2, 2, 2}

	p := mgl32.Vec3{0.5, -1, 4}
	back := tr.PointToObject(tr.PointToWorld(p))
	assert.InDelta(t, p.X(), back.X(), 1e-4)
	assert.InDelta(t, p.Y(), back.Y(), 1e-4)
	assert.InDelta(t, p.Z(), back.Z(), 1e-4)
}

func TestRegion_Contains(t *testing.T) {
	r := Region{X: 100, Y: 50, Width: 200, Height: 100}
	assert.True(t, r.Contains(100, 50))
	assert.False(t, r.Contains(300, 60))
	lx, ly := r.Local(150, 70)
	assert.Equal(t, 50.0, lx)
	assert.Equal(t, 20.0, ly)
}
