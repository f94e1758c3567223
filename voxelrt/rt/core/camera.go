package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraState is the viewport camera used to build pick rays. Z is up.
type CameraState struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	// FovY in degrees
	FovY float32
}

func NewCameraState() *CameraState {
	return &CameraState{
		Position: mgl32.Vec3{0, 2, 20},
		Yaw:      0,
		Pitch:    0,
		FovY:     60.0,
	}
}

func (c *CameraState) GetForward() mgl32.Vec3 {
	// Z-up: Forward in XY plane, Z for pitch
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Pitch)) * math.Sin(float64(c.Yaw))),
		float32(-math.Cos(float64(c.Pitch)) * math.Cos(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
	}
}

func (c *CameraState) GetRight() mgl32.Vec3 {
	// Z-up: Right in XY plane
	return mgl32.Vec3{
		float32(-math.Sin(float64(c.Yaw))),
		float32(math.Cos(float64(c.Yaw))),
		0,
	}
}

func (c *CameraState) GetViewMatrix() mgl32.Mat4 {
	forward := c.GetForward()
	eye := c.Position
	target := eye.Add(forward)
	up := mgl32.Vec3{0, 0, 1} // Z-up
	return mgl32.LookAtV(eye, target, up)
}

// Region is a rectangle of the window that shows a 3D view, in window
// pixels with the origin at the top-left corner.
type Region struct {
	X, Y          float64
	Width, Height float64
}

func (r Region) Contains(x, y float64) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// Local converts window coordinates into region-relative ones.
func (r Region) Local(x, y float64) (float64, float64) {
	return x - r.X, y - r.Y
}
