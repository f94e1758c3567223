package editor

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
	"github.com/gekko3d/bricksculpt/voxelrt/rt/core"
)

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// Hit is a pick result on a rendered brick.
type Hit struct {
	ObjectName string
	Key        bricks.Key // representative key of the brick
	Point      mgl32.Vec3 // world space
	Normal     mgl32.Vec3 // world space
	T          float32
}

// Picker casts a ray through a window point and reports the brick of the
// named source collection it hits first. A point outside every 3D view is a
// miss.
type Picker interface {
	Pick(x, y float64, source string) (Hit, bool)
}

// GridPicker picks against the bricks of one grid.
type GridPicker struct {
	Grid        *bricks.Grid
	Camera      *core.CameraState
	Regions     []core.Region
	MaxDistance float32
	// Hidden reports roots that are not currently rendered and cannot be hit.
	Hidden func(root bricks.Key) bool
}

func NewGridPicker(grid *bricks.Grid, camera *core.CameraState, regions ...core.Region) *GridPicker {
	return &GridPicker{
		Grid:        grid,
		Camera:      camera,
		Regions:     regions,
		MaxDistance: 1000000.0,
	}
}

func (p *GridPicker) Pick(x, y float64, source string) (Hit, bool) {
	if p.Camera == nil {
		return Hit{}, false
	}
	for _, r := range p.Regions {
		if !r.Contains(x, y) {
			continue
		}
		lx, ly := r.Local(x, y)
		ray := GetPickRay(lx, ly, int(r.Width), int(r.Height), p.Camera)
		return p.PickRay(ray, source)
	}
	return Hit{}, false
}

func GetPickRay(mouseX, mouseY float64, width, height int, camera *core.CameraState) Ray {
	// Normalized Device Coordinates
	nx := (2.0*float32(mouseX))/float32(width) - 1.0
	ny := 1.0 - (2.0*float32(mouseY))/float32(height) // Flip Y for NDC

	forward := camera.GetForward()
	right := camera.GetRight()
	up := right.Cross(forward)

	fov := camera.FovY
	if fov <= 0 {
		fov = 60.0
	}
	aspect := float32(width) / float32(height)
	tanHalfFov := float32(math.Tan(float64(mgl32.DegToRad(fov) / 2.0)))

	dir := forward.Add(right.Mul(nx * aspect * tanHalfFov)).Add(up.Mul(ny * tanHalfFov))
	dir = dir.Normalize()

	return Ray{camera.Position, dir}
}

// PickRay intersects a world-space ray with every drawn brick.
func (p *GridPicker) PickRay(ray Ray, source string) (Hit, bool) {
	g := p.Grid
	if g == nil || !strings.HasPrefix(g.Name(bricks.Key{}), bricks.NamePrefix+source) {
		return Hit{}, false
	}

	o2w := g.Transform.ObjectToWorld()
	w2o := g.Transform.WorldToObject()
	local := Ray{
		Origin:    w2o.Mul4x1(ray.Origin.Vec4(1.0)).Vec3(),
		Direction: w2o.Mul4x1(ray.Direction.Vec4(0.0)).Vec3(),
	}

	closestT := p.MaxDistance
	if closestT <= 0 {
		closestT = 1e20
	}
	var best Hit
	found := false

	for _, root := range g.Roots() {
		if p.Hidden != nil && p.Hidden(root) {
			continue
		}
		minB, maxB := g.BrickAABB(root)
		tMin, tMax := intersectAABB(local, minB, maxB)
		if tMin > tMax || tMax < 0 {
			continue
		}

		pHitOs := local.Origin.Add(local.Direction.Mul(tMin))
		pHitWs := o2w.Mul4x1(pHitOs.Vec4(1.0)).Vec3()
		tWorld := pHitWs.Sub(ray.Origin).Len()
		if tWorld >= closestT {
			continue
		}
		closestT = tWorld

		n := faceNormal(pHitOs, minB, maxB)
		nWs := o2w.Mul4x1(n.Vec4(0.0)).Vec3().Normalize()
		best = Hit{
			ObjectName: g.Name(root),
			Key:        root,
			Point:      pHitWs,
			Normal:     nWs,
			T:          tWorld,
		}
		found = true
	}
	return best, found
}

// faceNormal returns the axis normal of the box face closest to p.
func faceNormal(p, minB, maxB mgl32.Vec3) mgl32.Vec3 {
	bestD := float32(math.MaxFloat32)
	var n mgl32.Vec3
	for axis := 0; axis < 3; axis++ {
		if d := abs32(p[axis] - minB[axis]); d < bestD {
			bestD = d
			n = mgl32.Vec3{}
			n[axis] = -1
		}
		if d := abs32(p[axis] - maxB[axis]); d < bestD {
			bestD = d
			n = mgl32.Vec3{}
			n[axis] = 1
		}
	}
	return n
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func intersectAABB(ray Ray, minB, maxB mgl32.Vec3) (float32, float32) {
	invDir := mgl32.Vec3{1.0 / (ray.Direction.X() + 1e-8), 1.0 / (ray.Direction.Y() + 1e-8), 1.0 / (ray.Direction.Z() + 1e-8)}
	t1 := minB.Sub(ray.Origin)
	t1 = mgl32.Vec3{t1.X() * invDir.X(), t1.Y() * invDir.Y(), t1.Z() * invDir.Z()}
	t2 := maxB.Sub(ray.Origin)
	t2 = mgl32.Vec3{t2.X() * invDir.X(), t2.Y() * invDir.Y(), t2.Z() * invDir.Z()}

	tMinV := mgl32.Vec3{float32(math.Min(float64(t1.X()), float64(t2.X()))), float32(math.Min(float64(t1.Y()), float64(t2.Y()))), float32(math.Min(float64(t1.Z()), float64(t2.Z())))}
	tMaxV := mgl32.Vec3{float32(math.Max(float64(t1.X()), float64(t2.X()))), float32(math.Max(float64(t1.Y()), float64(t2.Y()))), float32(math.Max(float64(t1.Z()), float64(t2.Z())))}

	realMin := float32(math.Max(0, math.Max(float64(tMinV.X()), math.Max(float64(tMinV.Y()), float64(tMinV.Z())))))
	realMax := float32(math.Min(math.MaxFloat32, math.Min(float64(tMaxV.X()), math.Min(float64(tMaxV.Y()), float64(tMaxV.Z())))))

	return realMin, realMax
}
