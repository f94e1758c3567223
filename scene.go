package bricksculpt

import (
	"sort"

	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
)

// SceneObject is one rendered brick.
type SceneObject struct {
	Name      string
	Key       bricks.Key
	Size      [3]int
	Material  string
	Temporary bool
	Selected  bool
	Hidden    bool
}

// RedrawRequest records one RequestRedraw call.
type RedrawRequest struct {
	Keys          []bricks.Key
	Reason        string
	SelectCreated bool
	Temporary     bool
}

// BrickScene is an in-memory Redrawer: it keeps one object per drawn brick
// of a grid, named the way the grid names its bricks.
type BrickScene struct {
	grid    *bricks.Grid
	objects map[string]*SceneObject

	Requests []RedrawRequest
	Deleted  []string
	Redraws  int
}

// NewBrickScene creates objects for every brick already drawn in grid.
func NewBrickScene(grid *bricks.Grid) *BrickScene {
	sc := &BrickScene{
		grid:    grid,
		objects: make(map[string]*SceneObject),
	}
	sc.Rebuild()
	return sc
}

// Rebuild drops every object and recreates one per drawn brick.
func (sc *BrickScene) Rebuild() {
	sc.objects = make(map[string]*SceneObject)
	for _, root := range sc.grid.Roots() {
		sc.objects[sc.grid.Name(root)] = sc.newObject(root)
	}
}

func (sc *BrickScene) newObject(root bricks.Key) *SceneObject {
	c := sc.grid.Cell(root)
	return &SceneObject{
		Name:     sc.grid.Name(root),
		Key:      root,
		Size:     c.Size,
		Material: c.MatName,
	}
}

func (sc *BrickScene) RequestRedraw(keys []bricks.Key, reason string, selectCreated, temporary bool) {
	sc.Requests = append(sc.Requests, RedrawRequest{
		Keys:          append([]bricks.Key(nil), keys...),
		Reason:        reason,
		SelectCreated: selectCreated,
		Temporary:     temporary,
	})
	if selectCreated {
		sc.DeselectAll()
	}
	for _, k := range keys {
		name := sc.grid.Name(k)
		var hidden bool
		if old, ok := sc.objects[name]; ok {
			hidden = old.Hidden
			delete(sc.objects, name)
		}
		c := sc.grid.Cell(k)
		if c == nil || !c.IsRoot() {
			continue
		}
		obj := sc.newObject(k)
		obj.Temporary = temporary
		obj.Selected = selectCreated
		obj.Hidden = hidden
		sc.objects[name] = obj
	}
	sc.Redraws++
}

func (sc *BrickScene) DeleteObjects(keys ...bricks.Key) int {
	n := 0
	for _, k := range keys {
		name := sc.grid.Name(k)
		if _, ok := sc.objects[name]; !ok {
			continue
		}
		delete(sc.objects, name)
		sc.Deleted = append(sc.Deleted, name)
		n++
	}
	return n
}

func (sc *BrickScene) Select(keys ...bricks.Key) {
	for _, k := range keys {
		if obj, ok := sc.objects[sc.grid.Name(k)]; ok {
			obj.Selected = true
		}
	}
}

func (sc *BrickScene) DeselectAll() {
	for _, obj := range sc.objects {
		obj.Selected = false
	}
}

func (sc *BrickScene) SetHidden(keys []bricks.Key, hidden bool) {
	for _, k := range keys {
		if obj, ok := sc.objects[sc.grid.Name(k)]; ok {
			obj.Hidden = hidden
		}
	}
}

func (sc *BrickScene) TagRedraw() {
	sc.Redraws++
}

func (sc *BrickScene) Object(k bricks.Key) (*SceneObject, bool) {
	obj, ok := sc.objects[sc.grid.Name(k)]
	return obj, ok
}

// Hidden reports whether the object of root is hidden; missing objects count
// as hidden.
func (sc *BrickScene) Hidden(root bricks.Key) bool {
	obj, ok := sc.objects[sc.grid.Name(root)]
	return !ok || obj.Hidden
}

// Objects lists the objects in layer order of their keys.
func (sc *BrickScene) Objects() []*SceneObject {
	out := make([]*SceneObject, 0, len(sc.objects))
	for _, obj := range sc.objects {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Less(out[j].Key) })
	return out
}

func (sc *BrickScene) Selected() []bricks.Key {
	var keys []bricks.Key
	for _, obj := range sc.Objects() {
		if obj.Selected {
			keys = append(keys, obj.Key)
		}
	}
	return keys
}

func (sc *BrickScene) Len() int {
	return len(sc.objects)
}
