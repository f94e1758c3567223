package bricksculpt

import "github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"

type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPaintBrush
)

func (c Cursor) String() string {
	if c == CursorPaintBrush {
		return "PAINT_BRUSH"
	}
	return "DEFAULT"
}

// Window is the host window the session reports cursor and status text to.
type Window interface {
	SetCursor(c Cursor)
	// SetHeaderText shows text in the view header; "" clears it.
	SetHeaderText(text string)
}

// Redrawer turns grid changes into rendered brick objects.
type Redrawer interface {
	// RequestRedraw rebuilds the objects of the bricks covering keys.
	RequestRedraw(keys []bricks.Key, reason string, selectCreated, temporary bool)
	// DeleteObjects removes the rendered objects named after keys and reports
	// how many existed.
	DeleteObjects(keys ...bricks.Key) int
	Select(keys ...bricks.Key)
	DeselectAll()
	SetHidden(keys []bricks.Key, hidden bool)
	// TagRedraw asks the host to refresh the view.
	TagRedraw()
}

// History restores the grid to the checkpoint taken when the session began.
type History interface {
	RollbackToCleanState() error
}

// checkpointer is implemented by histories that can record the clean state.
type checkpointer interface {
	PushClean(label string) string
}

type nopWindow struct{}

func (nopWindow) SetCursor(Cursor)     {}
func (nopWindow) SetHeaderText(string) {}
